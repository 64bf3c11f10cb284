package utils

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ErrInvalidID is returned for missing or malformed id path parameters.
// Callers translate it to 404 so guessing ids reveals nothing.
var ErrInvalidID = errors.New("invalid resource id")

func ParamUUID(ctx *gin.Context, name string) (uuid.UUID, error) {
	raw := ctx.Param(name)

	if raw == "" {
		return uuid.Nil, ErrInvalidID
	}

	id, err := uuid.Parse(raw)

	if err != nil {
		return uuid.Nil, ErrInvalidID
	}

	return id, nil
}
