// Package handlers contains the HTTP request handlers. Each handler
// validates input, performs one or two database calls and renders JSON;
// all collaborators are injected through the Handler struct.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/colorra-dev/colorra/internal/auth"
	"github.com/colorra-dev/colorra/internal/colorx"
	"github.com/colorra-dev/colorra/internal/config"
	"github.com/colorra-dev/colorra/internal/mailer"
	"github.com/colorra-dev/colorra/internal/models"
	"github.com/colorra-dev/colorra/internal/storage"
	"github.com/colorra-dev/colorra/internal/types"
	"github.com/colorra-dev/colorra/internal/validator"
)

type Handler struct {
	DB     *gorm.DB
	Config *config.Config
	Auth   *auth.Manager
	Store  storage.FileStorage
	Mailer *mailer.Mailer
	Logger *zap.Logger
}

func New(conn *gorm.DB, cfg *config.Config, authManager *auth.Manager, store storage.FileStorage, mail *mailer.Mailer, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     conn,
		Config: cfg,
		Auth:   authManager,
		Store:  store,
		Mailer: mail,
		Logger: logger,
	}
}

// bindAndValidate decodes the JSON body into req and runs its declarative
// rules. It writes the 400 response itself and reports whether the caller
// may proceed.
func (h *Handler) bindAndValidate(ctx *gin.Context, req validator.Validatable) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return false
	}

	if err := req.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": "Validation failed",
			"errors":  validator.FieldErrors(err),
		})
		return false
	}

	return true
}

func (h *Handler) internalError(ctx *gin.Context, msg string, err error) {
	h.Logger.Error(msg, zap.Error(err))
	ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
}

// paletteResponse deserializes the stored colors into the public shape.
func (h *Handler) paletteResponse(palette models.Palette) (types.PaletteResponse, error) {
	colors, err := colorx.Deserialize(palette.Colors)
	if err != nil {
		return types.PaletteResponse{}, err
	}

	return types.PaletteResponse{
		ID:          palette.ID,
		Name:        palette.Name,
		Description: palette.Description,
		Colors:      colors,
		ImageURL:    palette.ImageURL,
		IsFavorite:  palette.IsFavorite,
		CreatedAt:   palette.CreatedAt,
		UpdatedAt:   palette.UpdatedAt,
	}, nil
}

func paletteSummary(palette models.Palette) types.PaletteSummary {
	return types.PaletteSummary{
		ID:          palette.ID,
		Name:        palette.Name,
		Colors:      palette.Colors,
		Description: palette.Description,
		CreatedAt:   palette.CreatedAt,
	}
}

func userSummary(user models.User) types.UserSummary {
	return types.UserSummary{
		Name:  user.Name,
		Email: user.Email,
	}
}

func userResponse(user models.User) types.UserResponse {
	return types.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
