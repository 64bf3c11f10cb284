package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	vd "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/colorra-dev/colorra/internal/models"
	"github.com/colorra-dev/colorra/internal/validator"
)

type SignupRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Name     *string `json:"name"`
}

func (r SignupRequest) Validate() error {
	return vd.ValidateStruct(&r,
		vd.Field(&r.Email, validator.EmailRule...),
		vd.Field(&r.Password, validator.SignupPasswordRule...),
		vd.Field(&r.Name, vd.RuneLength(1, 100)),
	)
}

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r SigninRequest) Validate() error {
	return vd.ValidateStruct(&r,
		vd.Field(&r.Email, validator.EmailRule...),
		vd.Field(&r.Password, vd.Required),
	)
}

func (h *Handler) Signup(ctx *gin.Context) {
	var req SignupRequest

	if !h.bindAndValidate(ctx, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User

	err := h.DB.Where("email = ?", email).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusConflict, gin.H{"message": "User already exists with this email"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		h.internalError(ctx, "failed to check existing user", err)
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	if err != nil {
		h.internalError(ctx, "failed to hash password", err)
		return
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(passwordHash),
		Name:         req.Name,
	}

	if err := h.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusConflict, gin.H{"message": "User already exists with this email"})
			return
		}
		h.internalError(ctx, "failed to create user", err)
		return
	}

	token, err := h.Auth.Generate(user.ID, user.Email)

	if err != nil {
		h.internalError(ctx, "failed to generate token", err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    userResponse(user),
		"token":   token,
	})
}

func (h *Handler) Signin(ctx *gin.Context) {
	var req SigninRequest

	if !h.bindAndValidate(ctx, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User

	err := h.DB.Where("email = ?", email).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
			return
		}
		h.internalError(ctx, "failed to fetch user", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}

	token, err := h.Auth.Generate(user.ID, user.Email)

	if err != nil {
		h.internalError(ctx, "failed to generate token", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    userResponse(user),
		"token":   token,
	})
}
