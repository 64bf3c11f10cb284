package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	vd "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/colorra-dev/colorra/internal/models"
	"github.com/colorra-dev/colorra/internal/validator"
)

const resetTokenTTL = time.Hour

type RequestPasswordResetRequest struct {
	Email string `json:"email"`
}

func (r RequestPasswordResetRequest) Validate() error {
	return vd.ValidateStruct(&r,
		vd.Field(&r.Email, validator.EmailRule...),
	)
}

type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (r ResetPasswordRequest) Validate() error {
	return vd.ValidateStruct(&r,
		vd.Field(&r.Token, vd.Required),
		vd.Field(&r.Password, validator.ResetPasswordRule...),
	)
}

// RequestPasswordReset answers identically whether or not the address has
// an account, so it cannot be used to probe for registered emails.
func (h *Handler) RequestPasswordReset(ctx *gin.Context) {
	var req RequestPasswordResetRequest

	if !h.bindAndValidate(ctx, &req) {
		return
	}

	response := gin.H{"message": "If an account with that email exists, we have sent a password reset link."}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User

	if err := h.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusOK, response)
			return
		}
		h.internalError(ctx, "failed to fetch user", err)
		return
	}

	token, err := generateResetToken()

	if err != nil {
		h.internalError(ctx, "failed to generate reset token", err)
		return
	}

	expiry := time.Now().Add(resetTokenTTL)

	if err := h.DB.Model(&user).Updates(map[string]interface{}{
		"reset_token":        token,
		"reset_token_expiry": expiry,
	}).Error; err != nil {
		h.internalError(ctx, "failed to store reset token", err)
		return
	}

	h.Mailer.SendPasswordResetEmail(user.Email, token)

	ctx.JSON(http.StatusOK, response)
}

func (h *Handler) ResetPassword(ctx *gin.Context) {
	var req ResetPasswordRequest

	if !h.bindAndValidate(ctx, &req) {
		return
	}

	var user models.User

	if err := h.DB.Where("reset_token = ?", req.Token).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired reset token"})
			return
		}
		h.internalError(ctx, "failed to fetch user", err)
		return
	}

	if user.ResetTokenExpiry == nil || user.ResetTokenExpiry.Before(time.Now()) {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired reset token"})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), sensitiveBcrypt)

	if err != nil {
		h.internalError(ctx, "failed to hash password", err)
		return
	}

	// Single-use token: clear it in the same write as the new hash.
	if err := h.DB.Model(&user).Updates(map[string]interface{}{
		"password_hash":      string(passwordHash),
		"reset_token":        nil,
		"reset_token_expiry": nil,
	}).Error; err != nil {
		h.internalError(ctx, "failed to reset password", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Password has been reset successfully. You can now sign in with your new password."})
}

func generateResetToken() (string, error) {
	raw := make([]byte, 32)

	if _, err := rand.Read(raw); err != nil {
		return "", err
	}

	return hex.EncodeToString(raw), nil
}
