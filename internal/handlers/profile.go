package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	vd "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/colorra-dev/colorra/internal/models"
	"github.com/colorra-dev/colorra/internal/utils"
	"github.com/colorra-dev/colorra/internal/validator"
)

const (
	avatarSize      = 256
	maxAvatarBytes  = 5 * 1024 * 1024
	sensitiveBcrypt = 12
)

// Avatars are re-encoded through imaging, which cannot decode webp, so the
// accepted set is narrower than the raw upload endpoint's.
var allowedAvatarTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/gif"}

type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func (r UpdateProfileRequest) Validate() error {
	return vd.ValidateStruct(&r,
		vd.Field(&r.Name, vd.RuneLength(1, 100)),
		vd.Field(&r.Email, is.Email),
	)
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (r ChangePasswordRequest) Validate() error {
	return vd.ValidateStruct(&r,
		vd.Field(&r.CurrentPassword, vd.Required),
		vd.Field(&r.NewPassword, validator.SignupPasswordRule...),
	)
}

func (h *Handler) GetProfile(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	var user models.User

	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		h.internalError(ctx, "failed to fetch user", err)
		return
	}

	var paletteCount int64

	if err := h.DB.Model(&models.Palette{}).Where("user_id = ?", userID).Count(&paletteCount).Error; err != nil {
		h.internalError(ctx, "failed to count palettes", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user":         userResponse(user),
		"paletteCount": paletteCount,
	})
}

func (h *Handler) UpdateProfile(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	var req UpdateProfileRequest

	if !h.bindAndValidate(ctx, &req) {
		return
	}

	var user models.User

	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		h.internalError(ctx, "failed to fetch user", err)
		return
	}

	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))

		if email != user.Email {
			var existing models.User

			err := h.DB.Where("email = ?", email).First(&existing).Error

			if err == nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"message": "Email already in use"})
				return
			}

			if !errors.Is(err, gorm.ErrRecordNotFound) {
				h.internalError(ctx, "failed to check email", err)
				return
			}
		}

		updates["email"] = email
	}

	if len(updates) > 0 {
		if err := h.DB.Model(&user).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				ctx.JSON(http.StatusBadRequest, gin.H{"message": "Email already in use"})
				return
			}
			h.internalError(ctx, "failed to update profile", err)
			return
		}
	}

	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		h.internalError(ctx, "failed to refresh user", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    userResponse(user),
	})
}

func (h *Handler) ChangePassword(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	var req ChangePasswordRequest

	if !h.bindAndValidate(ctx, &req) {
		return
	}

	var user models.User

	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		h.internalError(ctx, "failed to fetch user", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Current password is incorrect"})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), sensitiveBcrypt)

	if err != nil {
		h.internalError(ctx, "failed to hash password", err)
		return
	}

	if err := h.DB.Model(&user).Update("password_hash", string(passwordHash)).Error; err != nil {
		h.internalError(ctx, "failed to update password", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

// UploadAvatar accepts an image, squares it to 256x256 and stores it under
// a fresh name. The user's avatarUrl is overwritten; the previous file is
// left behind.
func (h *Handler) UploadAvatar(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	fileHeader, err := ctx.FormFile("avatar")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Avatar file is required"})
		return
	}

	if fileHeader.Size > maxAvatarBytes {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "File too large. Maximum size is 5MB"})
		return
	}

	if !lo.Contains(allowedAvatarTypes, strings.ToLower(fileHeader.Header.Get("Content-Type"))) {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid file type. Only JPEG, PNG and GIF images are allowed"})
		return
	}

	file, err := fileHeader.Open()

	if err != nil {
		h.internalError(ctx, "failed to open avatar upload", err)
		return
	}
	defer file.Close()

	img, err := imaging.Decode(file, imaging.AutoOrientation(true))

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid image file"})
		return
	}

	thumb := imaging.Fill(img, avatarSize, avatarSize, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer

	if err := imaging.Encode(&buf, thumb, imaging.PNG); err != nil {
		h.internalError(ctx, "failed to encode avatar", err)
		return
	}

	key := uuid.New().String() + ".png"

	if err := h.Store.SaveByKey(&buf, key, fileHeader.Filename, "image/png"); err != nil {
		h.internalError(ctx, "failed to store avatar", err)
		return
	}

	avatarURL := h.Config.BaseURL + "/uploads/" + key

	var user models.User

	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		h.internalError(ctx, "failed to fetch user", err)
		return
	}

	if err := h.DB.Model(&user).Update("avatar_url", avatarURL).Error; err != nil {
		h.internalError(ctx, "failed to update avatar", err)
		return
	}

	user.AvatarURL = &avatarURL

	ctx.JSON(http.StatusOK, gin.H{
		"message":   "Avatar uploaded successfully",
		"user":      userResponse(user),
		"avatarUrl": avatarURL,
	})
}
