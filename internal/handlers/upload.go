package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/colorra-dev/colorra/internal/colorx"
	"github.com/colorra-dev/colorra/internal/storage"
	"github.com/colorra-dev/colorra/internal/utils"
)

const maxUploadBytes = 5 * 1024 * 1024

var allowedImageTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp"}

func allowedImageType(contentType string) bool {
	return lo.Contains(allowedImageTypes, strings.ToLower(contentType))
}

// UploadImage stores the file and runs color extraction over it. A failed
// extraction rolls the stored file back so no orphan is left behind.
func (h *Handler) UploadImage(ctx *gin.Context) {
	if _, err := utils.GetCurrentUserID(ctx); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	fileHeader, err := ctx.FormFile("image")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Image file is required"})
		return
	}

	if fileHeader.Size > maxUploadBytes {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "File too large. Maximum size is 5MB"})
		return
	}

	if !allowedImageType(fileHeader.Header.Get("Content-Type")) {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid file type. Only JPEG, PNG, GIF and WebP images are allowed"})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	key := uuid.New().String() + ext

	file, err := fileHeader.Open()

	if err != nil {
		h.internalError(ctx, "failed to open image upload", err)
		return
	}
	defer file.Close()

	if err := h.Store.SaveByKey(file, key, fileHeader.Filename, fileHeader.Header.Get("Content-Type")); err != nil {
		h.internalError(ctx, "failed to store image", err)
		return
	}

	extraction, err := colorx.ExtractColors(key)

	if err != nil {
		if deleteErr := h.Store.DeleteByKey(key); deleteErr != nil && !errors.Is(deleteErr, storage.ErrFileNotFound) {
			h.Logger.Warn("failed to remove image after extraction error")
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to extract colors from image"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Image uploaded and colors extracted successfully",
		"data": gin.H{
			"filename":      key,
			"url":           h.Config.BaseURL + "/uploads/" + key,
			"originalName":  fileHeader.Filename,
			"size":          fileHeader.Size,
			"dominantColor": extraction.DominantColor,
			"colors":        extraction.Colors,
		},
	})
}

// DeleteImage removes an uploaded file by name. The name must be a bare
// filename; anything resembling a path is rejected outright.
func (h *Handler) DeleteImage(ctx *gin.Context) {
	if _, err := utils.GetCurrentUserID(ctx); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	filename := ctx.Param("filename")

	if filename == "" || strings.ContainsAny(filename, "/\\") || strings.Contains(filename, "..") {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid filename"})
		return
	}

	if err := h.Store.DeleteByKey(filename); err != nil && !errors.Is(err, storage.ErrFileNotFound) {
		h.internalError(ctx, "failed to delete image", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Image deleted successfully"})
}

// ListImages is a placeholder; uploads are not tracked per user yet so
// there is nothing to enumerate.
func (h *Handler) ListImages(ctx *gin.Context) {
	if _, err := utils.GetCurrentUserID(ctx); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Images retrieved successfully",
		"data": gin.H{
			"images": []string{},
			"note":   "Image listing is not implemented yet",
		},
	})
}
