package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	vd "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/colorra-dev/colorra/internal/models"
	"github.com/colorra-dev/colorra/internal/types"
	"github.com/colorra-dev/colorra/internal/utils"
	"github.com/colorra-dev/colorra/internal/validator"
)

const defaultShareLimit = 10

type SharePaletteRequest struct {
	PaletteID uuid.UUID `json:"paletteId"`
	UserEmail string    `json:"userEmail"`
	Message   *string   `json:"message"`
}

func (r SharePaletteRequest) Validate() error {
	return vd.ValidateStruct(&r,
		vd.Field(&r.PaletteID, vd.Required.Error("palette ID is required")),
		vd.Field(&r.UserEmail, validator.EmailRule...),
		vd.Field(&r.Message, validator.MessageRule...),
	)
}

type shareResponse struct {
	ID         uuid.UUID            `json:"id"`
	Message    *string              `json:"message"`
	CreatedAt  time.Time            `json:"createdAt"`
	Palette    types.PaletteSummary `json:"palette"`
	SharedBy   types.UserSummary    `json:"sharedBy"`
	SharedWith types.UserSummary    `json:"sharedWith"`
}

func newShareResponse(share models.PaletteShare) shareResponse {
	return shareResponse{
		ID:         share.ID,
		Message:    share.Message,
		CreatedAt:  share.CreatedAt,
		Palette:    paletteSummary(share.Palette),
		SharedBy:   userSummary(share.SharedBy),
		SharedWith: userSummary(share.SharedWith),
	}
}

func (h *Handler) SharePalette(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	var req SharePaletteRequest

	if !h.bindAndValidate(ctx, &req) {
		return
	}

	var palette models.Palette

	if err := h.DB.Where("id = ? AND user_id = ?", req.PaletteID, userID).First(&palette).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Palette not found or access denied"})
		} else {
			h.internalError(ctx, "failed to fetch palette", err)
		}
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.UserEmail))

	var recipient models.User

	if err := h.DB.Where("email = ?", email).First(&recipient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		} else {
			h.internalError(ctx, "failed to fetch recipient", err)
		}
		return
	}

	var existing models.PaletteShare

	err = h.DB.Where("palette_id = ? AND shared_with_id = ?", req.PaletteID, recipient.ID).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Palette already shared with this user"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		h.internalError(ctx, "failed to check existing share", err)
		return
	}

	share := models.PaletteShare{
		PaletteID:    req.PaletteID,
		SharedByID:   userID,
		SharedWithID: recipient.ID,
		Message:      req.Message,
	}

	if err := h.DB.Create(&share).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "Palette already shared with this user"})
			return
		}
		h.internalError(ctx, "failed to create share", err)
		return
	}

	if err := h.DB.Preload("Palette").Preload("SharedBy").Preload("SharedWith").First(&share, "id = ?", share.ID).Error; err != nil {
		h.internalError(ctx, "failed to load share", err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Palette shared successfully",
		"data":    newShareResponse(share),
	})
}

func (h *Handler) ListReceivedShares(ctx *gin.Context) {
	h.listShares(ctx, "shared_with_id")
}

func (h *Handler) ListSentShares(ctx *gin.Context) {
	h.listShares(ctx, "shared_by_id")
}

func (h *Handler) listShares(ctx *gin.Context, column string) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	page := parsePositiveInt(ctx.Query("page"), 1)
	limit := parsePositiveInt(ctx.Query("limit"), defaultShareLimit)

	var total int64

	if err := h.DB.Model(&models.PaletteShare{}).Where(column+" = ?", userID).Count(&total).Error; err != nil {
		h.internalError(ctx, "failed to count shares", err)
		return
	}

	var shares []models.PaletteShare

	if err := h.DB.Where(column+" = ?", userID).
		Preload("Palette").
		Preload("SharedBy").
		Preload("SharedWith").
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&shares).Error; err != nil {
		h.internalError(ctx, "failed to list shares", err)
		return
	}

	response := make([]shareResponse, 0, len(shares))

	for _, share := range shares {
		response = append(response, newShareResponse(share))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Shares retrieved successfully",
		"data": gin.H{
			"shares":     response,
			"pagination": types.NewListPagination(page, limit, total),
		},
	})
}

// RemoveShare lets either side of a share revoke it: the sharer to stop
// sharing, the recipient to clear it from their inbox.
func (h *Handler) RemoveShare(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	shareID, err := utils.ParamUUID(ctx, "shareId")

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Share not found"})
		return
	}

	var share models.PaletteShare

	if err := h.DB.First(&share, "id = ?", shareID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Share not found"})
		} else {
			h.internalError(ctx, "failed to fetch share", err)
		}
		return
	}

	if share.SharedByID != userID && share.SharedWithID != userID {
		ctx.JSON(http.StatusForbidden, gin.H{"message": "Access denied"})
		return
	}

	if err := h.DB.Delete(&share).Error; err != nil {
		h.internalError(ctx, "failed to delete share", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Palette share removed successfully"})
}
