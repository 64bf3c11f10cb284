package handlers

import (
	"errors"
	"net/http"
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

const defaultCollectionLimit = 10

type CreateCollectionRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (r CreateCollectionRequest) Validate() error {
	return vd.ValidateStruct(&r,
		vd.Field(&r.Name, validator.NameRule...),
		vd.Field(&r.Description, validator.DescriptionRule...),
	)
}

type AddPaletteToCollectionRequest struct {
	CollectionID uuid.UUID `json:"collectionId"`
	PaletteID    uuid.UUID `json:"paletteId"`
}

func (r AddPaletteToCollectionRequest) Validate() error {
	return vd.ValidateStruct(&r,
		vd.Field(&r.CollectionID, vd.Required.Error("collection ID is required")),
		vd.Field(&r.PaletteID, vd.Required.Error("palette ID is required")),
	)
}

type collectionResponse struct {
	ID          uuid.UUID                   `json:"id"`
	Name        string                      `json:"name"`
	Description *string                     `json:"description"`
	CreatedAt   time.Time                   `json:"createdAt"`
	UpdatedAt   time.Time                   `json:"updatedAt"`
	Palettes    []collectionPaletteResponse `json:"palettes"`
}

type collectionPaletteResponse struct {
	Palette types.PaletteSummary `json:"palette"`
}

func newCollectionResponse(collection models.Collection) collectionResponse {
	palettes := make([]collectionPaletteResponse, 0, len(collection.Palettes))

	for _, entry := range collection.Palettes {
		palettes = append(palettes, collectionPaletteResponse{
			Palette: paletteSummary(entry.Palette),
		})
	}

	return collectionResponse{
		ID:          collection.ID,
		Name:        collection.Name,
		Description: collection.Description,
		CreatedAt:   collection.CreatedAt,
		UpdatedAt:   collection.UpdatedAt,
		Palettes:    palettes,
	}
}

func (h *Handler) CreateCollection(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	var req CreateCollectionRequest

	if !h.bindAndValidate(ctx, &req) {
		return
	}

	collection := models.Collection{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
	}

	if err := h.DB.Create(&collection).Error; err != nil {
		h.internalError(ctx, "failed to create collection", err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Collection created successfully",
		"data":    newCollectionResponse(collection),
	})
}

func (h *Handler) ListCollections(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	page := parsePositiveInt(ctx.Query("page"), 1)
	limit := parsePositiveInt(ctx.Query("limit"), defaultCollectionLimit)

	var total int64

	if err := h.DB.Model(&models.Collection{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		h.internalError(ctx, "failed to count collections", err)
		return
	}

	var collections []models.Collection

	if err := h.DB.Where("user_id = ?", userID).
		Preload("Palettes.Palette").
		Order("updated_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&collections).Error; err != nil {
		h.internalError(ctx, "failed to list collections", err)
		return
	}

	response := make([]collectionResponse, 0, len(collections))

	for _, collection := range collections {
		response = append(response, newCollectionResponse(collection))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Collections retrieved successfully",
		"data": gin.H{
			"collections": response,
			"pagination":  types.NewListPagination(page, limit, total),
		},
	})
}

func (h *Handler) AddPaletteToCollection(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	var req AddPaletteToCollectionRequest

	if !h.bindAndValidate(ctx, &req) {
		return
	}

	var collection models.Collection

	if err := h.DB.Where("id = ? AND user_id = ?", req.CollectionID, userID).First(&collection).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Collection not found"})
		} else {
			h.internalError(ctx, "failed to fetch collection", err)
		}
		return
	}

	var palette models.Palette

	if err := h.DB.Where("id = ? AND user_id = ?", req.PaletteID, userID).First(&palette).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Palette not found"})
		} else {
			h.internalError(ctx, "failed to fetch palette", err)
		}
		return
	}

	var existing models.CollectionPalette

	err = h.DB.Where("collection_id = ? AND palette_id = ?", req.CollectionID, req.PaletteID).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Palette already in collection"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		h.internalError(ctx, "failed to check collection membership", err)
		return
	}

	entry := models.CollectionPalette{
		CollectionID: req.CollectionID,
		PaletteID:    req.PaletteID,
	}

	if err := h.DB.Create(&entry).Error; err != nil {
		// The unique index decides races the pre-check cannot.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "Palette already in collection"})
			return
		}
		h.internalError(ctx, "failed to add palette to collection", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Palette added to collection successfully"})
}

func (h *Handler) RemovePaletteFromCollection(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	collectionID, err := utils.ParamUUID(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Collection not found"})
		return
	}

	paletteID, err := utils.ParamUUID(ctx, "paletteId")

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Palette not found in collection"})
		return
	}

	var collection models.Collection

	if err := h.DB.Where("id = ? AND user_id = ?", collectionID, userID).First(&collection).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Collection not found"})
		} else {
			h.internalError(ctx, "failed to fetch collection", err)
		}
		return
	}

	result := h.DB.Where("collection_id = ? AND palette_id = ?", collectionID, paletteID).Delete(&models.CollectionPalette{})

	if result.Error != nil {
		h.internalError(ctx, "failed to remove palette from collection", result.Error)
		return
	}

	if result.RowsAffected == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Palette not found in collection"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Palette removed from collection successfully"})
}

func (h *Handler) DeleteCollection(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	collectionID, err := utils.ParamUUID(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Collection not found"})
		return
	}

	var collection models.Collection

	if err := h.DB.Where("id = ? AND user_id = ?", collectionID, userID).First(&collection).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Collection not found"})
		} else {
			h.internalError(ctx, "failed to fetch collection", err)
		}
		return
	}

	// Membership rows go first; the palettes themselves stay untouched.
	if err := h.DB.Where("collection_id = ?", collectionID).Delete(&models.CollectionPalette{}).Error; err != nil {
		h.internalError(ctx, "failed to delete collection memberships", err)
		return
	}

	if err := h.DB.Delete(&collection).Error; err != nil {
		h.internalError(ctx, "failed to delete collection", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Collection deleted successfully"})
}
