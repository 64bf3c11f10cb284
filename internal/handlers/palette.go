package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	vd "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gorm.io/gorm"

	"github.com/colorra-dev/colorra/internal/colorx"
	"github.com/colorra-dev/colorra/internal/models"
	"github.com/colorra-dev/colorra/internal/types"
	"github.com/colorra-dev/colorra/internal/utils"
	"github.com/colorra-dev/colorra/internal/validator"
)

type CreatePaletteRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Colors      []string `json:"colors"`
	ImageURL    *string  `json:"imageUrl"`
}

func (r CreatePaletteRequest) Validate() error {
	return vd.ValidateStruct(&r,
		vd.Field(&r.Name, validator.NameRule...),
		vd.Field(&r.Description, validator.DescriptionRule...),
		vd.Field(&r.Colors, validator.ColorsRule...),
		vd.Field(&r.ImageURL, is.URL),
	)
}

// UpdatePaletteRequest carries a partial update; nil fields are left alone.
type UpdatePaletteRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Colors      []string `json:"colors"`
	ImageURL    *string  `json:"imageUrl"`
	IsFavorite  *bool    `json:"isFavorite"`
}

func (r UpdatePaletteRequest) Validate() error {
	return vd.ValidateStruct(&r,
		// NilOrNotEmpty distinguishes an absent name from an empty one;
		// built-in rules alone would let "" through unchecked.
		vd.Field(&r.Name, vd.NilOrNotEmpty, vd.RuneLength(1, 100)),
		vd.Field(&r.Description, validator.DescriptionRule...),
		vd.Field(&r.Colors, vd.By(func(value interface{}) error {
			colors, _ := value.([]string)
			if colors == nil {
				return nil
			}
			return vd.Validate(colors, validator.ColorsRule...)
		})),
		vd.Field(&r.ImageURL, is.URL),
	)
}

func (h *Handler) ListPalettes(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	query := h.DB.Where("user_id = ?", userID)

	if ctx.Query("favorites") == "true" {
		query = query.Where("is_favorite = ?", true)
	}

	var palettes []models.Palette

	if err := query.Order("created_at DESC").Find(&palettes).Error; err != nil {
		h.internalError(ctx, "failed to list palettes", err)
		return
	}

	response := make([]types.PaletteResponse, 0, len(palettes))

	for _, palette := range palettes {
		parsed, err := h.paletteResponse(palette)
		if err != nil {
			h.internalError(ctx, "failed to deserialize palette colors", err)
			return
		}
		response = append(response, parsed)
	}

	ctx.JSON(http.StatusOK, response)
}

// findOwnedPalette looks up a palette scoped to its owner. Missing and
// foreign palettes are indistinguishable to the caller: both read as not
// found so ids leak no existence information.
func (h *Handler) findOwnedPalette(ctx *gin.Context) (models.Palette, bool) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return models.Palette{}, false
	}

	paletteID, err := utils.ParamUUID(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Palette not found"})
		return models.Palette{}, false
	}

	var palette models.Palette

	if err := h.DB.Where("id = ? AND user_id = ?", paletteID, userID).First(&palette).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "Palette not found"})
		} else {
			h.internalError(ctx, "failed to fetch palette", err)
		}
		return models.Palette{}, false
	}

	return palette, true
}

func (h *Handler) GetPalette(ctx *gin.Context) {
	palette, ok := h.findOwnedPalette(ctx)

	if !ok {
		return
	}

	response, err := h.paletteResponse(palette)

	if err != nil {
		h.internalError(ctx, "failed to deserialize palette colors", err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *Handler) CreatePalette(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	var req CreatePaletteRequest

	if !h.bindAndValidate(ctx, &req) {
		return
	}

	serialized, err := colorx.Serialize(req.Colors)

	if err != nil {
		h.internalError(ctx, "failed to serialize colors", err)
		return
	}

	palette := models.Palette{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Colors:      serialized,
		ImageURL:    req.ImageURL,
	}

	if err := h.DB.Create(&palette).Error; err != nil {
		h.internalError(ctx, "failed to create palette", err)
		return
	}

	response, err := h.paletteResponse(palette)

	if err != nil {
		h.internalError(ctx, "failed to deserialize palette colors", err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"palette": response})
}

func (h *Handler) UpdatePalette(ctx *gin.Context) {
	var req UpdatePaletteRequest

	if !h.bindAndValidate(ctx, &req) {
		return
	}

	palette, ok := h.findOwnedPalette(ctx)

	if !ok {
		return
	}

	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
	}

	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if req.Colors != nil {
		serialized, err := colorx.Serialize(req.Colors)
		if err != nil {
			h.internalError(ctx, "failed to serialize colors", err)
			return
		}
		updates["colors"] = serialized
	}

	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}

	if req.IsFavorite != nil {
		updates["is_favorite"] = *req.IsFavorite
	}

	if len(updates) > 0 {
		if err := h.DB.Model(&palette).Updates(updates).Error; err != nil {
			h.internalError(ctx, "failed to update palette", err)
			return
		}
	}

	// Refresh palette data from database
	if err := h.DB.First(&palette, "id = ?", palette.ID).Error; err != nil {
		h.internalError(ctx, "failed to refresh palette", err)
		return
	}

	response, err := h.paletteResponse(palette)

	if err != nil {
		h.internalError(ctx, "failed to deserialize palette colors", err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *Handler) ToggleFavorite(ctx *gin.Context) {
	palette, ok := h.findOwnedPalette(ctx)

	if !ok {
		return
	}

	if err := h.DB.Model(&palette).Update("is_favorite", !palette.IsFavorite).Error; err != nil {
		h.internalError(ctx, "failed to toggle favorite", err)
		return
	}

	if err := h.DB.First(&palette, "id = ?", palette.ID).Error; err != nil {
		h.internalError(ctx, "failed to refresh palette", err)
		return
	}

	response, err := h.paletteResponse(palette)

	if err != nil {
		h.internalError(ctx, "failed to deserialize palette colors", err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *Handler) DeletePalette(ctx *gin.Context) {
	palette, ok := h.findOwnedPalette(ctx)

	if !ok {
		return
	}

	if err := h.DB.Delete(&palette).Error; err != nil {
		h.internalError(ctx, "failed to delete palette", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Palette deleted successfully"})
}
