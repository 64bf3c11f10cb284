package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/colorra-dev/colorra/internal/colorx"
	"github.com/colorra-dev/colorra/internal/models"
	"github.com/colorra-dev/colorra/internal/types"
	"github.com/colorra-dev/colorra/internal/utils"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
	maxSuggestions     = 10
	maxPopularColors   = 20
)

// sortColumns whitelists the sortable fields; anything else falls back to
// the creation timestamp.
var sortColumns = map[string]string{
	"name":      "name",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// SearchPalettes builds one composite query over the caller's palettes:
// every provided filter becomes an AND clause, absent filters are simply
// omitted. The text and color clauses are ORs across their sub-conditions.
func (h *Handler) SearchPalettes(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	query := h.DB.Model(&models.Palette{}).Where("user_id = ?", userID)

	if text := strings.TrimSpace(ctx.Query("query")); text != "" {
		pattern := "%" + escapeLike(strings.ToLower(text)) + "%"
		query = query.Where(`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`, pattern, pattern)
	}

	if ctx.Query("favorites") == "true" {
		query = query.Where("is_favorite = ?", true)
	}

	if dateFrom := ctx.Query("dateFrom"); dateFrom != "" {
		from, err := parseDate(dateFrom)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid dateFrom"})
			return
		}
		query = query.Where("created_at >= ?", from)
	}

	if dateTo := ctx.Query("dateTo"); dateTo != "" {
		to, err := parseDate(dateTo)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid dateTo"})
			return
		}
		query = query.Where("created_at <= ?", to)
	}

	// A palette matches if ANY listed color appears as a substring of its
	// serialized color data.
	if colors := ctx.Query("colors"); colors != "" {
		var clauses []string
		var args []interface{}
		for _, color := range strings.Split(colors, ",") {
			color = strings.TrimSpace(color)
			if color == "" {
				continue
			}
			clauses = append(clauses, `colors LIKE ? ESCAPE '\'`)
			args = append(args, "%"+escapeLike(color)+"%")
		}
		if len(clauses) > 0 {
			query = query.Where("("+strings.Join(clauses, " OR ")+")", args...)
		}
	}

	sortColumn, ok := sortColumns[ctx.DefaultQuery("sortBy", "createdAt")]
	if !ok {
		sortColumn = "created_at"
	}

	direction := "DESC"
	if ctx.DefaultQuery("sortOrder", "desc") == "asc" {
		direction = "ASC"
	}

	page := parsePositiveInt(ctx.Query("page"), 1)
	limit := parsePositiveInt(ctx.Query("limit"), defaultSearchLimit)
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	var total int64

	if err := query.Count(&total).Error; err != nil {
		h.internalError(ctx, "failed to count search results", err)
		return
	}

	var palettes []models.Palette

	if err := query.
		Order(sortColumn + " " + direction).
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&palettes).Error; err != nil {
		h.internalError(ctx, "failed to search palettes", err)
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

	ctx.JSON(http.StatusOK, gin.H{
		"palettes":   response,
		"pagination": types.NewSearchPagination(page, limit, total),
	})
}

func (h *Handler) ColorSuggestions(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	query := strings.TrimSpace(ctx.Query("query"))

	if query == "" {
		ctx.JSON(http.StatusOK, gin.H{"colors": []string{}})
		return
	}

	serialized, ok := h.allPaletteColors(ctx, userID)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"colors": colorx.Suggestions(serialized, query, maxSuggestions)})
}

func (h *Handler) PopularColors(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	serialized, ok := h.allPaletteColors(ctx, userID)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"colors": colorx.Popular(serialized, maxPopularColors)})
}

func (h *Handler) allPaletteColors(ctx *gin.Context, userID uuid.UUID) ([]string, bool) {
	var serialized []string

	if err := h.DB.Model(&models.Palette{}).
		Where("user_id = ?", userID).
		Pluck("colors", &serialized).Error; err != nil {
		h.internalError(ctx, "failed to load palette colors", err)
		return nil, false
	}

	return serialized, true
}

// escapeLike makes user input literal inside a LIKE pattern; the queries
// using it carry a matching ESCAPE '\' clause.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// parseDate accepts a date or a full RFC3339 timestamp.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func parsePositiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
