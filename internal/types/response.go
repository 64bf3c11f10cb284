package types

import (
	"time"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name"`
	AvatarURL *string   `json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type PaletteResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Colors      []string  `json:"colors"`
	ImageURL    *string   `json:"imageUrl"`
	IsFavorite  bool      `json:"isFavorite"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PaletteSummary is embedded in share and collection payloads. Colors stay
// in serialized form there; only palette CRUD and search deserialize.
type PaletteSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Colors      string    `json:"colors"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type UserSummary struct {
	Name  *string `json:"name"`
	Email string  `json:"email"`
}

// SearchPagination is the search endpoint's metadata block. The list
// endpoints use ListPagination with differently named booleans; the two
// shapes diverge in the public API and both are kept as-is.
type SearchPagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
	Limit       int   `json:"limit"`
}

type ListPagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

func NewSearchPagination(page, limit int, total int64) SearchPagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return SearchPagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  total,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
		Limit:       limit,
	}
}

func NewListPagination(page, limit int, total int64) ListPagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return ListPagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  total,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}
