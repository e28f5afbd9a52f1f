package utils

import "math"

const (
	// DefaultPageSize is the page size used when the client sends none
	DefaultPageSize = 20
	// MaxPageSize caps the page size a client may request
	MaxPageSize = 100
)

// PaginationParams holds pagination request parameters. Pages are
// zero-based.
type PaginationParams struct {
	Page int `form:"page"`
	Size int `form:"size"`
}

// PaginationMeta holds pagination response metadata
type PaginationMeta struct {
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// GetPaginationParams clamps page and size to valid bounds
func GetPaginationParams(page, size int) PaginationParams {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return PaginationParams{
		Page: page,
		Size: size,
	}
}

// CalculateOffset returns the SQL offset
func (p PaginationParams) CalculateOffset() int {
	if p.Page < 1 {
		return 0
	}
	return p.Page * p.Size
}

// CalculateMeta generates pagination metadata. A page past the end is
// valid and simply yields empty content with last=true.
func CalculateMeta(totalElements int64, page, size int) PaginationMeta {
	totalPages := 0
	if size > 0 {
		totalPages = int(math.Ceil(float64(totalElements) / float64(size)))
	}

	return PaginationMeta{
		Page:          page,
		Size:          size,
		TotalElements: totalElements,
		TotalPages:    totalPages,
		First:         page == 0,
		Last:          page >= totalPages-1,
	}
}
