package models

// PageRequest carries pagination and ordering parameters for list queries.
type PageRequest struct {
	Page    int    `validate:"min=0"`
	Size    int    `validate:"min=1,max=100"`
	SortBy  string `validate:"omitempty,oneof=id holderName balance createdAt"`
	SortDir string `validate:"omitempty,oneof=asc desc"`
}

// PageResponse is the pagination envelope returned by list endpoints.
type PageResponse[T any] struct {
	Content       []T   `json:"content"`
	PageNumber    int   `json:"pageNumber"`
	PageSize      int   `json:"pageSize"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Last          bool  `json:"last"`
}

// NewPageResponse assembles the envelope from one page of content and the
// total row count.
func NewPageResponse[T any](content []T, page, size int, total int64) PageResponse[T] {
	totalPages := int((total + int64(size) - 1) / int64(size))
	return PageResponse[T]{
		Content:       content,
		PageNumber:    page,
		PageSize:      size,
		TotalElements: total,
		TotalPages:    totalPages,
		Last:          page >= totalPages-1,
	}
}
