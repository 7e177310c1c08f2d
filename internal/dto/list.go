package dto

import "github.com/yukikurage/qa-forum-api/internal/pagination"

// ListResponse represents one page of a collection
type ListResponse[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	ItemCount  int   `json:"item_count"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
}

// ToListResponse converts every item of page with convert.
func ToListResponse[M, T any](page *pagination.Page[M], convert func(M) T) ListResponse[T] {
	items := make([]T, len(page.Items))
	for i, item := range page.Items {
		items[i] = convert(item)
	}

	return ListResponse[T]{
		Items:      items,
		Page:       page.Page,
		PageSize:   page.PageSize,
		ItemCount:  page.ItemCount(),
		TotalCount: page.TotalCount,
		TotalPages: page.TotalPages,
	}
}
