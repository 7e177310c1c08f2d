// Package pagination windows ordered gorm queries into fixed-size pages.
package pagination

import (
	"math"

	"github.com/yukikurage/qa-forum-api/internal/constants"
	"github.com/yukikurage/qa-forum-api/internal/database"
	"gorm.io/gorm"
)

// Params is a validated page request. Page is 1-indexed.
type Params struct {
	Page   int
	Limit  int
	Offset int
}

// NewParams clamps page to at least 1 and falls back to the default size for invalid limits.
// Page is capped so the offset cannot overflow; such a page lies past any real result.
func NewParams(page, limit int) Params {
	if limit < constants.MinPageSize || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}
	return Params{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// Page is one window of an ordered result set.
type Page[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	TotalCount int64
	TotalPages int
}

// ItemCount is the number of items on this page.
func (p *Page[T]) ItemCount() int {
	return len(p.Items)
}

func (p *Page[T]) HasNext() bool {
	return p.Page < p.TotalPages
}

// TotalPages returns ceil(total / size); zero for an empty collection.
func TotalPages(total int64, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}

// Paginate counts query and loads the requested window of it. query must carry a
// Model and its ordering; preloads are applied to the item load only. A page past
// the end yields an empty window.
func Paginate[T any](query *gorm.DB, params Params, preloads ...string) (*Page[T], error) {
	base := query.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, err
	}

	items := make([]T, 0, params.Limit)
	if int64(params.Offset) < total {
		find := base
		for _, p := range preloads {
			find = find.Preload(p)
		}
		if err := find.Scopes(database.Paginate(params.Offset, params.Limit)).Find(&items).Error; err != nil {
			return nil, err
		}
	}

	return &Page[T]{
		Items:      items,
		Page:       params.Page,
		PageSize:   params.Limit,
		TotalCount: total,
		TotalPages: TotalPages(total, params.Limit),
	}, nil
}
