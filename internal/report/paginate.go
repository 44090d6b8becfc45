package report

import (
	"fmt"

	"donorbase/internal/core"
)

// Page is one slice of a sorted result. Totals describe the full result.
type Page[T any] struct {
	Rows         []T
	TotalRecords int
	TotalPages   int
	CurrentPage  int
}

// Paginate slices rows for a 1-based page. A page past the end is empty.
func Paginate[T any](rows []T, page, pageSize int) (Page[T], error) {
	if page < 1 || pageSize < 1 {
		return Page[T]{}, fmt.Errorf("%w: page %d size %d", core.ErrInvalidPage, page, pageSize)
	}
	total := len(rows)
	pages := total / pageSize
	if total%pageSize != 0 {
		pages++
	}
	p := Page[T]{
		TotalRecords: total,
		TotalPages:   pages,
		CurrentPage:  page,
	}
	// Compared before multiplying so an out-of-range page cannot overflow.
	if page > pages {
		p.Rows = []T{}
		return p, nil
	}
	start := (page - 1) * pageSize
	p.Rows = rows[start : start+min(pageSize, total-start)]
	return p, nil
}
