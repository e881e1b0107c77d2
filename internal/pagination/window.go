// Package pagination computes page windows for numbered pagination.
// Everything here is pure: no I/O, no shared state, safe for concurrent use.
package pagination

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidArgument marks inputs the calculator refuses to normalize.
var ErrInvalidArgument = errors.New("invalid argument")

// PageWindow is the resolved view of one page plus its navigation links.
// It is immutable once built; use BuildPageWindow to get one.
type PageWindow struct {
	totalItems         int
	pageSize           int
	pageNumber         int
	totalPages         int
	maxNavigationPages int
	startPage          int
	endPage            int
	pageNumbers        []int
}

// ComputeTotalPages returns ceil(totalItems / pageSize) using integer arithmetic.
func ComputeTotalPages(totalItems, pageSize int) (int, error) {
	if pageSize <= 0 {
		return 0, fmt.Errorf("%w: page size must be > 0, got %d", ErrInvalidArgument, pageSize)
	}
	if totalItems < 0 {
		return 0, fmt.Errorf("%w: total items must be >= 0, got %d", ErrInvalidArgument, totalItems)
	}
	pages := totalItems / pageSize
	if totalItems%pageSize != 0 {
		pages++
	}
	return pages, nil
}

// ClampPageNumber bounds requestedPage to [1, totalPages].
// The floor is applied last, so zero total pages still yields page 1.
func ClampPageNumber(requestedPage, totalPages int) int {
	return max(1, min(requestedPage, totalPages))
}

// ComputeWindow returns the inclusive range of page links around pageNumber.
// With more pages than links the window is split floor(n/2) before and
// ceil(n/2)-1 after the current page, pinned to whichever edge it would cross.
func ComputeWindow(pageNumber, totalPages, maxNavigationPages int) (startPage, endPage int) {
	if totalPages <= 0 {
		return 0, 0
	}
	if totalPages <= maxNavigationPages {
		return 1, totalPages
	}

	before := maxNavigationPages / 2
	after := (maxNavigationPages+1)/2 - 1

	switch {
	case pageNumber <= before:
		return 1, maxNavigationPages
	case pageNumber+after >= totalPages:
		return totalPages - maxNavigationPages + 1, totalPages
	default:
		return pageNumber - before, pageNumber + after
	}
}

// BuildPageWindow resolves the requested page against totalItems and
// materializes its navigation window.
func BuildPageWindow(totalItems, requestedPage, pageSize, maxNavigationPages int) (PageWindow, error) {
	if maxNavigationPages <= 0 {
		return PageWindow{}, fmt.Errorf("%w: max navigation pages must be > 0, got %d", ErrInvalidArgument, maxNavigationPages)
	}
	totalPages, err := ComputeTotalPages(totalItems, pageSize)
	if err != nil {
		return PageWindow{}, err
	}

	pageNumber := ClampPageNumber(requestedPage, totalPages)
	startPage, endPage := ComputeWindow(pageNumber, totalPages, maxNavigationPages)

	numbers := make([]int, 0, max(0, endPage-startPage+1))
	if totalPages > 0 {
		for p := startPage; p <= endPage; p++ {
			numbers = append(numbers, p)
		}
	}

	return PageWindow{
		totalItems:         totalItems,
		pageSize:           pageSize,
		pageNumber:         pageNumber,
		totalPages:         totalPages,
		maxNavigationPages: maxNavigationPages,
		startPage:          startPage,
		endPage:            endPage,
		pageNumbers:        numbers,
	}, nil
}

func (w PageWindow) TotalItems() int         { return w.totalItems }
func (w PageWindow) PageSize() int           { return w.pageSize }
func (w PageWindow) PageNumber() int         { return w.pageNumber }
func (w PageWindow) TotalPages() int         { return w.totalPages }
func (w PageWindow) MaxNavigationPages() int { return w.maxNavigationPages }
func (w PageWindow) StartPage() int          { return w.startPage }
func (w PageWindow) EndPage() int            { return w.endPage }

// PageNumbers returns a copy of the navigation links.
func (w PageWindow) PageNumbers() []int {
	out := make([]int, len(w.pageNumbers))
	copy(out, w.pageNumbers)
	return out
}

// Offset is the number of rows preceding the resolved page.
func (w PageWindow) Offset() int { return (w.pageNumber - 1) * w.pageSize }

// Limit is the maximum number of rows on the resolved page.
func (w PageWindow) Limit() int { return w.pageSize }

func (w PageWindow) HasPrevious() bool { return w.totalPages > 0 && w.pageNumber > 1 }
func (w PageWindow) HasNext() bool     { return w.pageNumber < w.totalPages }

// windowJSON is the wire shape of a PageWindow.
type windowJSON struct {
	TotalItems         int   `json:"total_items"`
	PageSize           int   `json:"page_size"`
	PageNumber         int   `json:"page_number"`
	TotalPages         int   `json:"total_pages"`
	MaxNavigationPages int   `json:"max_navigation_pages"`
	StartPage          int   `json:"start_page"`
	EndPage            int   `json:"end_page"`
	PageNumbers        []int `json:"page_numbers"`
}

func (w PageWindow) wire() windowJSON {
	numbers := w.pageNumbers
	if numbers == nil {
		numbers = []int{}
	}
	return windowJSON{
		TotalItems:         w.totalItems,
		PageSize:           w.pageSize,
		PageNumber:         w.pageNumber,
		TotalPages:         w.totalPages,
		MaxNavigationPages: w.maxNavigationPages,
		StartPage:          w.startPage,
		EndPage:            w.endPage,
		PageNumbers:        numbers,
	}
}

func (w PageWindow) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.wire())
}
