package service

import "math"

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Pagination is a normalized page request.
type Pagination struct {
	Page    int
	PerPage int
}

func NewPagination(page, perPage int) Pagination {
	if page < 1 {
		page = DefaultPage
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	// Keeps Offset from overflowing; such a page is empty anyway.
	if maxPage := math.MaxInt / perPage; page > maxPage {
		page = maxPage
	}
	return Pagination{Page: page, PerPage: perPage}
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Pages is ceil(total / per_page).
func (p Pagination) Pages(total int) int {
	if total == 0 {
		return 0
	}
	return (total + p.PerPage - 1) / p.PerPage
}
