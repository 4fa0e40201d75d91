package utils

import "github.com/clinicplace/console/internal/shared/constants"

// NormalizePageSize falls back to DefaultPageSize for non-positive sizes.
func NormalizePageSize(pageSize int) int {
	if pageSize < 1 {
		return constants.DefaultPageSize
	}
	return pageSize
}

// PageBounds calculates slice indices for a 1-based page.
// Returns (start, end) indices for slicing: slice[start:end]
func PageBounds(total, page, pageSize int) (start, end int) {
	if page < 1 {
		page = 1
	}
	start = (page - 1) * pageSize
	end = start + pageSize

	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return start, end
}

// PageCount is ceil(total/pageSize); an empty list has zero pages.
func PageCount(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// ClampPage keeps page within [1, max(1, PageCount)] so a shrinking list
// never leaves the view on an empty page.
func ClampPage(page, total, pageSize int) int {
	if page < 1 {
		return 1
	}
	last := PageCount(total, pageSize)
	if last < 1 {
		return 1
	}
	if page > last {
		return last
	}
	return page
}
