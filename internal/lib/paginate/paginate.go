// Package paginate slices in-memory sequences into page-number envelopes.
package paginate

// Page is the envelope returned by list endpoints.
type Page[T any] struct {
	TotalCount  int `json:"total_count"`
	TotalPages  int `json:"total_pages"`
	CurrentPage int `json:"current_page"`
	Results     []T `json:"results"`
}

// Paginate returns the 1-based page of items. Pages past the end yield empty
// results with the same totals. Non-positive page or size are treated as 1.
func Paginate[T any](items []T, page, size int) Page[T] {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 1
	}

	total := len(items)
	pages := total / size
	if total%size != 0 {
		pages++
	}
	if pages == 0 {
		pages = 1
	}

	res := Page[T]{
		TotalCount:  total,
		TotalPages:  pages,
		CurrentPage: page,
		Results:     []T{},
	}
	if page > pages {
		return res
	}

	from := (page - 1) * size
	if from >= total {
		return res
	}
	to := min(from+size, total)
	res.Results = append(res.Results, items[from:to]...)
	return res
}
