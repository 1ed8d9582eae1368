// Package pagination slices ordered result sets into fixed-size, 1-based
// pages. Out-of-range page numbers clamp to the nearest valid page instead
// of erroring: page 0 or below means page 1, anything past the end means
// the last page.
package pagination

// PerPage is the fixed page size shared by every feed.
const PerPage = 10

// Meta describes a page's position within the full result set.
type Meta struct {
	Number     int
	TotalPages int
	Total      int
	HasPrev    bool
	HasNext    bool
}

// PageCount returns the number of pages needed for total items. An empty
// set still has one (empty) page.
func PageCount(total int) int {
	if total <= 0 {
		return 1
	}
	return (total + PerPage - 1) / PerPage
}

// Clamp folds a requested page number into [1, totalPages].
func Clamp(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

func metaFor(total, page int) Meta {
	totalPages := PageCount(total)
	page = Clamp(page, totalPages)
	return Meta{
		Number:     page,
		TotalPages: totalPages,
		Total:      total,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
}

// Window computes the limit/offset window for a database query, given the
// total row count and the requested page.
func Window(total, page int) (offset int, meta Meta) {
	meta = metaFor(total, page)
	return (meta.Number - 1) * PerPage, meta
}

// Paginate slices an in-memory ordered sequence.
func Paginate[T any](items []T, page int) ([]T, Meta) {
	offset, meta := Window(len(items), page)
	end := offset + PerPage
	if end > len(items) {
		end = len(items)
	}
	if offset > len(items) {
		offset = len(items)
	}
	return items[offset:end], meta
}
