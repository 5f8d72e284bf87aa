package paginator

import "slices"

// PaginateSlice pages an in-memory listing, such as object storage keys that
// come back without server-side paging. The returned page aliases items and
// is never nil.
func PaginateSlice[T any](items []T, q PaginateQuery) ([]T, Paginator) {
	q.Adjust()
	total := int64(len(items))

	start := min(q.Offset(), total)
	end := min(start+q.Limit, total)
	page := items[start:end:end]
	if len(page) == 0 {
		page = []T{}
	}

	return page, Paginator{
		Total:       total,
		Count:       int64(len(page)),
		PerPage:     q.Limit,
		CurrentPage: q.Page,
	}
}

// SortAndPaginate stable-sorts items in place with cmp before paging them.
func SortAndPaginate[T any](items []T, q PaginateQuery, cmp func(a, b T) int) ([]T, Paginator) {
	slices.SortStableFunc(items, cmp)
	return PaginateSlice(items, q)
}
