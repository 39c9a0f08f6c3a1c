package domain

// Sortable article fields. Sort keys arrive from callers as free-form
// strings and are validated against this closed set before they reach the
// storage layer.
type SortField string

const (
	SortByID      SortField = "id"
	SortByTitle   SortField = "title"
	SortByContent SortField = "content"
	SortByAuthor  SortField = "author"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// MaxPageSize bounds how many articles a single page may return.
const MaxPageSize = 100

// PageRequest carries the caller-supplied filter, sort and pagination
// parameters for a list read. Page is 1-based. An empty Search matches
// every row; otherwise rows match when title, content or author contains
// the search string case-insensitively.
type PageRequest struct {
	Page      int
	PageSize  int
	SortBy    SortField
	SortOrder SortOrder
	Search    string
}

// Normalized returns a copy with zero-value sort fields replaced by the
// defaults (id ascending). Page and PageSize bounds are the caller's
// responsibility and are validated at the API boundary.
func (r PageRequest) Normalized() PageRequest {
	if r.SortBy == "" {
		r.SortBy = SortByID
	}
	if r.SortOrder == "" {
		r.SortOrder = SortAsc
	}
	return r
}

// Offset returns the number of rows to skip for the requested page.
func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.PageSize
}

// ValidSortField reports whether the given key names a sortable field.
func ValidSortField(s string) bool {
	switch SortField(s) {
	case SortByID, SortByTitle, SortByContent, SortByAuthor:
		return true
	}
	return false
}

// ArticlePage is one page of a filtered listing together with the total
// number of rows matching the same filter.
type ArticlePage struct {
	Articles   []Article
	TotalCount int64
	Page       int
	PageSize   int
}
