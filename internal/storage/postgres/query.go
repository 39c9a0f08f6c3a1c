package postgres

import (
	"fmt"
	"strings"

	"github.com/padmin-io/newsboard/internal/domain"
)

// sortColumns maps the closed set of sortable fields to real column names.
// Sort keys never reach the SQL text unless they appear here.
var sortColumns = map[domain.SortField]string{
	domain.SortByID:      "id",
	domain.SortByTitle:   "title",
	domain.SortByContent: "content",
	domain.SortByAuthor:  "author",
}

const selectColumns = "id, title, content, author, created_at, updated_at"

// buildListQuery renders the paginated listing for the given request.
// Rows are additionally ordered by id ascending so that pages are stable
// when the sort key has duplicates.
func buildListQuery(req domain.PageRequest) (string, []any, error) {
	req = req.Normalized()

	column, ok := sortColumns[req.SortBy]
	if !ok {
		return "", nil, fmt.Errorf("unsupported sort field %q", req.SortBy)
	}

	direction := "ASC"
	if req.SortOrder == domain.SortDesc {
		direction = "DESC"
	}

	var sb strings.Builder
	var args []any

	sb.WriteString("SELECT ")
	sb.WriteString(selectColumns)
	sb.WriteString(" FROM articles")

	if req.Search != "" {
		args = append(args, "%"+req.Search+"%")
		sb.WriteString(" WHERE (title ILIKE $1 OR content ILIKE $1 OR author ILIKE $1)")
	}

	sb.WriteString(" ORDER BY ")
	sb.WriteString(column)
	sb.WriteString(" ")
	sb.WriteString(direction)
	if column != "id" {
		sb.WriteString(", id ASC")
	}

	args = append(args, req.PageSize, req.Offset())
	sb.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)))

	return sb.String(), args, nil
}

// buildCountQuery renders the total count over the same predicate as
// buildListQuery, without pagination bounds.
func buildCountQuery(search string) (string, []any) {
	if search == "" {
		return "SELECT COUNT(*) FROM articles", nil
	}
	return "SELECT COUNT(*) FROM articles WHERE (title ILIKE $1 OR content ILIKE $1 OR author ILIKE $1)",
		[]any{"%" + search + "%"}
}
