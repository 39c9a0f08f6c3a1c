package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padmin-io/newsboard/internal/domain"
)

func TestBuildListQueryDefaults(t *testing.T) {
	query, args, err := buildListQuery(domain.PageRequest{Page: 1, PageSize: 10})

	require.NoError(t, err)
	assert.Equal(t,
		"SELECT id, title, content, author, created_at, updated_at FROM articles ORDER BY id ASC LIMIT $1 OFFSET $2",
		query,
	)
	assert.Equal(t, []any{10, 0}, args)
}

func TestBuildListQuerySearch(t *testing.T) {
	query, args, err := buildListQuery(domain.PageRequest{
		Page:     2,
		PageSize: 5,
		Search:   "go",
	})

	require.NoError(t, err)
	assert.Contains(t, query, "WHERE (title ILIKE $1 OR content ILIKE $1 OR author ILIKE $1)")
	assert.Contains(t, query, "LIMIT $2 OFFSET $3")
	assert.Equal(t, []any{"%go%", 5, 5}, args)
}

func TestBuildListQuerySortWithTieBreak(t *testing.T) {
	query, _, err := buildListQuery(domain.PageRequest{
		Page:      1,
		PageSize:  20,
		SortBy:    domain.SortByTitle,
		SortOrder: domain.SortDesc,
	})

	require.NoError(t, err)
	assert.Contains(t, query, "ORDER BY title DESC, id ASC")
}

func TestBuildListQueryNoDuplicateTieBreakOnID(t *testing.T) {
	query, _, err := buildListQuery(domain.PageRequest{
		Page:      1,
		PageSize:  20,
		SortBy:    domain.SortByID,
		SortOrder: domain.SortDesc,
	})

	require.NoError(t, err)
	assert.Contains(t, query, "ORDER BY id DESC LIMIT")
}

func TestBuildListQueryRejectsUnknownSortField(t *testing.T) {
	_, _, err := buildListQuery(domain.PageRequest{
		Page:     1,
		PageSize: 10,
		SortBy:   domain.SortField("created_at; DROP TABLE articles"),
	})

	require.Error(t, err)
}

func TestBuildListQueryOffset(t *testing.T) {
	_, args, err := buildListQuery(domain.PageRequest{Page: 4, PageSize: 25})

	require.NoError(t, err)
	assert.Equal(t, []any{25, 75}, args)
}

func TestBuildCountQuery(t *testing.T) {
	query, args := buildCountQuery("")
	assert.Equal(t, "SELECT COUNT(*) FROM articles", query)
	assert.Empty(t, args)

	query, args = buildCountQuery("pizza")
	assert.Contains(t, query, "WHERE (title ILIKE $1 OR content ILIKE $1 OR author ILIKE $1)")
	assert.Equal(t, []any{"%pizza%"}, args)
}
