package articles

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padmin-io/newsboard/internal/domain"
	"github.com/padmin-io/newsboard/internal/storage"
)

// memStore implements storage.ArticleStore in memory with the same
// filter, sort and pagination semantics the SQL repository provides.
type memStore struct {
	rows   []domain.Article
	nextID int64
}

func (s *memStore) Insert(_ context.Context, draft domain.ArticleDraft) (domain.Article, error) {
	s.nextID++
	now := time.Now().UTC()
	article := domain.Article{
		ID:        s.nextID,
		Title:     draft.Title,
		Content:   draft.Content,
		Author:    draft.Author,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.rows = append(s.rows, article)
	return article, nil
}

func (s *memStore) ByID(_ context.Context, id int64) (domain.Article, error) {
	for _, row := range s.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return domain.Article{}, storage.ErrNotFound
}

func (s *memStore) matching(search string) []domain.Article {
	if search == "" {
		return append([]domain.Article(nil), s.rows...)
	}
	needle := strings.ToLower(search)
	var out []domain.Article
	for _, row := range s.rows {
		if strings.Contains(strings.ToLower(row.Title), needle) ||
			strings.Contains(strings.ToLower(row.Content), needle) ||
			strings.Contains(strings.ToLower(row.Author), needle) {
			out = append(out, row)
		}
	}
	return out
}

func (s *memStore) List(_ context.Context, req domain.PageRequest) ([]domain.Article, error) {
	req = req.Normalized()
	rows := s.matching(req.Search)

	key := func(a domain.Article) string {
		switch req.SortBy {
		case domain.SortByTitle:
			return a.Title
		case domain.SortByContent:
			return a.Content
		case domain.SortByAuthor:
			return a.Author
		default:
			return fmt.Sprintf("%020d", a.ID)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		ki, kj := key(rows[i]), key(rows[j])
		if ki == kj {
			return rows[i].ID < rows[j].ID
		}
		if req.SortOrder == domain.SortDesc {
			return ki > kj
		}
		return ki < kj
	})

	offset := req.Offset()
	if offset >= len(rows) {
		return nil, nil
	}
	end := offset + req.PageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end], nil
}

func (s *memStore) Count(_ context.Context, search string) (int64, error) {
	return int64(len(s.matching(search))), nil
}

func (s *memStore) Update(_ context.Context, id int64, draft domain.ArticleDraft) (domain.Article, error) {
	for i, row := range s.rows {
		if row.ID == id {
			row.Title = draft.Title
			row.Content = draft.Content
			row.Author = draft.Author
			row.UpdatedAt = time.Now().UTC()
			s.rows[i] = row
			return row, nil
		}
	}
	return domain.Article{}, storage.ErrNotFound
}

func (s *memStore) Delete(_ context.Context, id int64) error {
	for i, row := range s.rows {
		if row.ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

func seedStore(t *testing.T, store *memStore, drafts ...domain.ArticleDraft) {
	t.Helper()
	for _, d := range drafts {
		_, err := store.Insert(context.Background(), d)
		require.NoError(t, err)
	}
}

func TestListReturnsPageWithTotalCount(t *testing.T) {
	store := &memStore{}
	seedStore(t, store,
		domain.ArticleDraft{Title: "go release", Content: "c", Author: "a"},
		domain.ArticleDraft{Title: "rust release", Content: "c", Author: "a"},
		domain.ArticleDraft{Title: "go proposal", Content: "c", Author: "a"},
	)
	svc := NewService(store, nil)

	page, err := svc.List(context.Background(), domain.PageRequest{Page: 1, PageSize: 10, Search: "go"})

	require.NoError(t, err)
	assert.Len(t, page.Articles, 2)
	assert.EqualValues(t, 2, page.TotalCount)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.PageSize)
}

func TestListIsIdempotent(t *testing.T) {
	store := &memStore{}
	seedStore(t, store,
		domain.ArticleDraft{Title: "b", Content: "x", Author: "one"},
		domain.ArticleDraft{Title: "a", Content: "y", Author: "two"},
		domain.ArticleDraft{Title: "c", Content: "z", Author: "three"},
	)
	svc := NewService(store, nil)
	req := domain.PageRequest{Page: 1, PageSize: 2, SortBy: domain.SortByTitle}

	first, err := svc.List(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.List(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestListPaginationCoversEveryRowExactlyOnce(t *testing.T) {
	store := &memStore{}
	for i := range 13 {
		seedStore(t, store, domain.ArticleDraft{
			Title:   fmt.Sprintf("title-%02d", i),
			Content: "c",
			Author:  "a",
		})
	}
	svc := NewService(store, nil)

	const pageSize = 4
	seen := make(map[int64]int)
	var ordered []string

	for page := 1; ; page++ {
		res, err := svc.List(context.Background(), domain.PageRequest{
			Page: page, PageSize: pageSize, SortBy: domain.SortByTitle,
		})
		require.NoError(t, err)
		assert.EqualValues(t, 13, res.TotalCount)
		if len(res.Articles) == 0 {
			break
		}
		for _, a := range res.Articles {
			seen[a.ID]++
			ordered = append(ordered, a.Title)
		}
	}

	assert.Len(t, seen, 13)
	for id, n := range seen {
		assert.Equal(t, 1, n, "article %d appeared %d times", id, n)
	}
	assert.True(t, sort.StringsAreSorted(ordered))
}

func TestListPageBeyondLastIsEmptyWithTrueTotal(t *testing.T) {
	store := &memStore{}
	seedStore(t, store,
		domain.ArticleDraft{Title: "a", Content: "c", Author: "x"},
		domain.ArticleDraft{Title: "b", Content: "c", Author: "x"},
	)
	svc := NewService(store, nil)

	page, err := svc.List(context.Background(), domain.PageRequest{Page: 9, PageSize: 10})

	require.NoError(t, err)
	assert.Empty(t, page.Articles)
	assert.EqualValues(t, 2, page.TotalCount)
}

func TestListSearchMatchesAuthorOnly(t *testing.T) {
	store := &memStore{}
	seedStore(t, store,
		domain.ArticleDraft{Title: "plain", Content: "plain", Author: "Maria Rossi"},
		domain.ArticleDraft{Title: "plain", Content: "plain", Author: "someone else"},
	)
	svc := NewService(store, nil)

	page, err := svc.List(context.Background(), domain.PageRequest{Page: 1, PageSize: 10, Search: "rossi"})

	require.NoError(t, err)
	require.Len(t, page.Articles, 1)
	assert.Equal(t, "Maria Rossi", page.Articles[0].Author)
	assert.EqualValues(t, 1, page.TotalCount)
}

func TestListSecondPageDescendingTitle(t *testing.T) {
	store := &memStore{}
	for i := range 12 {
		seedStore(t, store, domain.ArticleDraft{
			Title:   fmt.Sprintf("title-%02d", i),
			Content: "c",
			Author:  "a",
		})
	}
	svc := NewService(store, nil)

	page, err := svc.List(context.Background(), domain.PageRequest{
		Page:      2,
		PageSize:  5,
		SortBy:    domain.SortByTitle,
		SortOrder: domain.SortDesc,
	})

	require.NoError(t, err)
	assert.EqualValues(t, 12, page.TotalCount)
	require.Len(t, page.Articles, 5)

	// Ranks 6-10 by descending title: title-06 down to title-02.
	want := []string{"title-06", "title-05", "title-04", "title-03", "title-02"}
	for i, a := range page.Articles {
		assert.Equal(t, want[i], a.Title)
	}
}

func TestGetMissingArticle(t *testing.T) {
	svc := NewService(&memStore{}, nil)

	_, err := svc.Get(context.Background(), 42)

	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpdatePreservesCreatedAt(t *testing.T) {
	store := &memStore{}
	seedStore(t, store, domain.ArticleDraft{Title: "old", Content: "c", Author: "a"})
	svc := NewService(store, nil)

	created, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), 1, domain.ArticleDraft{
		Title: "new", Content: "c2", Author: "b",
	})

	require.NoError(t, err)
	assert.Equal(t, "new", updated.Title)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
}

func TestDeleteMissingArticle(t *testing.T) {
	svc := NewService(&memStore{}, nil)

	assert.ErrorIs(t, svc.Delete(context.Background(), 7), storage.ErrNotFound)
}
