package ingest

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/padmin-io/newsboard/internal/domain"
)

// flakyStore fails inserts for the titles listed in failOn and records
// everything that was successfully stored.
type flakyStore struct {
	failOn map[string]bool
	stored []domain.ArticleDraft
	nextID int64
}

func (s *flakyStore) Insert(_ context.Context, draft domain.ArticleDraft) (domain.Article, error) {
	if s.failOn[draft.Title] {
		return domain.Article{}, errors.New("constraint violation")
	}
	s.stored = append(s.stored, draft)
	s.nextID++
	return domain.Article{ID: s.nextID, Title: draft.Title, Content: draft.Content, Author: draft.Author}, nil
}

func batchOf(n int) []domain.ArticleDraft {
	drafts := make([]domain.ArticleDraft, n)
	for i := range drafts {
		drafts[i] = domain.ArticleDraft{
			Title:   fmt.Sprintf("article-%d", i),
			Content: "body",
			Author:  domain.UnknownAuthor,
		}
	}
	return drafts
}

func TestWriteBatchAllSucceed(t *testing.T) {
	store := &flakyStore{}
	writer := NewWriter(store, nil)

	result, err := writer.WriteBatch(context.Background(), batchOf(4))

	require.NoError(t, err)
	assert.Equal(t, BatchResult{Stored: 4}, result)
	assert.Len(t, store.stored, 4)
}

func TestWriteBatchSingleFailureIsIsolated(t *testing.T) {
	store := &flakyStore{failOn: map[string]bool{"article-2": true}}
	writer := NewWriter(store, nil)

	result, err := writer.WriteBatch(context.Background(), batchOf(5))

	require.Error(t, err)
	assert.Equal(t, BatchResult{Stored: 4, Failed: 1}, result)
	assert.Len(t, store.stored, 4)

	// The failing item's error is reported, not swallowed.
	assert.Len(t, multierr.Errors(err), 1)
	assert.Contains(t, err.Error(), "article-2")

	// Items after the failing one were still attempted.
	titles := make([]string, len(store.stored))
	for i, d := range store.stored {
		titles[i] = d.Title
	}
	assert.Contains(t, titles, "article-3")
	assert.Contains(t, titles, "article-4")
}

func TestWriteBatchCollectsEveryFailure(t *testing.T) {
	store := &flakyStore{failOn: map[string]bool{"article-0": true, "article-3": true}}
	writer := NewWriter(store, nil)

	result, err := writer.WriteBatch(context.Background(), batchOf(4))

	require.Error(t, err)
	assert.Equal(t, BatchResult{Stored: 2, Failed: 2}, result)
	assert.Len(t, multierr.Errors(err), 2)
}

func TestWriteBatchEmpty(t *testing.T) {
	writer := NewWriter(&flakyStore{}, nil)

	result, err := writer.WriteBatch(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, BatchResult{}, result)
}
