package ingest

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/padmin-io/newsboard/internal/domain"
	"github.com/padmin-io/newsboard/internal/logger"
)

// ArticleInserter is the slice of the storage contract the writer needs.
type ArticleInserter interface {
	Insert(ctx context.Context, draft domain.ArticleDraft) (domain.Article, error)
}

// BatchResult counts the per-item outcomes of one batch write.
type BatchResult struct {
	Stored int
	Failed int
}

// Writer persists a batch of drafts one insert at a time. A failing item
// never stops the remaining items; every outcome is observed before the
// batch reports completion.
type Writer struct {
	store ArticleInserter
	log   logger.Logger
}

// NewWriter creates a batch writer over the given store.
func NewWriter(store ArticleInserter, log logger.Logger) *Writer {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Writer{store: store, log: log}
}

// WriteBatch inserts each draft independently and returns the tally plus
// the combined error of every failed item. A non-nil error still means the
// sibling items were attempted.
func (w *Writer) WriteBatch(ctx context.Context, drafts []domain.ArticleDraft) (BatchResult, error) {
	var result BatchResult
	var errs error

	for i, draft := range drafts {
		stored, err := w.store.Insert(ctx, draft)
		if err != nil {
			result.Failed++
			errs = multierr.Append(errs, fmt.Errorf("batch item %d (%q): %w", i, draft.Title, err))
			w.log.WarnObj("article insert failed", "batch_item_error", map[string]any{
				"index": i,
				"title": draft.Title,
				"error": err.Error(),
			})
			continue
		}

		result.Stored++
		w.log.DebugObj("article stored", "batch_item_stored", map[string]any{
			"article_id": stored.ID,
			"title":      stored.Title,
		})
	}

	return result, errs
}
