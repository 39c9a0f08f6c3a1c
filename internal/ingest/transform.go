// Package ingest implements the periodic fetch, transform and persist
// pipeline for external news articles.
package ingest

import (
	"github.com/padmin-io/newsboard/internal/domain"
	"github.com/padmin-io/newsboard/pkg/feed"
)

// contentSeparator joins the description and body halves of an article.
const contentSeparator = "\n"

// Transform maps raw feed articles into article drafts, preserving order
// and length. Title is copied verbatim, the author falls back to the
// unknown sentinel when the feed names none, and content is always a
// string even when both halves are missing.
func Transform(raws []feed.RawArticle) []domain.ArticleDraft {
	drafts := make([]domain.ArticleDraft, len(raws))
	for i, raw := range raws {
		drafts[i] = transformOne(raw)
	}
	return drafts
}

func transformOne(raw feed.RawArticle) domain.ArticleDraft {
	author := domain.UnknownAuthor
	if len(raw.Creator) > 0 {
		author = raw.Creator[0]
	}

	return domain.ArticleDraft{
		Title:   raw.Title,
		Author:  author,
		Content: raw.Description + contentSeparator + raw.Content,
	}
}
