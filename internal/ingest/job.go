package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/padmin-io/newsboard/internal/logger"
	"github.com/padmin-io/newsboard/pkg/feed"
)

// FeedSource retrieves the latest raw articles for a query term.
type FeedSource interface {
	Latest(ctx context.Context, query string) ([]feed.RawArticle, error)
}

// Enricher optionally backfills raw article metadata before the transform.
type Enricher interface {
	Enrich(ctx context.Context, raws []feed.RawArticle) []feed.RawArticle
}

// RunRecord summarizes one ingestion run.
type RunRecord struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Fetched    int
	Stored     int
	Failed     int
	Error      string
}

// RunRecorder persists run records for later inspection.
type RunRecorder interface {
	Record(ctx context.Context, rec RunRecord) error
}

// Notifier is told about completed runs, e.g. to fan events out to queues.
type Notifier interface {
	RunCompleted(ctx context.Context, rec RunRecord)
}

// Job is one unit of ingestion work: fetch a page from the feed, transform
// it and hand the batch to the writer. Failures never escape Run beyond
// its error return.
type Job struct {
	source   FeedSource
	enricher Enricher
	writer   *Writer
	recorder RunRecorder
	notifier Notifier
	query    string
	log      logger.Logger
}

// JobConfig wires the collaborators of a Job. Enricher, Recorder and
// Notifier are optional.
type JobConfig struct {
	Source   FeedSource
	Enricher Enricher
	Writer   *Writer
	Recorder RunRecorder
	Notifier Notifier
	Query    string
	Logger   logger.Logger
}

// NewJob builds an ingestion job.
func NewJob(cfg JobConfig) *Job {
	log := cfg.Logger
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Job{
		source:   cfg.Source,
		enricher: cfg.Enricher,
		writer:   cfg.Writer,
		recorder: cfg.Recorder,
		notifier: cfg.Notifier,
		query:    cfg.Query,
		log:      log,
	}
}

// Run executes one ingestion run. A fetch failure aborts the run before
// any write; write failures are isolated per item and reported in the
// returned error without stopping the batch.
func (j *Job) Run(ctx context.Context) error {
	rec := RunRecord{StartedAt: time.Now().UTC()}

	raws, err := j.source.Latest(ctx, j.query)
	if err != nil {
		rec.FinishedAt = time.Now().UTC()
		rec.Error = err.Error()
		j.finish(ctx, rec)
		return fmt.Errorf("fetch feed: %w", err)
	}
	rec.Fetched = len(raws)

	if j.enricher != nil {
		raws = j.enricher.Enrich(ctx, raws)
	}

	drafts := Transform(raws)

	result, writeErr := j.writer.WriteBatch(ctx, drafts)
	rec.Stored = result.Stored
	rec.Failed = result.Failed
	rec.FinishedAt = time.Now().UTC()
	if writeErr != nil {
		rec.Error = writeErr.Error()
	}

	j.finish(ctx, rec)

	if writeErr != nil {
		return fmt.Errorf("write batch: %w", writeErr)
	}
	return nil
}

// finish records and announces the run outcome.
func (j *Job) finish(ctx context.Context, rec RunRecord) {
	j.log.InfoObj("ingestion run finished", "ingest_run", map[string]any{
		"fetched":     rec.Fetched,
		"stored":      rec.Stored,
		"failed":      rec.Failed,
		"duration_ms": rec.FinishedAt.Sub(rec.StartedAt).Milliseconds(),
		"error":       rec.Error,
	})

	if j.recorder != nil {
		if err := j.recorder.Record(ctx, rec); err != nil {
			j.log.WarnObj("run journal write failed", "run_journal_error", map[string]any{
				"error": err.Error(),
			})
		}
	}

	if j.notifier != nil {
		j.notifier.RunCompleted(ctx, rec)
	}
}
