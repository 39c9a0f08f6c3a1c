// Command ingestd runs the scheduled ingestion pipeline: every tick it
// fetches the latest articles from the external feed, normalizes them and
// writes the batch to PostgreSQL.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/padmin-io/newsboard/internal/config"
	"github.com/padmin-io/newsboard/internal/enrich"
	"github.com/padmin-io/newsboard/internal/ingest"
	"github.com/padmin-io/newsboard/internal/logger"
	"github.com/padmin-io/newsboard/internal/runlog"
	"github.com/padmin-io/newsboard/internal/scheduler"
	"github.com/padmin-io/newsboard/internal/storage/postgres"
	"github.com/padmin-io/newsboard/pkg/feed"
	"github.com/padmin-io/newsboard/pkg/httpclient"
	"github.com/padmin-io/newsboard/pkg/publishers"
)

const feedSourceName = "newsdata"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logg, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db, err := postgres.Open(ctx, cfg.DatabaseDSN, logg)
	if err != nil {
		logg.ErrorObj("database connection failed", "startup_error", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer db.Close()

	journal, err := runlog.Open(cfg.RunJournalPath)
	if err != nil {
		logg.ErrorObj("run journal open failed", "startup_error", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer journal.Close()

	httpClient := httpclient.NewRestyClient(cfg.FetchTimeout)
	feedClient := feed.NewClient(httpClient, cfg.FeedBaseURL, cfg.FeedAPIKey, logg)

	var enricher ingest.Enricher
	if cfg.EnrichArticles {
		enricher = enrich.NewScraper(httpClient, logg)
	}

	writer := ingest.NewWriter(postgres.NewArticleRepository(db), logg)

	job := ingest.NewJob(ingest.JobConfig{
		Source:   feedClient,
		Enricher: enricher,
		Writer:   writer,
		Recorder: journal,
		Notifier: buildNotifier(ctx, cfg, logg),
		Query:    cfg.FeedQuery,
		Logger:   logg,
	})

	scheduler.New(cfg.FetchEvery, job, logg).Start(ctx)
}

// buildNotifier wires the optional event fan-out from the publishers
// config file. A missing file means no fan-out.
func buildNotifier(ctx context.Context, cfg config.Config, logg logger.Logger) ingest.Notifier {
	if cfg.PublishersFile == "" {
		return nil
	}

	cfgs, err := publishers.LoadConfigs(cfg.PublishersFile)
	if err != nil {
		logg.ErrorObj("publishers config load failed", "startup_error", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	pubs, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), cfgs, logg)
	if err != nil {
		logg.ErrorObj("publishers build failed", "startup_error", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	logg.InfoObj("publishers configured", "publishers_ready", map[string]any{
		"count": len(pubs),
	})

	return &runNotifier{
		fan:   publishers.NewFanOut(pubs, logg),
		query: cfg.FeedQuery,
	}
}

// runNotifier adapts completed ingestion runs to publisher events.
type runNotifier struct {
	fan   *publishers.FanOut
	query string
}

func (n *runNotifier) RunCompleted(ctx context.Context, rec ingest.RunRecord) {
	n.fan.Publish(ctx, publishers.Event{
		Source:     feedSourceName,
		Query:      n.query,
		Fetched:    rec.Fetched,
		Stored:     rec.Stored,
		Failed:     rec.Failed,
		StartedAt:  rec.StartedAt,
		FinishedAt: rec.FinishedAt,
	})
}
