// Package publishers fans ingestion-run events out to configured sinks:
// cloud queues (AWS SQS/SNS, GCP Pub/Sub) and generic HTTP endpoints.
package publishers

import (
	"context"
	"time"
)

// Event describes one completed ingestion run.
type Event struct {
	Source     string    `json:"source"`
	Query      string    `json:"query"`
	Fetched    int       `json:"fetched"`
	Stored     int       `json:"stored"`
	Failed     int       `json:"failed"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Publisher delivers events to one configured sink.
type Publisher interface {
	ID() string
	Type() string
	Publish(ctx context.Context, evt Event) error
}

// Logger is the logging surface this package needs. It matches the
// service-wide logger so any implementation can be passed straight in.
type Logger interface {
	DebugObj(msg, event string, fields map[string]any)
	InfoObj(msg, event string, fields map[string]any)
	WarnObj(msg, event string, fields map[string]any)
	ErrorObj(msg, event string, fields map[string]any)
}

type nopLogger struct{}

func (nopLogger) DebugObj(msg, event string, fields map[string]any) {}
func (nopLogger) InfoObj(msg, event string, fields map[string]any)  {}
func (nopLogger) WarnObj(msg, event string, fields map[string]any)  {}
func (nopLogger) ErrorObj(msg, event string, fields map[string]any) {}

func ensureLogger(log Logger) Logger {
	if log == nil {
		return nopLogger{}
	}
	return log
}
