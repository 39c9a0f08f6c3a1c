// Package runlog keeps a local journal of ingestion run outcomes in a
// bbolt file so operators can inspect recent runs without database access.
package runlog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/padmin-io/newsboard/internal/ingest"
)

var runsBucket = []byte("runs")

// Journal records ingestion runs keyed by their start time.
type Journal struct {
	db *bolt.DB
}

// Open creates or opens the journal file at path.
func Open(path string) (*Journal, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open run journal: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(runsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init run journal: %w", err)
	}

	return &Journal{db: db}, nil
}

// Close releases the journal file.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Record stores the run outcome. Keys sort chronologically because they
// are RFC 3339 timestamps.
func (j *Journal) Record(_ context.Context, rec ingest.RunRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal run record: %w", err)
	}

	key := []byte(rec.StartedAt.UTC().Format(time.RFC3339Nano))

	err = j.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(runsBucket).Put(key, payload)
	})
	if err != nil {
		return fmt.Errorf("store run record: %w", err)
	}
	return nil
}

// Recent returns up to n most recent run records, newest first.
func (j *Journal) Recent(n int) ([]ingest.RunRecord, error) {
	if n <= 0 {
		return nil, nil
	}

	var records []ingest.RunRecord
	err := j.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(runsBucket).Cursor()
		for k, v := c.Last(); k != nil && len(records) < n; k, v = c.Prev() {
			var rec ingest.RunRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("decode run record %s: %w", k, err)
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
