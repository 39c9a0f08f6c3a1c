package runlog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padmin-io/newsboard/internal/ingest"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestRecordAndRecent(t *testing.T) {
	j := openTestJournal(t)
	base := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	for i := range 5 {
		err := j.Record(context.Background(), ingest.RunRecord{
			StartedAt:  base.Add(time.Duration(i) * time.Minute),
			FinishedAt: base.Add(time.Duration(i)*time.Minute + time.Second),
			Fetched:    10,
			Stored:     9,
			Failed:     1,
		})
		require.NoError(t, err)
	}

	records, err := j.Recent(3)
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Newest first.
	assert.Equal(t, base.Add(4*time.Minute), records[0].StartedAt)
	assert.Equal(t, base.Add(3*time.Minute), records[1].StartedAt)
	assert.Equal(t, base.Add(2*time.Minute), records[2].StartedAt)
	assert.Equal(t, 9, records[0].Stored)
}

func TestRecentOnEmptyJournal(t *testing.T) {
	j := openTestJournal(t)

	records, err := j.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRecentZero(t *testing.T) {
	j := openTestJournal(t)

	records, err := j.Recent(0)
	require.NoError(t, err)
	assert.Nil(t, records)
}
