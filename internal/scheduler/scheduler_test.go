package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingJob struct {
	runs  atomic.Int64
	err   error
	panic bool
}

func (j *countingJob) Run(context.Context) error {
	j.runs.Add(1)
	if j.panic {
		panic("job exploded")
	}
	return j.err
}

func TestSchedulerFiresRepeatedly(t *testing.T) {
	job := &countingJob{}
	s := New(10*time.Millisecond, job, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	s.Start(ctx)

	assert.GreaterOrEqual(t, job.runs.Load(), int64(3))
}

func TestSchedulerSurvivesFailingRuns(t *testing.T) {
	job := &countingJob{err: errors.New("feed unreachable")}
	s := New(10*time.Millisecond, job, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	s.Start(ctx)

	// The first failure must not stop subsequent ticks.
	assert.GreaterOrEqual(t, job.runs.Load(), int64(3))
}

func TestSchedulerSurvivesPanickingRuns(t *testing.T) {
	job := &countingJob{panic: true}
	s := New(10*time.Millisecond, job, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	s.Start(ctx)

	assert.GreaterOrEqual(t, job.runs.Load(), int64(3))
}

func TestSchedulerStopsOnCancel(t *testing.T) {
	job := &countingJob{}
	s := New(5*time.Millisecond, job, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancellation")
	}
}
