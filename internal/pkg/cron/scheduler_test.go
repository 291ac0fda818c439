package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduler_SkipsDisabledJobs(t *testing.T) {
	s := NewScheduler()
	s.AddJob("purge", time.Minute, func(ctx context.Context) error { return nil })
	s.AddJob("disabled", 0, func(ctx context.Context) error { return nil })

	assert.Equal(t, []string{"purge"}, s.Jobs())
}

func TestScheduler_RunOnce(t *testing.T) {
	var calls atomic.Int32
	s := NewScheduler()
	s.AddJob("ok", time.Hour, func(ctx context.Context) error { calls.Add(1); return nil })
	s.AddJob("failing", time.Hour, func(ctx context.Context) error { calls.Add(1); return errors.New("boom") })

	s.RunOnce(context.Background())
	assert.Equal(t, int32(2), calls.Load())
}

func TestScheduler_RunsUntilStopped(t *testing.T) {
	var calls atomic.Int32
	s := NewScheduler()
	s.AddJob("tick", 5*time.Millisecond, func(ctx context.Context) error { calls.Add(1); return nil })

	s.Start(context.Background())
	s.Start(context.Background())
	assert.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, 5*time.Millisecond)

	s.Stop()
	stopped := calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, calls.Load())
}

func TestScheduler_StopsWithContext(t *testing.T) {
	s := NewScheduler()
	s.AddJob("tick", time.Millisecond, func(ctx context.Context) error { return nil })

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() { s.Stop(); close(done) }()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}
