package worker_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/restaurant-locator/internal/worker"
)

// loopWorker крутится до Stop или отмены контекста
type loopWorker struct {
	*worker.BaseWorker
	started    atomic.Bool
	ignoreStop bool
}

func newLoopWorker(name string) *loopWorker {
	return &loopWorker{BaseWorker: worker.NewBaseWorker(name, "group", zap.NewNop())}
}

func (w *loopWorker) Start(ctx context.Context) error {
	w.started.Store(true)
	if w.ignoreStop {
		<-ctx.Done()
		return nil
	}
	for w.Pause(ctx, 10*time.Millisecond) {
	}
	return nil
}

func TestWorkerManager_StartStop(t *testing.T) {
	m := worker.NewWorkerManager(zap.NewNop(), time.Second)
	a, b := newLoopWorker("a"), newLoopWorker("b")
	m.Register(a)
	m.Register(b)

	require.NoError(t, m.Start(context.Background()))
	assert.Eventually(t, func() bool { return a.started.Load() && b.started.Load() }, time.Second, 5*time.Millisecond)

	require.NoError(t, m.Stop())
	assert.True(t, a.IsStopped())
	assert.True(t, b.IsStopped())
}

func TestWorkerManager_NoWorkers(t *testing.T) {
	m := worker.NewWorkerManager(zap.NewNop(), 0)
	assert.Error(t, m.Start(context.Background()))
}

func TestWorkerManager_StopTimeout(t *testing.T) {
	m := worker.NewWorkerManager(zap.NewNop(), 50*time.Millisecond)
	stubborn := newLoopWorker("stubborn")
	stubborn.ignoreStop = true
	m.Register(stubborn)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, m.Start(ctx))

	err := m.Stop()
	assert.ErrorContains(t, err, "timed out")
}

func TestBaseWorker_Pause(t *testing.T) {
	w := worker.NewBaseWorker("w", "group", zap.NewNop())
	assert.True(t, w.Pause(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, w.Pause(ctx, time.Hour))

	require.NoError(t, w.Stop())
	assert.False(t, w.Pause(context.Background(), time.Hour))
	assert.Equal(t, "group", w.ConsumerGroup())
}
