package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/NateStaxx/FetchDeck/internal/panel"
	"github.com/NateStaxx/FetchDeck/internal/store"
)

type countingProber struct {
	calls atomic.Int32
}

func (c *countingProber) Probe(ctx context.Context, st panel.StatusStore) {
	c.calls.Add(1)
	_, hasDeadline := ctx.Deadline()
	st.Save(panel.Status{Panel: "dog", OK: hasDeadline, Timestamp: time.Now().UTC()})
}

func TestSchedulerDisabled(t *testing.T) {
	p := &countingProber{}
	s := New(p, store.NewMemoryStore(1), 0, time.Second, zap.NewNop())
	require.NoError(t, s.Start())
	defer s.Stop()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), p.calls.Load())
}

func TestSchedulerRunsProbe(t *testing.T) {
	p := &countingProber{}
	st := store.NewMemoryStore(10)
	s := New(p, st, 20*time.Millisecond, time.Second, zap.NewNop())
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool { return p.calls.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)

	latest := st.Latest()
	require.Len(t, latest, 1)
	assert.True(t, latest[0].OK, "probe context carries a deadline")
}
