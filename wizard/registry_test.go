package wizard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRegistryReusesAndExpires(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	created := 0
	r := NewRegistry(30*time.Minute, func() *Orchestrator {
		created++
		return NewOrchestrator(&mockGateway{}, nil)
	})
	r.now = func() time.Time { return now }

	a := r.Get("sess-1")
	assert.Same(t, a, r.Get("sess-1"))
	assert.NotSame(t, a, r.Get("sess-2"))
	assert.Equal(t, 2, created)

	now = now.Add(20 * time.Minute)
	assert.Same(t, a, r.Get("sess-1"), "erişim süresi uzatır")

	now = now.Add(15 * time.Minute)
	assert.Equal(t, 1, r.Sweep(), "sess-2 süresi doldu")
	assert.Equal(t, 1, r.Len())

	now = now.Add(31 * time.Minute)
	assert.NotSame(t, a, r.Get("sess-1"))
	assert.Equal(t, 3, created)

	r.Drop("sess-1")
	assert.Equal(t, 0, r.Len())
}

func TestRegistryRunStopsWithContext(t *testing.T) {
	r := NewRegistry(time.Minute, func() *Orchestrator { return NewOrchestrator(&mockGateway{}, nil) })
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx, 10*time.Millisecond)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run durmadı")
	}
}
