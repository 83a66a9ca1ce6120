package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"portfoliohub/pkg/circuitbreaker"
	"portfoliohub/pkg/trace"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingPublisher struct {
	mu     sync.Mutex
	keys   []string
	events []Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.keys = append(p.keys, routingKey)
	p.events = append(p.events, payload.(Event))
	return nil
}

func TestNotifier_PublishesEvent(t *testing.T) {
	pub := &recordingPublisher{}
	n := NewNotifier(pub, zap.NewNop())
	n.now = func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) }

	ctx := trace.WithContext(context.Background(), "trace-1")
	n.Notify(ctx, ProjectCreated, "p-1", "1", map[string]string{"name": "Ledger"})

	require.Len(t, pub.events, 1)
	assert.Equal(t, []string{ProjectCreated}, pub.keys)
	evt := pub.events[0]
	assert.Equal(t, ProjectCreated, evt.Type)
	assert.Equal(t, "p-1", evt.EntityID)
	assert.Equal(t, "1", evt.Actor)
	assert.Equal(t, "trace-1", evt.TraceID)
	assert.Equal(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), evt.OccurredAt)
}

func TestNotifier_NilPublisherAndNilNotifier(t *testing.T) {
	n := NewNotifier(nil, zap.NewNop())
	assert.NotPanics(t, func() { n.Notify(context.Background(), UserCreated, "u-1", "1", nil) })

	var none *Notifier
	assert.NotPanics(t, func() { none.Notify(context.Background(), UserCreated, "u-1", "1", nil) })
}

func TestNotifier_FailuresOpenBreaker(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("connection reset")}
	n := NewNotifier(pub, zap.NewNop())

	for i := 0; i < circuitbreaker.DefaultConfig().FailureThreshold; i++ {
		n.Notify(context.Background(), ProjectUpdated, "p-1", "1", nil)
	}
	assert.Equal(t, circuitbreaker.StateOpen, n.breaker.GetState())

	// 熔断期间不再调用 publisher
	pub.err = nil
	n.Notify(context.Background(), ProjectUpdated, "p-1", "1", nil)
	assert.Empty(t, pub.events)
}
