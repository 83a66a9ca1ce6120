// Package events 在数据变更成功后发布通知。发布失败只记录日志，不影响请求结果。
package events

import (
	"context"
	"errors"
	"time"

	"portfoliohub/pkg/circuitbreaker"
	"portfoliohub/pkg/logger"
	"portfoliohub/pkg/metrics"
	"portfoliohub/pkg/trace"

	"go.uber.org/zap"
)

// Publisher pkg/mq.Publisher 实现了该接口
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

type Notifier struct {
	pub     Publisher
	breaker *circuitbreaker.CircuitBreaker
	logger  *zap.Logger
	timeout time.Duration
	now     func() time.Time
}

// NewNotifier pub 为 nil 时只记录 debug 日志
func NewNotifier(pub Publisher, logger *zap.Logger) *Notifier {
	n := &Notifier{
		pub:     pub,
		breaker: circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig()),
		logger:  logger,
		timeout: 2 * time.Second,
		now:     time.Now,
	}
	n.breaker.OnStateChange = func(from, to circuitbreaker.State) {
		logger.Warn("Event publisher circuit breaker state changed",
			zap.String("from", from.String()),
			zap.String("to", to.String()),
		)
	}
	return n
}

// Notify 发布一条变更事件
func (n *Notifier) Notify(ctx context.Context, routingKey, entityID, actor string, data any) {
	if n == nil {
		return
	}
	log := logger.WithTrace(ctx, n.logger)

	if n.pub == nil {
		metrics.IncrementEventPublished(routingKey, "skipped")
		log.Debug("Event publisher not configured, skipping", zap.String("routing_key", routingKey))
		return
	}

	evt := Event{
		Type:       routingKey,
		EntityID:   entityID,
		Actor:      actor,
		TraceID:    trace.FromContext(ctx),
		OccurredAt: n.now().UTC(),
		Data:       data,
	}

	// 请求结束后 ctx 会被取消，发布使用独立的超时
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	defer cancel()

	err := n.breaker.Execute(func() error {
		return n.pub.Publish(pubCtx, routingKey, evt)
	})
	switch {
	case err == nil:
		metrics.IncrementEventPublished(routingKey, "success")
		log.Debug("Event published",
			zap.String("routing_key", routingKey),
			zap.String("entity_id", entityID),
		)
	case errors.Is(err, circuitbreaker.ErrCircuitBreakerOpen):
		metrics.IncrementEventPublished(routingKey, "skipped")
		log.Warn("Event dropped, circuit breaker open", zap.String("routing_key", routingKey))
	default:
		metrics.IncrementEventPublished(routingKey, "failed")
		log.Error("Failed to publish event",
			zap.String("routing_key", routingKey),
			zap.String("entity_id", entityID),
			zap.Error(err),
		)
	}
}
