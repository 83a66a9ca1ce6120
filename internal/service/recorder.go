package service

import (
	"context"

	"portfoliohub/internal/events"
	"portfoliohub/pkg/logger"
	"portfoliohub/pkg/metrics"

	"go.uber.org/zap"
)

// recorder 每次成功变更后的副作用：日志、计数和变更事件
type recorder struct {
	notifier *events.Notifier
	logger   *zap.Logger
}

func (r recorder) record(ctx context.Context, entity, op, routingKey, id, actor string, data any) {
	metrics.IncrementStoreMutation(entity, op)
	logger.WithTrace(ctx, r.logger).Info("Record store mutated",
		zap.String("entity", entity),
		zap.String("op", op),
		zap.String("id", id),
		zap.String("actor", actor),
	)
	r.notifier.Notify(ctx, routingKey, id, actor, data)
}
