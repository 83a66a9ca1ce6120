package logger

import (
	"context"

	"portfoliohub/pkg/trace"

	"go.uber.org/zap"
)

var Log *zap.Logger

// NewLogger 创建全局 logger，development 为 true 时输出可读格式
func NewLogger(development bool) *zap.Logger {
	build := zap.NewProduction
	if development {
		build = zap.NewDevelopment
	}
	l, err := build()
	if err != nil {
		panic(err)
	}
	Log = l
	return l
}

// WithTrace 从 context 中提取 trace_id 并添加到 logger
func WithTrace(ctx context.Context, logger *zap.Logger) *zap.Logger {
	traceID := trace.FromContext(ctx)
	if traceID != "" {
		return logger.With(zap.String("trace_id", traceID))
	}
	return logger
}
