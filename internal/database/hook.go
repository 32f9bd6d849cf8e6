package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// SlowQueryThreshold is the duration above which queries are logged as warnings.
const SlowQueryThreshold = 500 * time.Millisecond

// Hook logs every executed query to the database logger.
type Hook struct {
	logger *zap.Logger
}

// NewHook creates a query hook writing to the given logger.
func NewHook(logger *zap.Logger) *Hook {
	return &Hook{logger: logger.Named("query")}
}

// BeforeQuery implements bun.QueryHook.
func (h *Hook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

// AfterQuery implements bun.QueryHook.
func (h *Hook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	duration := time.Since(event.StartTime)
	fields := []zap.Field{
		zap.String("operation", event.Operation()),
		zap.Duration("duration", duration),
	}

	switch {
	case event.Err != nil && !errors.Is(event.Err, sql.ErrNoRows):
		h.logger.Error("Query failed", append(fields, zap.String("query", event.Query), zap.Error(event.Err))...)
	case duration > SlowQueryThreshold:
		h.logger.Warn("Slow query", append(fields, zap.String("query", event.Query))...)
	default:
		h.logger.Debug("Query executed", append(fields, zap.String("query", event.Query))...)
	}
}
