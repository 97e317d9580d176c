package telemetry

import (
	"errors"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds database span settings.
type DBTracingConfig struct {
	Enabled    bool
	DBName     string // logical database name on spans
	LogFullSQL bool   // include query variables in spans, development only
}

// RegisterDBTracing attaches the otelgorm plugin so every query runs inside a
// child span of the request, plus a callback that records the touched table
// and marks failed statements. Record-not-found is an expected outcome for
// the repositories, not a span error.
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		logger.Debug("database tracing disabled")
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBName)}
	if !cfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	mark := markStatementSpan
	if err := db.Callback().Create().After("gorm:create").Register("trace_mark:create", mark); err != nil {
		return err
	}
	if err := db.Callback().Query().After("gorm:query").Register("trace_mark:query", mark); err != nil {
		return err
	}
	if err := db.Callback().Update().After("gorm:update").Register("trace_mark:update", mark); err != nil {
		return err
	}
	if err := db.Callback().Delete().After("gorm:delete").Register("trace_mark:delete", mark); err != nil {
		return err
	}

	logger.Info("database tracing enabled", zap.String("db_name", cfg.DBName))
	return nil
}

func markStatementSpan(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	if db.Statement.RowsAffected >= 0 {
		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	}
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}
}
