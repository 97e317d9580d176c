package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type traceModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100"`
}

func newTraceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&traceModel{}))
	return db
}

func newSpanRecorder(t *testing.T) (*sdktrace.TracerProvider, *tracetest.SpanRecorder) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return tp, recorder
}

func TestRegisterDBTracing_Disabled(t *testing.T) {
	db := newTraceTestDB(t)

	err := RegisterDBTracing(db, DBTracingConfig{Enabled: false}, zaptest.NewLogger(t))
	require.NoError(t, err)

	// No plugin registered, queries still work.
	assert.NoError(t, db.Create(&traceModel{Name: "plain"}).Error)
}

func TestRegisterDBTracing_Enabled(t *testing.T) {
	db := newTraceTestDB(t)

	err := RegisterDBTracing(db, DBTracingConfig{Enabled: true, DBName: "costview"}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.NoError(t, db.Create(&traceModel{Name: "traced"}).Error)
}

func TestMarkStatementSpan_TableAndRows(t *testing.T) {
	db := newTraceTestDB(t)
	tp, recorder := newSpanRecorder(t)

	ctx, span := tp.Tracer("test").Start(context.Background(), "create-model")
	result := db.WithContext(ctx).Create(&traceModel{Name: "traced"})
	require.NoError(t, result.Error)

	markStatementSpan(result)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Contains(t, spans[0].Attributes(), attribute.String("db.sql.table", "trace_models"))
	assert.Contains(t, spans[0].Attributes(), attribute.Int64("db.rows_affected", 1))
	assert.NotEqual(t, codes.Error, spans[0].Status().Code)
}

func TestMarkStatementSpan_RecordNotFoundIsNotAnError(t *testing.T) {
	db := newTraceTestDB(t)
	tp, recorder := newSpanRecorder(t)

	ctx, span := tp.Tracer("test").Start(context.Background(), "find-missing")
	result := db.WithContext(ctx).First(&traceModel{}, 12345)
	require.ErrorIs(t, result.Error, gorm.ErrRecordNotFound)

	markStatementSpan(result)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.NotEqual(t, codes.Error, spans[0].Status().Code)
	assert.Empty(t, spans[0].Events())
}
