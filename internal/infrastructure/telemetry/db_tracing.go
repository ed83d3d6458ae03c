package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/isletme/backend/internal/infrastructure/config"
)

type contextKey string

const queryStartKey contextKey = "telemetry.query_start"

// callbackRegistrar is satisfied by gorm's positioned callback builder
type callbackRegistrar interface {
	Register(name string, fn func(*gorm.DB)) error
}

// DBTracing registers otelgorm plus slow query marking on a gorm handle
type DBTracing struct {
	slowThreshold time.Duration
	logFullSQL    bool
	logger        *zap.Logger
	now           func() time.Time
}

// NewDBTracing builds the plugin from the telemetry config
func NewDBTracing(cfg config.TelemetryConfig, logger *zap.Logger) *DBTracing {
	return &DBTracing{
		slowThreshold: cfg.DBSlowQueryThresh,
		logFullSQL:    cfg.DBLogFullSQL,
		logger:        logger,
		now:           time.Now,
	}
}

// Register installs otelgorm and the timing callbacks on db
func (t *DBTracing) Register(db *gorm.DB) error {
	opts := []otelgorm.Option{otelgorm.WithDBName("postgresql")}
	if !t.logFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}
	if err := t.registerCallbacks(db); err != nil {
		return err
	}

	t.logger.Info("database tracing enabled",
		zap.Bool("log_full_sql", t.logFullSQL),
		zap.Duration("slow_query_threshold", t.slowThreshold),
	)
	return nil
}

func (t *DBTracing) registerCallbacks(db *gorm.DB) error {
	cb := db.Callback()
	hooks := []struct {
		op            string
		before, after callbackRegistrar
	}{
		{"create", cb.Create().Before("gorm:create"), cb.Create().After("gorm:create")},
		{"query", cb.Query().Before("gorm:query"), cb.Query().After("gorm:query")},
		{"update", cb.Update().Before("gorm:update"), cb.Update().After("gorm:update")},
		{"delete", cb.Delete().Before("gorm:delete"), cb.Delete().After("gorm:delete")},
		{"row", cb.Row().Before("gorm:row"), cb.Row().After("gorm:row")},
		{"raw", cb.Raw().Before("gorm:raw"), cb.Raw().After("gorm:raw")},
	}
	for _, h := range hooks {
		if err := h.before.Register("telemetry:before_"+h.op, t.before); err != nil {
			return err
		}
		if err := h.after.Register("telemetry:after_"+h.op, t.after); err != nil {
			return err
		}
	}
	return nil
}

func (t *DBTracing) before(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartKey, t.now())
	}
}

func (t *DBTracing) after(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	start, ok := ctx.Value(queryStartKey).(time.Time)
	if !ok || t.slowThreshold <= 0 {
		return
	}
	if elapsed := t.now().Sub(start); elapsed > t.slowThreshold {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
		span.AddEvent("slow_query", trace.WithAttributes(
			attribute.Int64("threshold_ms", t.slowThreshold.Milliseconds()),
		))
	}
}
