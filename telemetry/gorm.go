package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

const (
	tracerName  = "github.com/example/product-catalog/telemetry"
	gormSpanKey = "catalog:gorm:span"
)

// RegisterGORMCallbacks wraps every gorm statement in a span named after
// its kind (db.query, db.create, ...). The span becomes a child of the
// span carried by the statement context.
func RegisterGORMCallbacks(db *gorm.DB, tp trace.TracerProvider) error {
	tracer := tp.Tracer(tracerName)
	cb := db.Callback()

	if err := cb.Query().Before("gorm:query").Register("catalog:before_query", startSpan(tracer, "db.query")); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("catalog:after_query", endSpan); err != nil {
		return err
	}

	if err := cb.Create().Before("gorm:create").Register("catalog:before_create", startSpan(tracer, "db.create")); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("catalog:after_create", endSpan); err != nil {
		return err
	}

	if err := cb.Update().Before("gorm:update").Register("catalog:before_update", startSpan(tracer, "db.update")); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("catalog:after_update", endSpan); err != nil {
		return err
	}

	if err := cb.Delete().Before("gorm:delete").Register("catalog:before_delete", startSpan(tracer, "db.delete")); err != nil {
		return err
	}
	if err := cb.Delete().After("gorm:delete").Register("catalog:after_delete", endSpan); err != nil {
		return err
	}

	if err := cb.Row().Before("gorm:row").Register("catalog:before_row", startSpan(tracer, "db.row")); err != nil {
		return err
	}
	if err := cb.Row().After("gorm:row").Register("catalog:after_row", endSpan); err != nil {
		return err
	}

	return nil
}

func startSpan(tracer trace.Tracer, name string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		if db.Statement.Context == nil {
			return
		}
		ctx, span := tracer.Start(db.Statement.Context, name,
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(attribute.String("db.system", db.Dialector.Name())),
		)
		db.Statement.Context = ctx
		db.InstanceSet(gormSpanKey, span)
	}
}

func endSpan(db *gorm.DB) {
	v, ok := db.InstanceGet(gormSpanKey)
	if !ok {
		return
	}
	span, ok := v.(trace.Span)
	if !ok {
		return
	}
	defer span.End()

	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	span.SetAttributes(attribute.Int64("db.rows_affected", db.RowsAffected))

	if db.Error != nil {
		span.RecordError(db.Error)
		span.SetStatus(codes.Error, db.Error.Error())
	}
}
