package product

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

// Query is a filtered product lookup that has not run yet. Every
// materializing call executes the statement again, so a Query may be
// consumed any number of times. Row order is unspecified.
type Query struct {
	db     *gorm.DB
	ctx    context.Context
	tracer trace.Tracer
	name   string
}

// All runs the query and returns every matching product.
func (q *Query) All() ([]Product, error) {
	tx, span := q.begin()
	defer span.End()

	products := make([]Product, 0)
	if err := tx.Find(&products).Error; err != nil {
		return nil, q.fail(span, err)
	}
	return products, nil
}

// Count returns the number of matching products.
func (q *Query) Count() (int64, error) {
	tx, span := q.begin()
	defer span.End()

	var n int64
	if err := tx.Count(&n).Error; err != nil {
		return 0, q.fail(span, err)
	}
	return n, nil
}

// First returns one matching product, or nil when there is none.
func (q *Query) First() (*Product, error) {
	tx, span := q.begin()
	defer span.End()

	var p Product
	err := tx.Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, q.fail(span, err)
	}
	return &p, nil
}

// Each streams matching products to fn through a row cursor and stops at
// the first error fn returns.
func (q *Query) Each(fn func(*Product) error) error {
	tx, span := q.begin()
	defer span.End()

	rows, err := tx.Rows()
	if err != nil {
		return q.fail(span, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p Product
		if err := tx.ScanRows(rows, &p); err != nil {
			return q.fail(span, err)
		}
		if err := fn(&p); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return q.fail(span, err)
	}
	return nil
}

func (q *Query) begin() (*gorm.DB, trace.Span) {
	ctx, span := q.tracer.Start(q.ctx, q.name)
	return q.db.WithContext(ctx), span
}

func (q *Query) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return fmt.Errorf("%s: %w", q.name, err)
}
