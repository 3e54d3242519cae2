package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/product-catalog/config"
)

type widget struct {
	ID   int64
	Name string
}

func TestSetup_None(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.Tracing{Exporter: config.ExporterNone})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetup_Stdout(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.Tracing{
		Exporter:    config.ExporterStdout,
		ServiceName: "product-catalog-test",
	})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetup_Unsupported(t *testing.T) {
	_, err := Setup(context.Background(), config.Tracing{Exporter: "zipkin"})
	assert.ErrorContains(t, err, "unsupported trace exporter: zipkin")
}

func TestRegisterGORMCallbacks(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&widget{}))
	require.NoError(t, RegisterGORMCallbacks(db, tp))

	ctx, parent := tp.Tracer("test").Start(context.Background(), "parent")
	require.NoError(t, db.WithContext(ctx).Create(&widget{Name: "gear"}).Error)

	var found []widget
	require.NoError(t, db.WithContext(ctx).Find(&found).Error)
	assert.Len(t, found, 1)

	err = db.WithContext(ctx).Table("missing_table").Find(&found).Error
	require.Error(t, err)
	parent.End()

	spans := recorder.Ended()
	require.Len(t, spans, 4)

	assert.Equal(t, "db.create", spans[0].Name())
	assert.Equal(t, "db.query", spans[1].Name())
	assert.Equal(t, "db.query", spans[2].Name())
	assert.Equal(t, codes.Error, spans[2].Status().Code)
	assert.Equal(t, "parent", spans[3].Name())

	for _, span := range spans[:3] {
		assert.Equal(t, parent.SpanContext().SpanID(), span.Parent().SpanID())
	}
}
