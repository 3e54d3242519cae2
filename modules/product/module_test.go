package product

import (
	"context"
	"testing"

	"github.com/go-monolith/mono/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/product-catalog/config"
)

// mockLogger implements types.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(_ string, _ ...any) {}
func (m *mockLogger) Info(_ string, _ ...any)  {}
func (m *mockLogger) Warn(_ string, _ ...any)  {}
func (m *mockLogger) Error(_ string, _ ...any) {}
func (m *mockLogger) With(_ ...any) types.Logger {
	return m
}
func (m *mockLogger) WithModule(_ string) types.Logger {
	return m
}
func (m *mockLogger) WithError(_ error) types.Logger {
	return m
}

func newMockLogger() types.Logger {
	return &mockLogger{}
}

// startModule runs a product module against an in-memory SQLite database.
func startModule(t *testing.T) *Module {
	t.Helper()

	m := NewModule(config.Database{Driver: config.DriverSQLite, URI: ":memory:"}, newMockLogger())
	require.NoError(t, m.Start(context.Background()))
	t.Cleanup(func() { _ = m.Stop(context.Background()) })
	return m
}

func TestModule_Name(t *testing.T) {
	m := NewModule(config.Database{}, newMockLogger())
	assert.Equal(t, "product", m.Name())
}

func TestModule_HealthBeforeStart(t *testing.T) {
	m := NewModule(config.Database{Driver: config.DriverSQLite, URI: ":memory:"}, newMockLogger())

	status := m.Health(context.Background())
	assert.False(t, status.Healthy)
	assert.Equal(t, "database not initialized", status.Message)
	assert.Nil(t, m.GetService())

	// Stop before Start is a no-op.
	assert.NoError(t, m.Stop(context.Background()))
}

func TestModule_StartStop(t *testing.T) {
	m := NewModule(config.Database{Driver: config.DriverSQLite, URI: ":memory:"}, newMockLogger())
	ctx := context.Background()

	require.NoError(t, m.Start(ctx))
	require.NotNil(t, m.GetService())

	status := m.Health(ctx)
	assert.True(t, status.Healthy)
	assert.Equal(t, "operational", status.Message)
	assert.Equal(t, config.DriverSQLite, status.Details["driver"])

	require.NoError(t, m.Stop(ctx))

	status = m.Health(ctx)
	assert.False(t, status.Healthy)
	assert.Contains(t, status.Message, "database ping failed")
}

func TestModule_StartUnsupportedDriver(t *testing.T) {
	m := NewModule(config.Database{Driver: "oracle", URI: "x"}, newMockLogger())

	err := m.Start(context.Background())
	assert.ErrorContains(t, err, "unsupported database driver: oracle")
}
