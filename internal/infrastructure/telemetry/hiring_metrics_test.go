package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/hirehub/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
)

type stubCatalogProvider struct {
	employees int64
	hires     int64
	err       error
}

func (p *stubCatalogProvider) CountActiveEmployees(ctx context.Context) (int64, error) {
	return p.employees, p.err
}

func (p *stubCatalogProvider) CountActiveHires(ctx context.Context) (int64, error) {
	return p.hires, p.err
}

func TestNewHiringMetrics(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")

	hm, err := telemetry.NewHiringMetrics(telemetry.HiringMetricsConfig{
		Meter:  meter,
		Logger: zap.NewNop(),
	})

	require.NoError(t, err)
	require.NotNil(t, hm)
}

func TestNewHiringMetrics_NilMeter(t *testing.T) {
	hm, err := telemetry.NewHiringMetrics(telemetry.HiringMetricsConfig{
		Meter:  nil,
		Logger: zap.NewNop(),
	})

	require.Error(t, err)
	assert.Nil(t, hm)
	assert.ErrorIs(t, err, telemetry.ErrMeterNil)
}

func TestHiringMetrics_RecordHireAttempt(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	hm, err := telemetry.NewHiringMetrics(telemetry.HiringMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	ctx := context.Background()

	// Should not panic
	hm.RecordHireAttempt(ctx, "hired")
	hm.RecordHireAttempt(ctx, "already_hired")
	hm.RecordHireAttempt(ctx, "store_unavailable")
}

func TestHiringMetrics_RecordCacheLookup(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	hm, err := telemetry.NewHiringMetrics(telemetry.HiringMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	ctx := context.Background()

	// Should not panic
	hm.RecordCacheLookup(ctx, "hit")
	hm.RecordCacheLookup(ctx, "miss")
	hm.RecordCacheLookup(ctx, "error")
}

func TestHiringMetrics_RecordCatalogQuery(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	hm, err := telemetry.NewHiringMetrics(telemetry.HiringMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	ctx := context.Background()

	// Should not panic
	hm.RecordCatalogQuery(ctx, 5*time.Millisecond, "dev")
	hm.RecordCatalogQuery(ctx, 12*time.Millisecond, "all")
}

func TestHiringMetrics_PeriodicCollection(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	provider := &stubCatalogProvider{employees: 42, hires: 7}

	hm, err := telemetry.NewHiringMetrics(telemetry.HiringMetricsConfig{
		Meter:           meter,
		Logger:          zap.NewNop(),
		CatalogProvider: provider,
	})
	require.NoError(t, err)

	ctx := context.Background()
	hm.StartPeriodicCollection(ctx, 10*time.Millisecond)

	// Give the collector time to run at least once
	time.Sleep(50 * time.Millisecond)

	hm.Stop()
	// Stop is idempotent
	hm.Stop()
}

func TestHiringMetrics_PeriodicCollection_NoProvider(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	hm, err := telemetry.NewHiringMetrics(telemetry.HiringMetricsConfig{
		Meter:  meter,
		Logger: zap.NewNop(),
	})
	require.NoError(t, err)

	// Should be a no-op without a provider
	hm.StartPeriodicCollection(context.Background(), 10*time.Millisecond)
	hm.Stop()
}

func TestHiringMetrics_PeriodicCollection_ProviderError(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	provider := &stubCatalogProvider{err: assert.AnError}

	hm, err := telemetry.NewHiringMetrics(telemetry.HiringMetricsConfig{
		Meter:           meter,
		Logger:          zap.NewNop(),
		CatalogProvider: provider,
	})
	require.NoError(t, err)

	ctx := context.Background()
	hm.StartPeriodicCollection(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	hm.Stop()
}
