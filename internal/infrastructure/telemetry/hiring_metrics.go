package telemetry

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ErrMeterNil is returned when a metrics constructor is called without a meter.
var ErrMeterNil = errors.New("meter is required")

// HiringMetrics provides business metrics for the catalog and hiring pipeline.
// It tracks hire attempts by outcome, holdings cache effectiveness, and the
// size of the offerable catalog.
type HiringMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	hireAttemptsTotal  *Counter
	holdingsCacheTotal *Counter

	// Histogram metrics
	catalogQueryDuration *Histogram

	// Gauge metrics (point-in-time values, collected periodically)
	catalogActiveEmployees *Gauge
	activeHiresTotal       *Gauge

	// Periodic collector
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	catalogProvider CatalogMetricsProvider
}

// CatalogMetricsProvider provides catalog and hiring data for periodic metrics
// collection. This interface allows the telemetry layer to query aggregate
// state without depending on the domain packages directly.
type CatalogMetricsProvider interface {
	// CountActiveEmployees returns the number of offerable employees
	CountActiveEmployees(ctx context.Context) (int64, error)

	// CountActiveHires returns the number of active hire records
	CountActiveHires(ctx context.Context) (int64, error)
}

// HiringMetricsConfig holds configuration for hiring metrics.
type HiringMetricsConfig struct {
	Meter           metric.Meter
	Logger          *zap.Logger
	CollectInterval time.Duration // Default: 5 minutes
	CatalogProvider CatalogMetricsProvider
}

// NewHiringMetrics creates a new HiringMetrics instance.
func NewHiringMetrics(cfg HiringMetricsConfig) (*HiringMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	hm := &HiringMetrics{
		meter:           cfg.Meter,
		logger:          logger,
		stopChan:        make(chan struct{}),
		catalogProvider: cfg.CatalogProvider,
	}

	var err error

	hm.hireAttemptsTotal, err = NewCounter(
		cfg.Meter,
		"hirehub_hire_attempts_total",
		"Total number of hire attempts by outcome",
		"{attempts}",
	)
	if err != nil {
		return nil, err
	}

	hm.holdingsCacheTotal, err = NewCounter(
		cfg.Meter,
		"hirehub_holdings_cache_total",
		"Total number of holdings cache lookups by result",
		"{lookups}",
	)
	if err != nil {
		return nil, err
	}

	hm.catalogQueryDuration, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "hirehub_catalog_query_duration_seconds",
		Description: "Catalog query duration in seconds",
		Unit:        "s",
		Boundaries:  SmallDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	hm.catalogActiveEmployees, err = NewGauge(
		cfg.Meter,
		"hirehub_catalog_active_employees",
		"Current number of offerable employees",
		"{employees}",
	)
	if err != nil {
		return nil, err
	}

	hm.activeHiresTotal, err = NewGauge(
		cfg.Meter,
		"hirehub_active_hires_total",
		"Current number of active hire records",
		"{hires}",
	)
	if err != nil {
		return nil, err
	}

	return hm, nil
}

// RecordHireAttempt records one hire attempt with its outcome
// ("hired", "already_hired", or an error code).
func (hm *HiringMetrics) RecordHireAttempt(ctx context.Context, status string) {
	hm.hireAttemptsTotal.Inc(ctx, AttrHireStatus.String(status))
}

// RecordCacheLookup records one holdings cache lookup result
// ("hit", "miss", or "error").
func (hm *HiringMetrics) RecordCacheLookup(ctx context.Context, result string) {
	hm.holdingsCacheTotal.Inc(ctx, AttrCacheResult.String(result))
}

// RecordCatalogQuery records the duration of one catalog query.
func (hm *HiringMetrics) RecordCatalogQuery(ctx context.Context, d time.Duration, category string) {
	hm.catalogQueryDuration.RecordDuration(ctx, d, AttrCategory.String(category))
}

// StartPeriodicCollection starts a background goroutine that periodically
// collects catalog gauges. Safe to call multiple times; only the first call
// starts the collector. No-op when no provider is configured.
func (hm *HiringMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	if hm.catalogProvider == nil {
		hm.logger.Debug("No catalog metrics provider configured, skipping periodic collection")
		return
	}

	if interval <= 0 {
		interval = 5 * time.Minute
	}

	hm.collectOnce.Do(func() {
		go hm.collectLoop(ctx, interval)
	})
}

// Stop stops the periodic collector. Safe to call multiple times.
func (hm *HiringMetrics) Stop() {
	hm.stopOnce.Do(func() {
		close(hm.stopChan)
	})
}

func (hm *HiringMetrics) collectLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect once immediately so gauges have values before the first tick
	hm.collect(ctx)

	for {
		select {
		case <-ticker.C:
			hm.collect(ctx)
		case <-hm.stopChan:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (hm *HiringMetrics) collect(ctx context.Context) {
	collectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if count, err := hm.catalogProvider.CountActiveEmployees(collectCtx); err != nil {
		hm.logger.Warn("failed to collect catalog size", zap.Error(err))
	} else {
		hm.catalogActiveEmployees.Record(collectCtx, count)
	}

	if count, err := hm.catalogProvider.CountActiveHires(collectCtx); err != nil {
		hm.logger.Warn("failed to collect active hires", zap.Error(err))
	} else {
		hm.activeHiresTotal.Record(collectCtx, count)
	}
}
