package telemetry

import (
	"context"

	"gorm.io/gorm"
)

// GormCatalogMetricsProvider implements CatalogMetricsProvider using GORM.
// It queries the employees and hires tables directly for aggregated metrics.
type GormCatalogMetricsProvider struct {
	db *gorm.DB
}

// NewGormCatalogMetricsProvider creates a new GormCatalogMetricsProvider.
func NewGormCatalogMetricsProvider(db *gorm.DB) *GormCatalogMetricsProvider {
	return &GormCatalogMetricsProvider{db: db}
}

// CountActiveEmployees returns the number of offerable employees.
func (p *GormCatalogMetricsProvider) CountActiveEmployees(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("employees").
		Where("status = ?", "active").
		Count(&count).Error

	return count, err
}

// CountActiveHires returns the number of active hire records.
func (p *GormCatalogMetricsProvider) CountActiveHires(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("hires").
		Where("active = ?", true).
		Count(&count).Error

	return count, err
}

var _ CatalogMetricsProvider = (*GormCatalogMetricsProvider)(nil)
