package repository

import (
	"time"

	"taskbot-backend/internal/scan/domain"

	"gorm.io/gorm"
)

// SourceConfigRepository defines data access for per-source scanning preferences
type SourceConfigRepository interface {
	// GetOrDefault returns the stored config for a source, or the defaults
	// (auto-detect on, notifications off) when none exists
	GetOrDefault(sourceID string) (*domain.SourceConfig, error)

	// Upsert creates or updates the config for a source
	Upsert(config *domain.SourceConfig) error
}

// gormSourceConfigRepository implements SourceConfigRepository using GORM
type gormSourceConfigRepository struct {
	db *gorm.DB
}

// NewGormSourceConfigRepository creates a new GORM-based SourceConfigRepository
func NewGormSourceConfigRepository(db *gorm.DB) SourceConfigRepository {
	db.AutoMigrate(&domain.SourceConfig{})
	return &gormSourceConfigRepository{db: db}
}

func (r *gormSourceConfigRepository) GetOrDefault(sourceID string) (*domain.SourceConfig, error) {
	var config domain.SourceConfig
	err := r.db.Where("source_id = ?", sourceID).First(&config).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return &domain.SourceConfig{
				SourceID:   sourceID,
				AutoDetect: true,
			}, nil
		}
		return nil, err
	}
	return &config, nil
}

func (r *gormSourceConfigRepository) Upsert(config *domain.SourceConfig) error {
	var existing domain.SourceConfig
	err := r.db.Where("source_id = ?", config.SourceID).First(&existing).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			config.CreatedAt = time.Now()
			config.UpdatedAt = time.Now()
			return r.db.Create(config).Error
		}
		return err
	}

	existing.AutoDetect = config.AutoDetect
	existing.NotifyOnCreate = config.NotifyOnCreate
	existing.UpdatedAt = time.Now()
	if err := r.db.Save(&existing).Error; err != nil {
		return err
	}
	*config = existing
	return nil
}
