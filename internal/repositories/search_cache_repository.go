package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"tripmate/internal/infra"
	"tripmate/internal/models/db_models"
	"tripmate/pkg/utils"
)

type SearchCacheRepository interface {
	// FindValid returns nil, nil when the key is missing or expired at now.
	FindValid(ctx context.Context, cacheKey string, now int64) (*db_models.SearchCacheEntry, error)
	Upsert(ctx context.Context, entry *db_models.SearchCacheEntry) error
	DeleteExpired(ctx context.Context, now int64) (int64, error)
	Ping(ctx context.Context) error
}

type searchCacheRepository struct {
	db *gorm.DB
}

func NewSearchCacheRepository(db *gorm.DB) SearchCacheRepository {
	return &searchCacheRepository{db: db}
}

func (r *searchCacheRepository) FindValid(ctx context.Context, cacheKey string, now int64) (*db_models.SearchCacheEntry, error) {
	var entry db_models.SearchCacheEntry
	err := r.db.WithContext(ctx).
		Where("cache_key = ? AND expires_at > ?", cacheKey, now).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: failed to read search cache: %w", utils.ErrDatabaseError, err)
	}
	return &entry, nil
}

func (r *searchCacheRepository) Upsert(ctx context.Context, entry *db_models.SearchCacheEntry) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cache_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"query", "display", "payload", "expires_at", "updated_at"}),
	}).Create(entry).Error
	if err != nil {
		return fmt.Errorf("%w: failed to write search cache: %w", utils.ErrDatabaseError, err)
	}
	return nil
}

func (r *searchCacheRepository) DeleteExpired(ctx context.Context, now int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&db_models.SearchCacheEntry{})
	if res.Error != nil {
		return 0, fmt.Errorf("%w: failed to purge search cache: %w", utils.ErrDatabaseError, res.Error)
	}
	return res.RowsAffected, nil
}

func (r *searchCacheRepository) Ping(ctx context.Context) error {
	if err := infra.PingPostgresql(ctx, r.db); err != nil {
		return fmt.Errorf("%w: %w", utils.ErrDatabaseError, err)
	}
	return nil
}
