package db_models

import "gorm.io/datatypes"

// SearchCacheEntry stores one raw local-search response keyed by query.
type SearchCacheEntry struct {
	BaseModel
	CacheKey  string         `gorm:"uniqueIndex;not null"`
	Query     string         `gorm:"not null"`
	Display   int            `gorm:"not null"`
	Payload   datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	ExpiresAt int64          `gorm:"index;not null"`
}

func (SearchCacheEntry) TableName() string {
	return "search_cache_entries"
}
