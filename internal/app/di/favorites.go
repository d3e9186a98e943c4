package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	favadapters "stock_search/internal/feature/favorites/adapters"
	"stock_search/internal/feature/favorites/usecase"
)

// NewFavoriteRepository creates a FavoriteRepository implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to the database.
func NewFavoriteRepository(rdb *redis.Client, db *gorm.DB) usecase.FavoriteRepository {
	if rdb != nil {
		return favadapters.NewFavoriteRedis(rdb)
	}
	return favadapters.NewFavoriteGorm(db)
}
