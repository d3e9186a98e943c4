// Package adapters provides repository implementations for the favorites feature.
package adapters

import (
	"context"

	"stock_search/internal/feature/favorites/domain/entity"
	"stock_search/internal/feature/favorites/usecase"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// favoriteGorm is a GORM (SQLite/PostgreSQL) implementation of the FavoriteRepository interface.
type favoriteGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure favoriteGorm implements FavoriteRepository.
var _ usecase.FavoriteRepository = (*favoriteGorm)(nil)

// NewFavoriteGorm creates a new instance of favoriteGorm.
func NewFavoriteGorm(db *gorm.DB) *favoriteGorm {
	return &favoriteGorm{db: db}
}

// List retrieves a user's favorites in the order they were added.
func (r *favoriteGorm) List(ctx context.Context, userID string) ([]entity.Favorite, error) {
	var models []FavoriteModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	favs := make([]entity.Favorite, len(models))
	for i, m := range models {
		favs[i] = m.ToEntity()
	}
	return favs, nil
}

// Add inserts the favorite unless (user_id, code) already exists.
func (r *favoriteGorm) Add(ctx context.Context, fav entity.Favorite) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "code"}},
			DoNothing: true,
		}).
		Create(FavoriteModelFromEntity(fav))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Remove deletes the favorite and reports whether a row was deleted.
func (r *favoriteGorm) Remove(ctx context.Context, userID, code string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND code = ?", userID, code).
		Delete(&FavoriteModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Exists reports whether the user has registered the code.
func (r *favoriteGorm) Exists(ctx context.Context, userID, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&FavoriteModel{}).
		Where("user_id = ? AND code = ?", userID, code).
		Count(&count).Error
	return count > 0, err
}
