package adapters

import (
	"time"

	"stock_search/internal/feature/favorites/domain/entity"
)

// FavoriteModel is the GORM model for the favorites table.
type FavoriteModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    string    `gorm:"size:64;not null;uniqueIndex:idx_favorites_user_code,priority:1"`
	Code      string    `gorm:"size:16;not null;uniqueIndex:idx_favorites_user_code,priority:2"`
	Name      string    `gorm:"size:255"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM.
func (FavoriteModel) TableName() string {
	return "favorites"
}

// ToEntity converts the GORM model to a domain entity.
func (m *FavoriteModel) ToEntity() entity.Favorite {
	return entity.Favorite{
		UserID:  m.UserID,
		Code:    m.Code,
		Name:    m.Name,
		AddedAt: m.CreatedAt,
	}
}

// FavoriteModelFromEntity converts a domain entity to a GORM model.
func FavoriteModelFromEntity(f entity.Favorite) *FavoriteModel {
	return &FavoriteModel{
		UserID:    f.UserID,
		Code:      f.Code,
		Name:      f.Name,
		CreatedAt: f.AddedAt,
	}
}
