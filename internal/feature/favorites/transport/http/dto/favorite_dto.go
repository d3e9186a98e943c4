// Package dto はfavoritesフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"time"

	"stock_search/internal/feature/favorites/domain/entity"
)

// FavoriteRequest はPUT /v1/favorites/:code などの任意のリクエストボディです。
type FavoriteRequest struct {
	Name string `json:"name" binding:"max=255"`
}

// FavoriteResponse はお気に入り1件です。
type FavoriteResponse struct {
	Code    string    `json:"code"`
	Name    string    `json:"name,omitempty"`
	AddedAt time.Time `json:"added_at"`
}

// FavoriteListResponse はお気に入り一覧です。
type FavoriteListResponse struct {
	Items []FavoriteResponse `json:"items"`
}

// ToggleResponse は切り替え後の状態です。
type ToggleResponse struct {
	Code     string `json:"code"`
	Favorite bool   `json:"favorite"`
}

// NewFavoriteResponse はエンティティをDTOに変換します。
func NewFavoriteResponse(f entity.Favorite) FavoriteResponse {
	return FavoriteResponse{Code: f.Code, Name: f.Name, AddedAt: f.AddedAt}
}

// NewFavoriteListResponse は一覧をDTOに変換します。
func NewFavoriteListResponse(favs []entity.Favorite) FavoriteListResponse {
	items := make([]FavoriteResponse, 0, len(favs))
	for _, f := range favs {
		items = append(items, NewFavoriteResponse(f))
	}
	return FavoriteListResponse{Items: items}
}
