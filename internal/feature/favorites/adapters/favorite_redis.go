package adapters

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"stock_search/internal/feature/favorites/domain/entity"
	"stock_search/internal/feature/favorites/usecase"
)

// favoriteKeyPrefix はユーザーごとのハッシュキーの接頭辞です。フィールドが銘柄コードになります。
const favoriteKeyPrefix = "favorites:"

// favoriteValue はハッシュの値として保存するJSONです。
type favoriteValue struct {
	Name    string    `json:"name,omitempty"`
	AddedAt time.Time `json:"added_at"`
}

// favoriteRedis はRedisのハッシュでお気に入りを保存するリポジトリです。
type favoriteRedis struct {
	rdb *redis.Client
}

var _ usecase.FavoriteRepository = (*favoriteRedis)(nil)

// NewFavoriteRedis creates a new instance of favoriteRedis.
func NewFavoriteRedis(rdb *redis.Client) *favoriteRedis {
	return &favoriteRedis{rdb: rdb}
}

func favoriteKey(userID string) string {
	return favoriteKeyPrefix + userID
}

// List はハッシュの全フィールドを登録日時順（同時刻はコード順）で返します。
// 壊れた値は読み飛ばします。
func (r *favoriteRedis) List(ctx context.Context, userID string) ([]entity.Favorite, error) {
	all, err := r.rdb.HGetAll(ctx, favoriteKey(userID)).Result()
	if err != nil {
		return nil, err
	}

	favs := make([]entity.Favorite, 0, len(all))
	for code, raw := range all {
		var v favoriteValue
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			slog.Warn("corrupt favorite entry skipped", "user_id", userID, "code", code, "error", err)
			continue
		}
		favs = append(favs, entity.Favorite{UserID: userID, Code: code, Name: v.Name, AddedAt: v.AddedAt})
	}
	sort.Slice(favs, func(i, j int) bool {
		if !favs[i].AddedAt.Equal(favs[j].AddedAt) {
			return favs[i].AddedAt.Before(favs[j].AddedAt)
		}
		return favs[i].Code < favs[j].Code
	})
	return favs, nil
}

// Add はHSETNXで未登録の場合だけ保存します。
func (r *favoriteRedis) Add(ctx context.Context, fav entity.Favorite) (bool, error) {
	b, err := json.Marshal(favoriteValue{Name: fav.Name, AddedAt: fav.AddedAt})
	if err != nil {
		return false, err
	}
	return r.rdb.HSetNX(ctx, favoriteKey(fav.UserID), fav.Code, b).Result()
}

// Remove はフィールドを削除します。
func (r *favoriteRedis) Remove(ctx context.Context, userID, code string) (bool, error) {
	n, err := r.rdb.HDel(ctx, favoriteKey(userID), code).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Exists はフィールドの有無を返します。
func (r *favoriteRedis) Exists(ctx context.Context, userID, code string) (bool, error) {
	return r.rdb.HExists(ctx, favoriteKey(userID), code).Result()
}
