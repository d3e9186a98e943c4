// Package usecase implements the business logic for the favorites feature.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"stock_search/internal/feature/favorites/domain/entity"
)

// FavoriteRepository はお気に入りの永続化を抽象化します（gorm、Redisなど）。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type FavoriteRepository interface {
	// List はユーザーのお気に入りを登録順に返します。
	List(ctx context.Context, userID string) ([]entity.Favorite, error)
	// Add は未登録であれば保存してtrueを返します。登録済みなら何もせずfalseを返します。
	Add(ctx context.Context, fav entity.Favorite) (bool, error)
	// Remove は登録を削除します。削除した場合にtrueを返します。
	Remove(ctx context.Context, userID, code string) (bool, error)
	// Exists は登録済みであればtrueを返します。
	Exists(ctx context.Context, userID, code string) (bool, error)
}

// FavoriteUsecase はユーザーごとのお気に入り銘柄を管理します。
type FavoriteUsecase struct {
	repo FavoriteRepository
	now  func() time.Time
}

// NewFavoriteUsecase creates a new FavoriteUsecase.
func NewFavoriteUsecase(repo FavoriteRepository) *FavoriteUsecase {
	return &FavoriteUsecase{repo: repo, now: time.Now}
}

// List はユーザーのお気に入りを返します。
func (u *FavoriteUsecase) List(ctx context.Context, userID string) ([]entity.Favorite, error) {
	favs, err := u.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return favs, nil
}

// Add は銘柄をお気に入りに追加します。登録済みの場合は何もしません。
// 2つ目の戻り値は新規に追加された場合にtrueです。
func (u *FavoriteUsecase) Add(ctx context.Context, userID, code, name string) (entity.Favorite, bool, error) {
	normalized, err := validCode(code)
	if err != nil {
		return entity.Favorite{}, false, err
	}
	fav := entity.Favorite{
		UserID:  userID,
		Code:    normalized,
		Name:    strings.TrimSpace(name),
		AddedAt: u.now(),
	}
	added, err := u.repo.Add(ctx, fav)
	if err != nil {
		return entity.Favorite{}, false, fmt.Errorf("add favorite: %w", err)
	}
	if added {
		slog.Info("favorite added", "user_id", userID, "code", normalized)
	}
	return fav, added, nil
}

// Remove は銘柄をお気に入りから削除します。未登録ならErrNotFoundです。
func (u *FavoriteUsecase) Remove(ctx context.Context, userID, code string) error {
	normalized, err := validCode(code)
	if err != nil {
		return err
	}
	removed, err := u.repo.Remove(ctx, userID, normalized)
	if err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	if !removed {
		return ErrNotFound
	}
	slog.Info("favorite removed", "user_id", userID, "code", normalized)
	return nil
}

// Toggle は登録済みなら削除し、未登録なら追加します。
// 戻り値は操作後にお気に入りであればtrueです。
func (u *FavoriteUsecase) Toggle(ctx context.Context, userID, code, name string) (bool, error) {
	ok, err := u.Contains(ctx, userID, code)
	if err != nil {
		return false, err
	}
	if ok {
		// 確認後に別のリクエストが削除していた場合も、結果は「未登録」で同じ
		if err := u.Remove(ctx, userID, code); err != nil && !errors.Is(err, ErrNotFound) {
			return false, err
		}
		return false, nil
	}
	if _, _, err := u.Add(ctx, userID, code, name); err != nil {
		return false, err
	}
	return true, nil
}

// Contains は銘柄がお気に入りであればtrueを返します。
func (u *FavoriteUsecase) Contains(ctx context.Context, userID, code string) (bool, error) {
	normalized, err := validCode(code)
	if err != nil {
		return false, err
	}
	ok, err := u.repo.Exists(ctx, userID, normalized)
	if err != nil {
		return false, fmt.Errorf("check favorite: %w", err)
	}
	return ok, nil
}

// CodeSet はお気に入りの正規化済みコードの集合を返します。一覧の表示で銘柄に印を付けるのに使います。
func (u *FavoriteUsecase) CodeSet(ctx context.Context, userID string) (map[string]struct{}, error) {
	favs, err := u.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(favs))
	for _, f := range favs {
		set[entity.NormalizeCode(f.Code)] = struct{}{}
	}
	return set, nil
}

func validCode(code string) (string, error) {
	normalized := entity.NormalizeCode(code)
	if normalized == "" || len(normalized) > entity.MaxCodeLength {
		return "", ErrInvalidCode
	}
	return normalized, nil
}
