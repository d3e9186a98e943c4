// Package handler はfavoritesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_search/internal/api"
	"stock_search/internal/feature/favorites/domain/entity"
	"stock_search/internal/feature/favorites/transport/http/dto"
	jwtmw "stock_search/internal/platform/jwt"
)

// FavoriteUsecase はお気に入り操作のユースケースを定義します。
type FavoriteUsecase interface {
	List(ctx context.Context, userID string) ([]entity.Favorite, error)
	Add(ctx context.Context, userID, code, name string) (entity.Favorite, bool, error)
	Remove(ctx context.Context, userID, code string) error
	Toggle(ctx context.Context, userID, code, name string) (bool, error)
}

// FavoriteHandler はお気に入りのHTTPリクエストを処理します。
// すべてのエンドポイントはjwtmw.AuthRequiredの後ろに置かれる前提です。
type FavoriteHandler struct {
	uc FavoriteUsecase
}

// NewFavoriteHandler は新しい FavoriteHandler を作成します。
func NewFavoriteHandler(uc FavoriteUsecase) *FavoriteHandler {
	return &FavoriteHandler{uc: uc}
}

// List はログイン中のユーザーのお気に入りを返します。
func (h *FavoriteHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	favs, err := h.uc.List(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, "favorite list failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewFavoriteListResponse(favs))
}

// Put は銘柄をお気に入りに追加します。新規なら201、登録済みなら200を返します。
//
// エンドポイント例:
// PUT /v1/favorites/7203 {"name": "トヨタ自動車"}
func (h *FavoriteHandler) Put(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	req, ok := bindOptional(c)
	if !ok {
		return
	}
	fav, added, err := h.uc.Add(c.Request.Context(), userID, c.Param("code"), req.Name)
	if err != nil {
		h.fail(c, "favorite add failed", err)
		return
	}
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	c.JSON(status, dto.NewFavoriteResponse(fav))
}

// Delete は銘柄をお気に入りから削除します。
func (h *FavoriteHandler) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	if err := h.uc.Remove(c.Request.Context(), userID, c.Param("code")); err != nil {
		h.fail(c, "favorite remove failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Toggle は登録済みなら削除し、未登録なら追加します。
func (h *FavoriteHandler) Toggle(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	req, ok := bindOptional(c)
	if !ok {
		return
	}
	code := c.Param("code")
	on, err := h.uc.Toggle(c.Request.Context(), userID, code, req.Name)
	if err != nil {
		h.fail(c, "favorite toggle failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToggleResponse{Code: entity.NormalizeCode(code), Favorite: on})
}

func (h *FavoriteHandler) fail(c *gin.Context, msg string, err error) {
	status, body := api.Status(err)
	if status >= http.StatusInternalServerError {
		slog.Error(msg, "error", err, "path", c.FullPath())
	} else {
		slog.Warn(msg, "error", err, "path", c.FullPath())
	}
	c.JSON(status, body)
}

func requireUser(c *gin.Context) (string, bool) {
	userID := jwtmw.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return "", false
	}
	return userID, true
}

// bindOptional は空のボディを許可してリクエストを読み込みます。
func bindOptional(c *gin.Context) (dto.FavoriteRequest, bool) {
	var req dto.FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Warn("favorite request validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return req, false
	}
	return req, true
}
