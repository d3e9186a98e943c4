// Package handler はscreenerフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"stock_search/internal/api"
	favorite "stock_search/internal/feature/favorites/domain/entity"
	"stock_search/internal/feature/screener/adapters/querycodec"
	"stock_search/internal/feature/screener/domain/entity"
	"stock_search/internal/feature/screener/transport/http/dto"
	"stock_search/internal/feature/screener/usecase"
	stock "stock_search/internal/feature/stocks/domain/entity"
	jwtmw "stock_search/internal/platform/jwt"
)

// ScreenerUsecase は銘柄一覧のユースケースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ScreenerUsecase interface {
	Search(ctx context.Context, q usecase.Query) (*usecase.SearchResult, error)
	Export(ctx context.Context, filter entity.FilterSpec, sort entity.SortSpec, columns []string) (*usecase.ExportResult, error)
	Options(ctx context.Context, marketTypes []stock.MarketType) (usecase.FilterOptions, error)
	Columns(ctx context.Context) ([]stock.ColumnConfig, error)
}

// FavoriteSet はユーザーのお気に入り銘柄コードの集合を返します。
type FavoriteSet interface {
	CodeSet(ctx context.Context, userID string) (map[string]struct{}, error)
}

// StockHandler は銘柄一覧・エクスポート・列設定のHTTPリクエストを処理します。
type StockHandler struct {
	uc        ScreenerUsecase
	favorites FavoriteSet
}

// NewStockHandler は新しい StockHandler を作成します。
func NewStockHandler(uc ScreenerUsecase) *StockHandler {
	return &StockHandler{uc: uc}
}

// WithFavorites はログイン中のユーザーのお気に入りに印を付けるよう設定します。
func (h *StockHandler) WithFavorites(f FavoriteSet) *StockHandler {
	h.favorites = f
	return h
}

// List は条件に合う銘柄の1ページ分を返します。
//
// エンドポイント例:
// GET /v1/stocks?mcMin=20&roeMin=8&industries=銀行業&sort=PBR&order=asc&page=2&per_page=100
func (h *StockHandler) List(c *gin.Context) {
	q := c.Request.URL.Query()
	filter := filterFromQuery(q)
	sort := sortFromQuery(q)
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))

	res, err := h.uc.Search(c.Request.Context(), usecase.Query{Filter: filter, Sort: sort, Page: page, PerPage: perPage})
	if err != nil {
		h.fail(c, "stock search failed", err)
		return
	}

	ds := res.Dataset
	favs := h.favoriteCodes(c)
	items := make([]dto.StockItem, 0, len(res.View.Page()))
	for _, r := range res.View.Page() {
		item := dto.NewStockItem(&r, ds.Columns)
		_, item.Favorite = favs[favorite.NormalizeCode(item.Code)]
		items = append(items, item)
	}
	out := dto.StockListResponse{
		Dataset:    dto.DatasetSummary{ID: ds.ID.String(), Name: ds.Name},
		Columns:    ds.Columns,
		Items:      items,
		Pagination: res.View.Pagination(),
		TotalPages: res.View.Pagination().TotalPages(),
		TotalCount: res.View.TotalCount(),
		Query:      querycodec.Encode(filter),
	}
	if !sort.IsZero() {
		out.Sort = &sort
	}
	c.JSON(http.StatusOK, out)
}

// Export は条件に合う全銘柄をCSVファイルとして返します。
// columns パラメータ（カンマ区切り）で出力する列を指定できます。必須列は常に出力されます。
//
// エンドポイント例:
// GET /v1/stocks/export?roeMin=10&columns=PBR,ROE
func (h *StockHandler) Export(c *gin.Context) {
	q := c.Request.URL.Query()
	res, err := h.uc.Export(c.Request.Context(), filterFromQuery(q), sortFromQuery(q), splitList(q.Get("columns")))
	if err != nil {
		h.fail(c, "stock export failed", err)
		return
	}
	slog.Info("stocks exported", "file", res.FileName, "count", res.Count)
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(res.FileName))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(res.Body))
}

// Options は業種・市場・都道府県の選択肢を返します。
// mt パラメータで市場の選択肢を市場タイプに絞れます（未指定なら両方）。
func (h *StockHandler) Options(c *gin.Context) {
	mts := stock.AllMarketTypes()
	if raw := c.Query(querycodec.ParamMarketTypes); raw != "" {
		mts = mts[:0:0]
		for _, s := range splitList(raw) {
			if mt, ok := stock.ParseMarketType(s); ok {
				mts = append(mts, mt)
			}
		}
	}
	opts, err := h.uc.Options(c.Request.Context(), mts)
	if err != nil {
		h.fail(c, "stock options failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOptionsResponse(opts))
}

// Columns は現在のデータセットの既定の列設定を返します。
func (h *StockHandler) Columns(c *gin.Context) {
	cols, err := h.uc.Columns(c.Request.Context())
	if err != nil {
		h.fail(c, "column config failed", err)
		return
	}
	c.JSON(http.StatusOK, cols)
}

// favoriteCodes はログイン中であればお気に入りの集合を返します。取得に失敗しても一覧は返します。
func (h *StockHandler) favoriteCodes(c *gin.Context) map[string]struct{} {
	userID := jwtmw.UserID(c)
	if h.favorites == nil || userID == "" {
		return nil
	}
	set, err := h.favorites.CodeSet(c.Request.Context(), userID)
	if err != nil {
		slog.Warn("favorite lookup failed", "error", err, "user_id", userID)
		return nil
	}
	return set
}

func (h *StockHandler) fail(c *gin.Context, msg string, err error) {
	status, body := api.Status(err)
	if status >= http.StatusInternalServerError {
		slog.Error(msg, "error", err, "path", c.FullPath())
	} else {
		slog.Warn(msg, "error", err, "path", c.FullPath())
	}
	c.JSON(status, body)
}

func filterFromQuery(q url.Values) entity.FilterSpec {
	return entity.DefaultFilterSpec().Merge(querycodec.Decode(q))
}

func sortFromQuery(q url.Values) entity.SortSpec {
	key := strings.TrimSpace(q.Get("sort"))
	if key == "" {
		return entity.SortSpec{}
	}
	return entity.SortSpec{Key: key, Direction: entity.ParseDirection(q.Get("order"))}
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
