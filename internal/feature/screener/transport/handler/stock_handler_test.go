package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dataset "stock_search/internal/feature/datasets/domain/entity"
	dsusecase "stock_search/internal/feature/datasets/usecase"
	"stock_search/internal/feature/screener/domain/entity"
	"stock_search/internal/feature/screener/transport/http/dto"
	"stock_search/internal/feature/screener/usecase"
	stock "stock_search/internal/feature/stocks/domain/entity"
	jwtmw "stock_search/internal/platform/jwt"
)

// mockScreenerUsecase はScreenerUsecaseインターフェースのモック実装です。
type mockScreenerUsecase struct {
	SearchFunc  func(ctx context.Context, q usecase.Query) (*usecase.SearchResult, error)
	ExportFunc  func(ctx context.Context, filter entity.FilterSpec, sort entity.SortSpec, columns []string) (*usecase.ExportResult, error)
	OptionsFunc func(ctx context.Context, marketTypes []stock.MarketType) (usecase.FilterOptions, error)
	ColumnsFunc func(ctx context.Context) ([]stock.ColumnConfig, error)
}

func (m *mockScreenerUsecase) Search(ctx context.Context, q usecase.Query) (*usecase.SearchResult, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, q)
	}
	return nil, dsusecase.ErrNoDataset
}

func (m *mockScreenerUsecase) Export(ctx context.Context, filter entity.FilterSpec, sort entity.SortSpec, columns []string) (*usecase.ExportResult, error) {
	if m.ExportFunc != nil {
		return m.ExportFunc(ctx, filter, sort, columns)
	}
	return nil, dsusecase.ErrNoDataset
}

func (m *mockScreenerUsecase) Options(ctx context.Context, marketTypes []stock.MarketType) (usecase.FilterOptions, error) {
	if m.OptionsFunc != nil {
		return m.OptionsFunc(ctx, marketTypes)
	}
	return usecase.FilterOptions{}, dsusecase.ErrNoDataset
}

func (m *mockScreenerUsecase) Columns(ctx context.Context) ([]stock.ColumnConfig, error) {
	if m.ColumnsFunc != nil {
		return m.ColumnsFunc(ctx)
	}
	return nil, dsusecase.ErrNoDataset
}

func f64(v float64) *float64 { return &v }

func newRouter(h *StockHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/v1/stocks", h.List)
	r.GET("/v1/stocks/export", h.Export)
	r.GET("/v1/stocks/options", h.Options)
	r.GET("/v1/columns", h.Columns)
	return r
}

func serve(r *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestNewStockHandler(t *testing.T) {
	t.Parallel()

	h := NewStockHandler(&mockScreenerUsecase{})
	assert.NotNil(t, h)
	assert.NotNil(t, h.uc)
}

func TestStockHandler_List(t *testing.T) {
	t.Parallel()

	ds := &dataset.Dataset{
		ID:      uuid.MustParse("6f1c2f5e-8a53-4a5e-9f3a-0a6f7c3e9b10"),
		Name:    "20250307_combined.csv",
		Columns: []string{"会社名", "銘柄コード", "PBR"},
		Records: []stock.StockRecord{
			{CompanyName: "トヨタ自動車", Code: "7203", PBR: f64(1.2)},
			{CompanyName: "Apple", Code: "AAPL"},
		},
	}

	var got usecase.Query
	h := NewStockHandler(&mockScreenerUsecase{
		SearchFunc: func(ctx context.Context, q usecase.Query) (*usecase.SearchResult, error) {
			got = q
			return &usecase.SearchResult{Dataset: ds, View: usecase.NewView(ds.Records, q.Filter, q.Sort, q.PerPage).WithPage(q.Page)}, nil
		},
	})

	w := serve(newRouter(h), "/v1/stocks?roeMin=10&mt=JP&sort=PBR&order=desc&page=1&per_page=100&bogusMin=x")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, []stock.MarketType{stock.MarketJP}, got.Filter.MarketTypes)
	assert.Equal(t, 10.0, *got.Filter.Range(stock.FieldROE).Min)
	assert.Equal(t, entity.SortSpec{Key: "PBR", Direction: entity.Descending}, got.Sort)
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 100, got.PerPage)

	var body dto.StockListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "6f1c2f5e-8a53-4a5e-9f3a-0a6f7c3e9b10", body.Dataset.ID)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "7203", body.Items[0].Code)
	assert.Equal(t, "JP", body.Items[0].MarketType)
	assert.Equal(t, map[string]any{"会社名": "トヨタ自動車", "銘柄コード": "7203", "PBR": 1.2}, body.Items[0].Values)
	assert.Equal(t, entity.PaginationState{CurrentPage: 1, ItemsPerPage: 100, TotalItems: 1}, body.Pagination)
	assert.Equal(t, 2, body.TotalCount)
	assert.Equal(t, "mt=JP&roeMin=10", body.Query)
	require.NotNil(t, body.Sort)
}

func TestStockHandler_List_NoDataset(t *testing.T) {
	t.Parallel()

	w := serve(newRouter(NewStockHandler(&mockScreenerUsecase{})), "/v1/stocks")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"データが読み込まれていません"}`, w.Body.String())
}

func TestStockHandler_Export(t *testing.T) {
	t.Parallel()

	var gotColumns []string
	var gotFilter entity.FilterSpec
	h := NewStockHandler(&mockScreenerUsecase{
		ExportFunc: func(ctx context.Context, filter entity.FilterSpec, sort entity.SortSpec, columns []string) (*usecase.ExportResult, error) {
			gotColumns = columns
			gotFilter = filter
			return &usecase.ExportResult{FileName: "stock_data_filtered_1件_20250307_0905.csv", Body: "\uFEFF\"PBR\"\n\"1.2\"", Count: 1}, nil
		},
	})

	w := serve(newRouter(h), "/v1/stocks/export?company=%E3%83%88%E3%83%A8%E3%82%BF&columns=PBR,,ROE")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"PBR", "ROE"}, gotColumns)
	assert.Equal(t, "トヨタ", gotFilter.CompanyName)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename*=UTF-8''stock_data_filtered_1%E4%BB%B6_20250307_0905.csv", w.Header().Get("Content-Disposition"))
	assert.Equal(t, "\uFEFF\"PBR\"\n\"1.2\"", w.Body.String())
}

func TestStockHandler_Options(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		target  string
		wantMTs []stock.MarketType
	}{
		{name: "default both", target: "/v1/stocks/options", wantMTs: []stock.MarketType{stock.MarketJP, stock.MarketUS}},
		{name: "us only", target: "/v1/stocks/options?mt=US", wantMTs: []stock.MarketType{stock.MarketUS}},
		{name: "unknown ignored", target: "/v1/stocks/options?mt=EU", wantMTs: []stock.MarketType{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got []stock.MarketType
			h := NewStockHandler(&mockScreenerUsecase{
				OptionsFunc: func(ctx context.Context, marketTypes []stock.MarketType) (usecase.FilterOptions, error) {
					got = marketTypes
					return usecase.FilterOptions{Industries: []string{"銀行業"}, Markets: []string{"プライム"}, Prefectures: []string{}}, nil
				},
			})
			w := serve(newRouter(h), tt.target)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantMTs, got)
			assert.JSONEq(t, `{"industries":["銀行業"],"markets":["プライム"],"prefectures":[]}`, w.Body.String())
		})
	}
}

func TestStockHandler_Columns(t *testing.T) {
	t.Parallel()

	h := NewStockHandler(&mockScreenerUsecase{
		ColumnsFunc: func(ctx context.Context) ([]stock.ColumnConfig, error) {
			return []stock.ColumnConfig{{Key: "会社名", Label: "会社名", Category: "basic", Visible: true, Essential: true}}, nil
		},
	})
	w := serve(newRouter(h), "/v1/columns")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"key":"会社名","label":"会社名","category":"basic","visible":true,"essential":true}]`, w.Body.String())

	w = serve(newRouter(NewStockHandler(&mockScreenerUsecase{})), "/v1/columns")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

type mockFavoriteSet struct {
	CodeSetFunc func(ctx context.Context, userID string) (map[string]struct{}, error)
}

func (m *mockFavoriteSet) CodeSet(ctx context.Context, userID string) (map[string]struct{}, error) {
	return m.CodeSetFunc(ctx, userID)
}

func TestStockHandler_List_TagsFavorites(t *testing.T) {
	t.Parallel()

	ds := &dataset.Dataset{
		ID:      uuid.New(),
		Columns: []string{"会社名"},
		Records: []stock.StockRecord{
			{CompanyName: "極洋", Code: "7"},
			{CompanyName: "トヨタ自動車", Code: "7203"},
		},
	}
	uc := &mockScreenerUsecase{
		SearchFunc: func(ctx context.Context, q usecase.Query) (*usecase.SearchResult, error) {
			return &usecase.SearchResult{Dataset: ds, View: usecase.NewView(ds.Records, q.Filter, q.Sort, q.PerPage)}, nil
		},
	}

	tests := []struct {
		name   string
		userID string
		setErr error
		want   []bool
	}{
		{name: "signed in", userID: "u1", want: []bool{true, false}},
		{name: "anonymous", want: []bool{false, false}},
		{name: "lookup failure still lists", userID: "u1", setErr: errors.New("redis down"), want: []bool{false, false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewStockHandler(uc).WithFavorites(&mockFavoriteSet{
				CodeSetFunc: func(ctx context.Context, userID string) (map[string]struct{}, error) {
					assert.Equal(t, "u1", userID)
					if tt.setErr != nil {
						return nil, tt.setErr
					}
					return map[string]struct{}{"0007": {}}, nil
				},
			})

			gin.SetMode(gin.TestMode)
			r := gin.New()
			r.Use(func(c *gin.Context) {
				if tt.userID != "" {
					c.Set(jwtmw.ContextUserID, tt.userID)
				}
			})
			r.GET("/v1/stocks", h.List)

			w := serve(r, "/v1/stocks")
			require.Equal(t, http.StatusOK, w.Code)

			var body dto.StockListResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			require.Len(t, body.Items, 2)
			got := []bool{body.Items[0].Favorite, body.Items[1].Favorite}
			assert.Equal(t, tt.want, got)
		})
	}
}
