// Package dto defines data transfer objects for the screener HTTP API.
package dto

import (
	"stock_search/internal/feature/screener/domain/entity"
	"stock_search/internal/feature/screener/usecase"
	stock "stock_search/internal/feature/stocks/domain/entity"
)

// StockItem は一覧の1銘柄です。Values は列キーから値（文字列・数値・null）への対応です。
type StockItem struct {
	Code       string         `json:"code"`
	Name       string         `json:"name"`
	MarketType string         `json:"market_type"`
	Values     map[string]any `json:"values"`
	Favorite   bool           `json:"favorite,omitempty"`
}

// DatasetSummary はレスポンスに含めるデータセットの情報です。
type DatasetSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StockListResponse は一覧取得のレスポンスです。
// Query は現在の条件を共有するためのクエリ文字列です。
type StockListResponse struct {
	Dataset    DatasetSummary         `json:"dataset"`
	Columns    []string               `json:"columns"`
	Items      []StockItem            `json:"items"`
	Pagination entity.PaginationState `json:"pagination"`
	TotalPages int                    `json:"total_pages"`
	TotalCount int                    `json:"total_count"`
	Sort       *entity.SortSpec       `json:"sort,omitempty"`
	Query      string                 `json:"query"`
}

// OptionsResponse は絞り込みの選択肢です。
type OptionsResponse struct {
	Industries  []string `json:"industries"`
	Markets     []string `json:"markets"`
	Prefectures []string `json:"prefectures"`
}

// NewStockItem はレコードを指定列のDTOに変換します。
func NewStockItem(r *stock.StockRecord, columns []string) StockItem {
	values := make(map[string]any, len(columns))
	for _, k := range columns {
		values[k] = r.Value(k).Interface()
	}
	return StockItem{
		Code:       r.DisplayCode(),
		Name:       r.CompanyName,
		MarketType: string(r.EffectiveMarketType()),
		Values:     values,
	}
}

// NewOptionsResponse は選択肢をDTOに変換します。
func NewOptionsResponse(o usecase.FilterOptions) OptionsResponse {
	return OptionsResponse{Industries: o.Industries, Markets: o.Markets, Prefectures: o.Prefectures}
}
