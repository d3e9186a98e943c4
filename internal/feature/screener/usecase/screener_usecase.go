package usecase

import (
	"context"
	"time"

	dataset "stock_search/internal/feature/datasets/domain/entity"
	"stock_search/internal/feature/screener/domain/entity"
	stock "stock_search/internal/feature/stocks/domain/entity"
)

// DatasetProvider は現在のデータセットを返します。
type DatasetProvider interface {
	Current() (*dataset.Dataset, error)
}

// Exporter はレコードをCSV文字列に変換し、ダウンロード用のファイル名を生成します。
type Exporter interface {
	Export(records []stock.StockRecord, columns []stock.ColumnConfig) string
	FileName(filteredCount, totalCount int, now time.Time) string
}

// Query は一覧取得の条件です。
type Query struct {
	Filter  entity.FilterSpec
	Sort    entity.SortSpec
	Page    int
	PerPage int
}

// SearchResult は一覧取得の結果です。
type SearchResult struct {
	Dataset *dataset.Dataset
	View    View
}

// ExportResult はエクスポートの結果です。
type ExportResult struct {
	FileName string
	Body     string
	Count    int
}

// ScreenerUsecase は現在のデータセットに対する絞り込み・並べ替え・エクスポートを提供します。
type ScreenerUsecase struct {
	datasets DatasetProvider
	exporter Exporter
	now      func() time.Time
}

// NewScreenerUsecase creates a new ScreenerUsecase.
func NewScreenerUsecase(datasets DatasetProvider, exporter Exporter) *ScreenerUsecase {
	return &ScreenerUsecase{datasets: datasets, exporter: exporter, now: time.Now}
}

// Search は条件に合うレコードの指定ページを返します。
func (u *ScreenerUsecase) Search(ctx context.Context, q Query) (*SearchResult, error) {
	ds, err := u.datasets.Current()
	if err != nil {
		return nil, err
	}
	v := NewView(ds.Records, q.Filter, q.Sort, q.PerPage).WithPage(q.Page)
	return &SearchResult{Dataset: ds, View: v}, nil
}

// Export は条件に合う全レコードを指定列でCSVにします。
// columnsが空なら全列を出力します。
func (u *ScreenerUsecase) Export(ctx context.Context, filter entity.FilterSpec, sort entity.SortSpec, columns []string) (*ExportResult, error) {
	ds, err := u.datasets.Current()
	if err != nil {
		return nil, err
	}
	records := Sort(Filter(ds.Records, filter), sort)
	cols := SelectColumns(DefaultColumns(ds.Columns), columns)
	return &ExportResult{
		FileName: u.exporter.FileName(len(records), len(ds.Records), u.now()),
		Body:     u.exporter.Export(records, cols),
		Count:    len(records),
	}, nil
}

// Options は絞り込みの選択肢を返します。
func (u *ScreenerUsecase) Options(ctx context.Context, marketTypes []stock.MarketType) (FilterOptions, error) {
	ds, err := u.datasets.Current()
	if err != nil {
		return FilterOptions{}, err
	}
	return Options(ds.Records, marketTypes), nil
}

// Columns は現在のデータセットの既定の列設定を返します。
func (u *ScreenerUsecase) Columns(ctx context.Context) ([]stock.ColumnConfig, error) {
	ds, err := u.datasets.Current()
	if err != nil {
		return nil, err
	}
	return DefaultColumns(ds.Columns), nil
}
