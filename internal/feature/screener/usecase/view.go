package usecase

import (
	"stock_search/internal/feature/screener/domain/entity"
	stock "stock_search/internal/feature/stocks/domain/entity"
)

// View はある時点の表示状態（元データ・条件・絞り込み結果・ページ）のスナップショットです。
// 変更はすべて新しいViewを返し、既存のViewは変更しません。
type View struct {
	records  []stock.StockRecord
	filter   entity.FilterSpec
	sort     entity.SortSpec
	filtered []stock.StockRecord
	page     entity.PaginationState
}

// NewView は元データと条件から1ページ目のViewを生成します。
func NewView(records []stock.StockRecord, filter entity.FilterSpec, sort entity.SortSpec, itemsPerPage int) View {
	v := View{
		records: records,
		filter:  filter,
		sort:    sort,
		page:    entity.PaginationState{CurrentPage: 1, ItemsPerPage: entity.NormalizeItemsPerPage(itemsPerPage)},
	}
	v.filtered = Sort(Filter(records, filter), sort)
	v.page.TotalItems = len(v.filtered)
	return v
}

// WithFilter は条件を差し替えたViewを返します。絞り込み件数が変わった場合は1ページ目に戻ります。
func (v View) WithFilter(filter entity.FilterSpec) View {
	next := v
	next.filter = filter
	next.filtered = Sort(Filter(v.records, filter), v.sort)
	if len(next.filtered) != v.page.TotalItems {
		next.page.CurrentPage = 1
	}
	next.page.TotalItems = len(next.filtered)
	return next
}

// WithSort は並び順を差し替えたViewを返します。件数は変わらないためページは維持します。
func (v View) WithSort(sort entity.SortSpec) View {
	next := v
	next.sort = sort
	next.filtered = Sort(Filter(v.records, v.filter), sort)
	return next
}

// WithPage は指定ページに移動したViewを返します。範囲外のページは端に丸めます。
func (v View) WithPage(page int) View {
	next := v
	next.page.CurrentPage = page
	next.page = next.page.Clamp()
	return next
}

// WithItemsPerPage は1ページあたりの件数を変更し、1ページ目に戻したViewを返します。
func (v View) WithItemsPerPage(n int) View {
	next := v
	next.page.ItemsPerPage = entity.NormalizeItemsPerPage(n)
	next.page.CurrentPage = 1
	return next
}

// FilterSpec は現在の絞り込み条件を返します。
func (v View) FilterSpec() entity.FilterSpec { return v.filter }

// SortSpec は現在の並び順を返します。
func (v View) SortSpec() entity.SortSpec { return v.sort }

// Pagination は現在のページング状態を返します。
func (v View) Pagination() entity.PaginationState { return v.page }

// TotalCount は絞り込み前の件数です。
func (v View) TotalCount() int { return len(v.records) }

// Filtered は絞り込み・並べ替え後の全件を返します。エクスポートの入力に使います。
func (v View) Filtered() []stock.StockRecord { return v.filtered }

// Page は現在ページのレコードを返します。
func (v View) Page() []stock.StockRecord {
	start, end := v.page.Bounds()
	return v.filtered[start:end]
}
