package entity

// 1ページあたりの表示件数の選択肢。
var ItemsPerPageOptions = []int{50, 100, 200}

// DefaultItemsPerPage は1ページあたりの既定件数です。
const DefaultItemsPerPage = 50

// PaginationState はページングの状態です。TotalItemsは常に絞り込み後の件数から再計算されます。
type PaginationState struct {
	CurrentPage  int `json:"current_page"`
	ItemsPerPage int `json:"items_per_page"`
	TotalItems   int `json:"total_items"`
}

// NormalizeItemsPerPage は選択肢にない件数を既定値に置き換えます。
func NormalizeItemsPerPage(n int) int {
	for _, opt := range ItemsPerPageOptions {
		if n == opt {
			return n
		}
	}
	return DefaultItemsPerPage
}

// TotalPages は総ページ数を返します。0件でも1ページとして扱います。
func (p PaginationState) TotalPages() int {
	if p.TotalItems == 0 || p.ItemsPerPage <= 0 {
		return 1
	}
	return (p.TotalItems + p.ItemsPerPage - 1) / p.ItemsPerPage
}

// Clamp はページ番号を [1, TotalPages] に収めた状態を返します。
func (p PaginationState) Clamp() PaginationState {
	if p.CurrentPage < 1 {
		p.CurrentPage = 1
	}
	if last := p.TotalPages(); p.CurrentPage > last {
		p.CurrentPage = last
	}
	return p
}

// Bounds は現在ページの [start, end) を返します。
func (p PaginationState) Bounds() (start, end int) {
	start = (p.CurrentPage - 1) * p.ItemsPerPage
	if start > p.TotalItems {
		start = p.TotalItems
	}
	end = start + p.ItemsPerPage
	if end > p.TotalItems {
		end = p.TotalItems
	}
	return start, end
}
