package usecase

import (
	stock "stock_search/internal/feature/stocks/domain/entity"
)

func f64(v float64) *float64 { return &v }
func str(s string) *string { return &s }

// rec はテスト用のレコードを生成します。
func rec(name, code string, opts ...func(*stock.StockRecord)) stock.StockRecord {
	r := stock.StockRecord{CompanyName: name, Code: code}
	for _, o := range opts {
		o(&r)
	}
	return r
}

func names(records []stock.StockRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.CompanyName)
	}
	return out
}
