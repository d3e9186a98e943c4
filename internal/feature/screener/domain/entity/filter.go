// Package entity はscreenerフィーチャーの絞り込み・並べ替え・ページングの状態を定義します。
package entity

import (
	"math"

	stock "stock_search/internal/feature/stocks/domain/entity"
)

// Bounds は数値指標の範囲条件です。値は表示単位（百万円・%・倍）で保持します。
// nilは未設定を表し、0は有効な条件として扱います。
type Bounds struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// IsZero は上下限のどちらも設定されていなければtrueを返します。
func (b Bounds) IsZero() bool {
	return !finite(b.Min) && !finite(b.Max)
}

// FilterSpec はユーザーが指定した絞り込み条件です。
// 空の条件（空文字・空集合・nil）は絞り込みに影響しません。
type FilterSpec struct {
	CompanyName string
	StockCode   string
	Industries  []string
	Markets     []string
	Prefectures []string
	MarketTypes []stock.MarketType
	Ranges      map[stock.FieldID]Bounds
}

// DefaultFilterSpec は初期状態の条件（日本株・米国株の両方を表示）を返します。
func DefaultFilterSpec() FilterSpec {
	return FilterSpec{
		MarketTypes: stock.AllMarketTypes(),
		Ranges:      map[stock.FieldID]Bounds{},
	}
}

// Range は指標の範囲条件を返します。未設定ならゼロ値です。
func (s FilterSpec) Range(id stock.FieldID) Bounds {
	return s.Ranges[id]
}

// WithRange は範囲条件を差し替えた新しいFilterSpecを返します。元の値は変更しません。
func (s FilterSpec) WithRange(id stock.FieldID, b Bounds) FilterSpec {
	ranges := make(map[stock.FieldID]Bounds, len(s.Ranges)+1)
	for k, v := range s.Ranges {
		ranges[k] = v
	}
	if b.IsZero() {
		delete(ranges, id)
	} else {
		ranges[id] = b
	}
	s.Ranges = ranges
	return s
}

// FilterPatch はURLから復元した部分的な条件です。nilのフィールドは「指定なし」です。
type FilterPatch struct {
	CompanyName *string
	StockCode   *string
	Industries  []string
	Markets     []string
	Prefectures []string
	MarketTypes []stock.MarketType
	Ranges      map[stock.FieldID]Bounds
}

// Merge はpatchで指定された項目だけを上書きした新しいFilterSpecを返します。
// 範囲条件は上限・下限それぞれ個別に上書きします。
func (s FilterSpec) Merge(p FilterPatch) FilterSpec {
	out := s
	if p.CompanyName != nil {
		out.CompanyName = *p.CompanyName
	}
	if p.StockCode != nil {
		out.StockCode = *p.StockCode
	}
	if p.Industries != nil {
		out.Industries = append([]string(nil), p.Industries...)
	}
	if p.Markets != nil {
		out.Markets = append([]string(nil), p.Markets...)
	}
	if p.Prefectures != nil {
		out.Prefectures = append([]string(nil), p.Prefectures...)
	}
	if p.MarketTypes != nil {
		out.MarketTypes = append([]stock.MarketType(nil), p.MarketTypes...)
	}
	for id, b := range p.Ranges {
		cur := out.Range(id)
		if b.Min != nil {
			cur.Min = b.Min
		}
		if b.Max != nil {
			cur.Max = b.Max
		}
		out = out.WithRange(id, cur)
	}
	return out
}

// HasDefaultMarketTypes は市場タイプ条件が既定値（JP・US両方）と同じであればtrueを返します。
func (s FilterSpec) HasDefaultMarketTypes() bool {
	var jp, us bool
	for _, mt := range s.MarketTypes {
		switch mt {
		case stock.MarketJP:
			jp = true
		case stock.MarketUS:
			us = true
		default:
			return false
		}
	}
	return jp && us
}

func finite(p *float64) bool {
	return p != nil && !math.IsNaN(*p) && !math.IsInf(*p, 0)
}
