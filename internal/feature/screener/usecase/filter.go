// Package usecase は銘柄一覧の絞り込み・並べ替え・列設定・ページングを提供します。
// いずれも不変の入力に対する純粋な処理で、並行に呼び出しても安全です。
package usecase

import (
	"math"
	"slices"
	"strings"

	"stock_search/internal/feature/screener/domain/entity"
	stock "stock_search/internal/feature/stocks/domain/entity"

	"golang.org/x/text/cases"
)

// rangeCheck は数値指標1つ分の範囲条件を保存単位に変換したものです。
type rangeCheck struct {
	field    stock.NumericField
	min, max float64
	hasMin   bool
	hasMax   bool
}

// matcher はFilterSpecを1回の絞り込み用に前処理したものです。
// cases.Caserは状態を持つため、絞り込みごとに生成します。
type matcher struct {
	fold        cases.Caser
	company     string
	code        string
	industries  []string
	markets     []string
	prefectures []string
	marketTypes []stock.MarketType
	ranges      []rangeCheck
}

func newMatcher(spec entity.FilterSpec) *matcher {
	m := &matcher{
		fold:        cases.Fold(),
		industries:  spec.Industries,
		markets:     spec.Markets,
		prefectures: spec.Prefectures,
		marketTypes: spec.MarketTypes,
	}
	m.company = m.fold.String(strings.TrimSpace(spec.CompanyName))
	m.code = m.fold.String(strings.TrimSpace(spec.StockCode))

	// 登録表の順に評価するため、mapではなく登録表を走査する
	for _, f := range stock.NumericFields {
		b, ok := spec.Ranges[f.ID]
		if !ok {
			continue
		}
		rc := rangeCheck{field: f}
		if finite(b.Min) {
			rc.min, rc.hasMin = f.Scale.ToStorage(*b.Min), true
		}
		if finite(b.Max) {
			rc.max, rc.hasMax = f.Scale.ToStorage(*b.Max), true
		}
		if rc.hasMin || rc.hasMax {
			m.ranges = append(m.ranges, rc)
		}
	}
	return m
}

func (m *matcher) match(r *stock.StockRecord) bool {
	if m.company != "" && r.CompanyName != "" &&
		!strings.Contains(m.fold.String(r.CompanyName), m.company) {
		return false
	}
	if m.code != "" {
		if code := r.DisplayCode(); code != "" && !strings.Contains(m.fold.String(code), m.code) {
			return false
		}
	}
	if !inSet(m.industries, r.Industry) || !inSet(m.markets, r.PreferredMarket) {
		return false
	}

	mt := r.EffectiveMarketType()
	if len(m.marketTypes) > 0 && !slices.Contains(m.marketTypes, mt) {
		return false
	}
	// 都道府県は日本株にのみ適用する
	if mt == stock.MarketJP && !inSet(m.prefectures, r.Prefecture) {
		return false
	}

	for _, rc := range m.ranges {
		v := rc.field.Value(r)
		if v == nil {
			continue
		}
		if rc.hasMin && *v < rc.min {
			return false
		}
		if rc.hasMax && *v > rc.max {
			return false
		}
	}
	return true
}

// Matches はレコードが条件をすべて満たす場合にtrueを返します。
// 値が欠けている項目はその条件で除外されません（数値のnull、会社名・コードの欠落）。
// 集合条件は空なら無条件で通過し、指定がある場合は値なしのレコードを除外します。
func Matches(r *stock.StockRecord, spec entity.FilterSpec) bool {
	return newMatcher(spec).match(r)
}

// Filter は条件を満たすレコードを元の順序のまま新しいスライスで返します。
func Filter(records []stock.StockRecord, spec entity.FilterSpec) []stock.StockRecord {
	m := newMatcher(spec)
	out := make([]stock.StockRecord, 0, len(records))
	for i := range records {
		if m.match(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}

func inSet(set []string, v *string) bool {
	if len(set) == 0 {
		return true
	}
	if v == nil {
		return false
	}
	return slices.Contains(set, *v)
}

func finite(p *float64) bool {
	return p != nil && !math.IsNaN(*p) && !math.IsInf(*p, 0)
}
