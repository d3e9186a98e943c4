package usecase

import (
	"slices"
	"sort"

	stock "stock_search/internal/feature/stocks/domain/entity"
)

// FilterOptions は絞り込み画面の選択肢です。
type FilterOptions struct {
	Industries  []string
	Markets     []string
	Prefectures []string
}

// AvailableIndustries はデータに含まれる業種を重複なしで昇順に返します。
func AvailableIndustries(records []stock.StockRecord) []string {
	return distinct(records, func(r *stock.StockRecord) *string { return r.Industry })
}

// AvailableMarkets は選択中の市場タイプに属する銘柄の優先市場を返します。
// marketTypesが空ならすべての銘柄が対象です。
func AvailableMarkets(records []stock.StockRecord, marketTypes []stock.MarketType) []string {
	return distinct(records, func(r *stock.StockRecord) *string {
		if len(marketTypes) > 0 && !slices.Contains(marketTypes, r.EffectiveMarketType()) {
			return nil
		}
		return r.PreferredMarket
	})
}

// AvailablePrefectures は日本株の都道府県を返します。
func AvailablePrefectures(records []stock.StockRecord) []string {
	return distinct(records, func(r *stock.StockRecord) *string {
		if r.EffectiveMarketType() != stock.MarketJP {
			return nil
		}
		return r.Prefecture
	})
}

// Options は3種類の選択肢をまとめて返します。
func Options(records []stock.StockRecord, marketTypes []stock.MarketType) FilterOptions {
	return FilterOptions{
		Industries:  AvailableIndustries(records),
		Markets:     AvailableMarkets(records, marketTypes),
		Prefectures: AvailablePrefectures(records),
	}
}

func distinct(records []stock.StockRecord, get func(*stock.StockRecord) *string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for i := range records {
		v := get(&records[i])
		if v == nil || *v == "" {
			continue
		}
		if _, ok := seen[*v]; ok {
			continue
		}
		seen[*v] = struct{}{}
		out = append(out, *v)
	}
	sort.Strings(out)
	return out
}
