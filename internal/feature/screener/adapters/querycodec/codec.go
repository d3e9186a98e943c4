// Package querycodec は絞り込み条件とURLクエリ文字列を相互に変換します。
// パラメータ名は共有リンクの互換性のため変更しないでください。
package querycodec

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"stock_search/internal/feature/screener/domain/entity"
	stock "stock_search/internal/feature/stocks/domain/entity"
)

// 文字列・集合条件のパラメータ名。
const (
	ParamCompany     = "company"
	ParamCode        = "code"
	ParamIndustries  = "industries"
	ParamMarket      = "market"
	ParamPrefecture  = "prefecture"
	ParamMarketTypes = "mt"
)

const listSeparator = ","

// rangeParams は数値指標ごとのパラメータ名の接頭辞です。"Min"/"Max" を付けて使います。
var rangeParams = map[stock.FieldID]string{
	stock.FieldMarketCap:          "mc",
	stock.FieldPBR:                "pbr",
	stock.FieldRevenue:            "rev",
	stock.FieldOperatingProfit:    "op",
	stock.FieldOperatingMargin:    "om",
	stock.FieldNetProfit:          "np",
	stock.FieldNetMargin:          "nm",
	stock.FieldROE:                "roe",
	stock.FieldEquityRatio:        "eq",
	stock.FieldForwardPE:          "pe",
	stock.FieldTrailingPE:         "tpe",
	stock.FieldPreviousYearPE:     "pype",
	stock.FieldDividendDirection:  "dd",
	stock.FieldDividendYield:      "dy",
	stock.FieldTrailingEPS:        "teps",
	stock.FieldForwardEPS:         "feps",
	stock.FieldPreviousYearEPS:    "pyeps",
	stock.FieldTotalLiabilities:   "tl",
	stock.FieldCurrentLiabilities: "cl",
	stock.FieldCurrentAssets:      "ca",
	stock.FieldTotalDebt:          "td",
	stock.FieldCash:               "cash",
	stock.FieldInvestments:        "inv",
	stock.FieldNetCash:            "nc",
	stock.FieldNetCashRatio:       "ncr",
}

// MinParam は指標の下限パラメータ名を返します。
func MinParam(id stock.FieldID) string { return rangeParams[id] + "Min" }

// MaxParam は指標の上限パラメータ名を返します。
func MaxParam(id stock.FieldID) string { return rangeParams[id] + "Max" }

// Values は条件のうち既定値と異なる項目だけをurl.Valuesにします。
func Values(spec entity.FilterSpec) url.Values {
	v := url.Values{}
	if s := strings.TrimSpace(spec.CompanyName); s != "" {
		v.Set(ParamCompany, s)
	}
	if s := strings.TrimSpace(spec.StockCode); s != "" {
		v.Set(ParamCode, s)
	}
	setList(v, ParamIndustries, spec.Industries)
	setList(v, ParamMarket, spec.Markets)
	setList(v, ParamPrefecture, spec.Prefectures)

	if len(spec.MarketTypes) > 0 && !spec.HasDefaultMarketTypes() {
		mts := make([]string, 0, len(spec.MarketTypes))
		for _, mt := range spec.MarketTypes {
			mts = append(mts, string(mt))
		}
		setList(v, ParamMarketTypes, mts)
	}

	for _, f := range stock.NumericFields {
		b, ok := spec.Ranges[f.ID]
		if !ok {
			continue
		}
		if finite(b.Min) {
			v.Set(MinParam(f.ID), formatNumber(*b.Min))
		}
		if finite(b.Max) {
			v.Set(MaxParam(f.ID), formatNumber(*b.Max))
		}
	}
	return v
}

// Encode は条件を共有用のクエリ文字列（先頭の"?"なし）にします。
// 既定値のままの条件は出力しません。
func Encode(spec entity.FilterSpec) string {
	return Values(spec).Encode()
}

// Decode はurl.Valuesから部分的な条件を復元します。
// 存在しない・解釈できないパラメータは結果に含めず、既定値で埋めることもしません。
func Decode(v url.Values) entity.FilterPatch {
	var p entity.FilterPatch
	if s := strings.TrimSpace(v.Get(ParamCompany)); s != "" {
		p.CompanyName = &s
	}
	if s := strings.TrimSpace(v.Get(ParamCode)); s != "" {
		p.StockCode = &s
	}
	p.Industries = getList(v, ParamIndustries)
	p.Markets = getList(v, ParamMarket)
	p.Prefectures = getList(v, ParamPrefecture)

	for _, s := range getList(v, ParamMarketTypes) {
		if mt, ok := stock.ParseMarketType(s); ok {
			p.MarketTypes = append(p.MarketTypes, mt)
		}
	}

	for _, f := range stock.NumericFields {
		lo, hasMin := getNumber(v, MinParam(f.ID))
		hi, hasMax := getNumber(v, MaxParam(f.ID))
		if !hasMin && !hasMax {
			continue
		}
		if p.Ranges == nil {
			p.Ranges = map[stock.FieldID]entity.Bounds{}
		}
		b := entity.Bounds{}
		if hasMin {
			b.Min = &lo
		}
		if hasMax {
			b.Max = &hi
		}
		p.Ranges[f.ID] = b
	}
	return p
}

// DecodeString はクエリ文字列から部分的な条件を復元します。先頭の"?"は無視します。
// 壊れたパラメータは個別に捨て、残りはそのまま復元します。
func DecodeString(raw string) entity.FilterPatch {
	// ParseQueryはエラーがあっても解釈できたパラメータを返す
	v, _ := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	return Decode(v)
}

func setList(v url.Values, key string, items []string) {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) > 0 {
		v.Set(key, strings.Join(out, listSeparator))
	}
}

func getList(v url.Values, key string) []string {
	raw := v.Get(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(raw, listSeparator) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func getNumber(v url.Values, key string) (float64, bool) {
	raw := strings.TrimSpace(v.Get(key))
	if raw == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func finite(p *float64) bool {
	return p != nil && !math.IsNaN(*p) && !math.IsInf(*p, 0)
}
