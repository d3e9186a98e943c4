// Package entity はstocksフィーチャーのドメインモデルを定義します。
package entity

import (
	"strconv"
	"strings"
)

// CSVの列名（ヘッダー）。列キーはCSVヘッダーそのものを使います。
const (
	KeyCompanyName     = "会社名"
	KeyCode            = "銘柄コード"
	KeyLegacyCode      = "コード"
	KeyIndustry        = "業種"
	KeyPreferredMarket = "優先市場"
	KeyPrefecture      = "都道府県"
	KeyFiscalMonth     = "決算月"
	KeyMarketType      = "市場タイプ"

	KeySourceFile = "_source_file"
	KeyRowIndex   = "_row_index"
)

// StockRecord はCSVの1行（1銘柄）を表します。
// 解析時に一度だけ生成され、以降は変更されません。
type StockRecord struct {
	Code            string  // 銘柄コード（ティッカー）
	LegacyCode      string  // 旧形式のコード列
	CompanyName     string  // 会社名
	Industry        *string // 業種
	PreferredMarket *string // 優先市場
	Prefecture      *string // 都道府県
	FiscalMonth     *string // 決算月
	MarketType      MarketType

	MarketCap          *float64 // 時価総額（円）
	PBR                *float64
	Revenue            *float64 // 売上高（円）
	OperatingProfit    *float64 // 営業利益（円）
	OperatingMargin    *float64 // 営業利益率（小数）
	NetProfit          *float64 // 当期純利益（円）
	NetMargin          *float64 // 純利益率（小数）
	ROE                *float64 // 小数
	EquityRatio        *float64 // 自己資本比率（小数）
	ForwardPE          *float64 // PER(会予)
	TrailingPE         *float64 // PER(過去12ヶ月)
	PreviousYearPE     *float64 // PER(前年度)
	DividendDirection  *float64 // 配当方向性（小数）
	DividendYield      *float64 // 配当利回り（小数）
	TrailingEPS        *float64 // EPS(過去12ヶ月)
	ForwardEPS         *float64 // EPS(予想)
	PreviousYearEPS    *float64 // EPS(前年度)
	TotalLiabilities   *float64 // 負債
	CurrentLiabilities *float64 // 流動負債
	CurrentAssets      *float64 // 流動資産
	TotalDebt          *float64 // 総負債
	Cash               *float64 // 現金及び現金同等物
	Investments        *float64 // 投資有価証券
	NetCash            *float64 // ネットキャッシュ
	NetCashLegacy      *float64 // ネットキャッシュ（流動資産-負債）
	NetCashRatio       *float64 // ネットキャッシュ比率（小数）

	SourceFile string
	RowIndex   *int

	Extras Extras
}

// Valid は会社名とコード（銘柄コードまたはコード）が揃っている場合にtrueを返します。
func (r *StockRecord) Valid() bool {
	return r.CompanyName != "" && r.DisplayCode() != ""
}

// DisplayCode は銘柄コードを返します。空の場合は旧形式のコードを返します。
func (r *StockRecord) DisplayCode() string {
	if r.Code != "" {
		return r.Code
	}
	return r.LegacyCode
}

// EffectiveMarketType は明示された市場タイプを優先し、なければティッカーから推定します。
func (r *StockRecord) EffectiveMarketType() MarketType {
	if r.MarketType != "" {
		return r.MarketType
	}
	return InferMarketType(r.DisplayCode())
}

// Value は列キーに対応する値を返します。
// 数値列は登録表を通して解決されるため、ネットキャッシュの新旧どちらのキーでも同じ値になります。
func (r *StockRecord) Value(key string) Value {
	switch key {
	case KeyCompanyName:
		return optionalString(r.CompanyName)
	case KeyCode:
		return optionalString(r.Code)
	case KeyLegacyCode:
		return optionalString(r.LegacyCode)
	case KeyIndustry:
		return FromStringPtr(r.Industry)
	case KeyPreferredMarket:
		return FromStringPtr(r.PreferredMarket)
	case KeyPrefecture:
		return FromStringPtr(r.Prefecture)
	case KeyFiscalMonth:
		return FromStringPtr(r.FiscalMonth)
	case KeyMarketType:
		return optionalString(string(r.MarketType))
	case KeySourceFile:
		return optionalString(r.SourceFile)
	case KeyRowIndex:
		if r.RowIndex == nil {
			return NullValue()
		}
		return NumberValue(float64(*r.RowIndex))
	}
	if f, ok := NumericFieldByHeader(key); ok {
		return FromFloatPtr(f.Value(r))
	}
	if v, ok := r.Extras.Get(key); ok {
		return v
	}
	return NullValue()
}

// IsInternalKey は内部用の列（"_"始まり）であればtrueを返します。
// 内部列はフィルター対象・エクスポート対象の列集合から除外されます。
func IsInternalKey(key string) bool {
	return strings.HasPrefix(key, "_")
}

// IsTextKey は文字列として保持する既知の列（内部列を含む）であればtrueを返します。
func IsTextKey(key string) bool {
	switch key {
	case KeyCompanyName, KeyCode, KeyLegacyCode, KeyIndustry, KeyPreferredMarket,
		KeyPrefecture, KeyFiscalMonth, KeyMarketType, KeySourceFile, KeyRowIndex:
		return true
	}
	return false
}

// SetText は非数値列の値を設定します。空文字はnullとして扱います。
// 解析処理からのみ呼ばれる想定です。
func (r *StockRecord) SetText(key, raw string) {
	s := strings.TrimSpace(raw)
	switch key {
	case KeyCompanyName:
		r.CompanyName = s
	case KeyCode:
		r.Code = s
	case KeyLegacyCode:
		r.LegacyCode = s
	case KeyIndustry:
		r.Industry = stringPtr(s)
	case KeyPreferredMarket:
		r.PreferredMarket = stringPtr(s)
	case KeyPrefecture:
		r.Prefecture = stringPtr(s)
	case KeyFiscalMonth:
		r.FiscalMonth = stringPtr(s)
	case KeyMarketType:
		if mt, ok := ParseMarketType(s); ok {
			r.MarketType = mt
		}
	case KeySourceFile:
		if s != "" {
			r.SourceFile = s
		}
	case KeyRowIndex:
		if n, err := strconv.Atoi(s); err == nil {
			r.RowIndex = &n
		}
	default:
		if s == "" {
			r.Extras.Set(key, NullValue())
			return
		}
		r.Extras.Set(key, StringValue(s))
	}
}

func optionalString(s string) Value {
	if s == "" {
		return NullValue()
	}
	return StringValue(s)
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
