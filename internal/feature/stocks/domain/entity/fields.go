package entity

// Scale は表示単位（ユーザーが入力する単位）と保存単位の関係を表します。
type Scale int

const (
	// ScaleRatio は表示単位と保存単位が同じ指標（PBR、PER、EPS）です。
	ScaleRatio Scale = iota
	// ScaleMoney は百万円単位で入力し、円で保存される金額です。
	ScaleMoney
	// ScalePercent はパーセントで入力し、小数で保存される比率です。
	ScalePercent
)

const (
	millionFactor = 1_000_000
	percentFactor = 100
)

// ToStorage は表示単位の値を保存単位に変換します。
func (s Scale) ToStorage(display float64) float64 {
	switch s {
	case ScaleMoney:
		return display * millionFactor
	case ScalePercent:
		return display / percentFactor
	default:
		return display
	}
}

// FieldID は数値指標の識別子です。フィルターやURLパラメータの対応付けに使います。
type FieldID string

const (
	FieldMarketCap          FieldID = "marketCap"
	FieldPBR                FieldID = "pbr"
	FieldRevenue            FieldID = "revenue"
	FieldOperatingProfit    FieldID = "operatingProfit"
	FieldOperatingMargin    FieldID = "operatingMargin"
	FieldNetProfit          FieldID = "netProfit"
	FieldNetMargin          FieldID = "netMargin"
	FieldROE                FieldID = "roe"
	FieldEquityRatio        FieldID = "equityRatio"
	FieldForwardPE          FieldID = "forwardPE"
	FieldTrailingPE         FieldID = "trailingPE"
	FieldPreviousYearPE     FieldID = "previousYearPE"
	FieldDividendDirection  FieldID = "dividendDirection"
	FieldDividendYield      FieldID = "dividendYield"
	FieldTrailingEPS        FieldID = "trailingEps"
	FieldForwardEPS         FieldID = "forwardEps"
	FieldPreviousYearEPS    FieldID = "previousYearEps"
	FieldTotalLiabilities   FieldID = "totalLiabilities"
	FieldCurrentLiabilities FieldID = "currentLiabilities"
	FieldCurrentAssets      FieldID = "currentAssets"
	FieldTotalDebt          FieldID = "totalDebt"
	FieldCash               FieldID = "cash"
	FieldInvestments        FieldID = "investments"
	FieldNetCash            FieldID = "netCash"
	FieldNetCashRatio       FieldID = "netCashRatio"
)

// ネットキャッシュの列名。新しい名前を優先し、旧名にフォールバックします。
const (
	KeyNetCash       = "ネットキャッシュ"
	KeyNetCashLegacy = "ネットキャッシュ（流動資産-負債）"
)

// NumericField は数値指標の定義です。
// Headers は優先順のCSV列名で、先頭が現行名、以降が旧名です。
type NumericField struct {
	ID      FieldID
	Headers []string
	Scale   Scale
}

// Header は現行のCSV列名を返します。
func (f NumericField) Header() string { return f.Headers[0] }

// Value はレコードからこの指標の値を取り出します。
// 列名を優先順に調べ、最初に値を持つものを返します。
func (f NumericField) Value(r *StockRecord) *float64 {
	for _, h := range f.Headers {
		if v := *numericSlots[h](r); v != nil {
			return v
		}
	}
	return nil
}

// NumericFields は数値指標の登録表です。正規化・フィルター・URL変換・ソートはすべてこの表を参照します。
// 新しい指標の追加はこの表とnumericSlotsへの追記で完結します。
var NumericFields = []NumericField{
	{ID: FieldMarketCap, Headers: []string{"時価総額"}, Scale: ScaleMoney},
	{ID: FieldPBR, Headers: []string{"PBR"}, Scale: ScaleRatio},
	{ID: FieldRevenue, Headers: []string{"売上高"}, Scale: ScaleMoney},
	{ID: FieldOperatingProfit, Headers: []string{"営業利益"}, Scale: ScaleMoney},
	{ID: FieldOperatingMargin, Headers: []string{"営業利益率"}, Scale: ScalePercent},
	{ID: FieldNetProfit, Headers: []string{"当期純利益"}, Scale: ScaleMoney},
	{ID: FieldNetMargin, Headers: []string{"純利益率"}, Scale: ScalePercent},
	{ID: FieldROE, Headers: []string{"ROE"}, Scale: ScalePercent},
	{ID: FieldEquityRatio, Headers: []string{"自己資本比率"}, Scale: ScalePercent},
	{ID: FieldForwardPE, Headers: []string{"PER(会予)"}, Scale: ScaleRatio},
	{ID: FieldTrailingPE, Headers: []string{"PER(過去12ヶ月)"}, Scale: ScaleRatio},
	{ID: FieldPreviousYearPE, Headers: []string{"PER(前年度)"}, Scale: ScaleRatio},
	{ID: FieldDividendDirection, Headers: []string{"配当方向性"}, Scale: ScalePercent},
	{ID: FieldDividendYield, Headers: []string{"配当利回り"}, Scale: ScalePercent},
	{ID: FieldTrailingEPS, Headers: []string{"EPS(過去12ヶ月)"}, Scale: ScaleRatio},
	{ID: FieldForwardEPS, Headers: []string{"EPS(予想)"}, Scale: ScaleRatio},
	{ID: FieldPreviousYearEPS, Headers: []string{"EPS(前年度)"}, Scale: ScaleRatio},
	{ID: FieldTotalLiabilities, Headers: []string{"負債"}, Scale: ScaleMoney},
	{ID: FieldCurrentLiabilities, Headers: []string{"流動負債"}, Scale: ScaleMoney},
	{ID: FieldCurrentAssets, Headers: []string{"流動資産"}, Scale: ScaleMoney},
	{ID: FieldTotalDebt, Headers: []string{"総負債"}, Scale: ScaleMoney},
	{ID: FieldCash, Headers: []string{"現金及び現金同等物"}, Scale: ScaleMoney},
	{ID: FieldInvestments, Headers: []string{"投資有価証券"}, Scale: ScaleMoney},
	{ID: FieldNetCash, Headers: []string{KeyNetCash, KeyNetCashLegacy}, Scale: ScaleMoney},
	{ID: FieldNetCashRatio, Headers: []string{"ネットキャッシュ比率"}, Scale: ScalePercent},
}

// numericSlots はCSV列名からレコードのフィールドへの対応表です。
var numericSlots = map[string]func(r *StockRecord) **float64{
	"時価総額":         func(r *StockRecord) **float64 { return &r.MarketCap },
	"PBR":          func(r *StockRecord) **float64 { return &r.PBR },
	"売上高":          func(r *StockRecord) **float64 { return &r.Revenue },
	"営業利益":         func(r *StockRecord) **float64 { return &r.OperatingProfit },
	"営業利益率":        func(r *StockRecord) **float64 { return &r.OperatingMargin },
	"当期純利益":        func(r *StockRecord) **float64 { return &r.NetProfit },
	"純利益率":         func(r *StockRecord) **float64 { return &r.NetMargin },
	"ROE":          func(r *StockRecord) **float64 { return &r.ROE },
	"自己資本比率":       func(r *StockRecord) **float64 { return &r.EquityRatio },
	"PER(会予)":      func(r *StockRecord) **float64 { return &r.ForwardPE },
	"PER(過去12ヶ月)":  func(r *StockRecord) **float64 { return &r.TrailingPE },
	"PER(前年度)":     func(r *StockRecord) **float64 { return &r.PreviousYearPE },
	"配当方向性":        func(r *StockRecord) **float64 { return &r.DividendDirection },
	"配当利回り":        func(r *StockRecord) **float64 { return &r.DividendYield },
	"EPS(過去12ヶ月)":  func(r *StockRecord) **float64 { return &r.TrailingEPS },
	"EPS(予想)":      func(r *StockRecord) **float64 { return &r.ForwardEPS },
	"EPS(前年度)":     func(r *StockRecord) **float64 { return &r.PreviousYearEPS },
	"負債":           func(r *StockRecord) **float64 { return &r.TotalLiabilities },
	"流動負債":         func(r *StockRecord) **float64 { return &r.CurrentLiabilities },
	"流動資産":         func(r *StockRecord) **float64 { return &r.CurrentAssets },
	"総負債":          func(r *StockRecord) **float64 { return &r.TotalDebt },
	"現金及び現金同等物":    func(r *StockRecord) **float64 { return &r.Cash },
	"投資有価証券":       func(r *StockRecord) **float64 { return &r.Investments },
	KeyNetCash:       func(r *StockRecord) **float64 { return &r.NetCash },
	KeyNetCashLegacy: func(r *StockRecord) **float64 { return &r.NetCashLegacy },
	"ネットキャッシュ比率":   func(r *StockRecord) **float64 { return &r.NetCashRatio },
}

var (
	fieldsByID     = map[FieldID]NumericField{}
	fieldsByHeader = map[string]NumericField{}
)

func init() {
	for _, f := range NumericFields {
		fieldsByID[f.ID] = f
		for _, h := range f.Headers {
			if _, ok := numericSlots[h]; !ok {
				panic("entity: numeric header without slot: " + h)
			}
			fieldsByHeader[h] = f
		}
	}
}

// NumericFieldByID は識別子から指標定義を返します。
func NumericFieldByID(id FieldID) (NumericField, bool) {
	f, ok := fieldsByID[id]
	return f, ok
}

// NumericFieldByHeader はCSV列名から指標定義を返します。旧名でも引けます。
func NumericFieldByHeader(header string) (NumericField, bool) {
	f, ok := fieldsByHeader[header]
	return f, ok
}

// IsNumericHeader は列名が数値列であればtrueを返します。
func IsNumericHeader(header string) bool {
	_, ok := numericSlots[header]
	return ok
}

// SetNumeric は数値列の値を設定します。数値列でなければfalseを返します。
func (r *StockRecord) SetNumeric(header string, v *float64) bool {
	slot, ok := numericSlots[header]
	if !ok {
		return false
	}
	*slot(r) = v
	return true
}
