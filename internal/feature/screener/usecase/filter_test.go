package usecase

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"stock_search/internal/feature/screener/domain/entity"
	stock "stock_search/internal/feature/stocks/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withRange(id stock.FieldID, min, max *float64) entity.FilterSpec {
	return entity.DefaultFilterSpec().WithRange(id, entity.Bounds{Min: min, Max: max})
}

func TestMatches(t *testing.T) {
	t.Parallel()

	toyota := rec("トヨタ自動車", "7203", func(r *stock.StockRecord) {
		r.MarketCap = f64(30_000_000)
		r.ROE = f64(0.12)
		r.PBR = f64(1.2)
		r.Industry = str("輸送用機器")
		r.PreferredMarket = str("プライム")
		r.Prefecture = str("愛知県")
	})
	apple := rec("Apple Inc.", "AAPL", func(r *stock.StockRecord) {
		r.PBR = f64(45)
		r.PreferredMarket = str("NASDAQ")
	})
	legacy := rec("旧形式", "", func(r *stock.StockRecord) {
		r.LegacyCode = "1301"
		r.NetCashLegacy = f64(-5_000_000)
	})
	negativePBR := rec("債務超過", "9999", func(r *stock.StockRecord) { r.PBR = f64(-0.5) })
	explicitUS := rec("明示US", "7974", func(r *stock.StockRecord) { r.MarketType = stock.MarketUS })

	tests := []struct {
		name   string
		record stock.StockRecord
		spec   entity.FilterSpec
		want   bool
	}{
		{name: "default spec passes", record: toyota, spec: entity.DefaultFilterSpec(), want: true},
		{name: "zero spec passes", record: apple, spec: entity.FilterSpec{}, want: true},

		// 単位変換（百万円・パーセント・倍率）
		{name: "market cap min in millions passes", record: toyota, spec: withRange(stock.FieldMarketCap, f64(20), nil), want: true},
		{name: "market cap min in millions fails", record: toyota, spec: withRange(stock.FieldMarketCap, f64(31), nil), want: false},
		{name: "market cap max boundary inclusive", record: toyota, spec: withRange(stock.FieldMarketCap, nil, f64(30)), want: true},
		{name: "roe percent min excludes", record: toyota, spec: withRange(stock.FieldROE, f64(15), nil), want: false},
		{name: "roe percent min boundary inclusive", record: toyota, spec: withRange(stock.FieldROE, f64(12), nil), want: true},
		{name: "pbr ratio compared directly", record: toyota, spec: withRange(stock.FieldPBR, f64(1), f64(1.5)), want: true},
		{name: "pbr ratio max excludes", record: apple, spec: withRange(stock.FieldPBR, nil, f64(10)), want: false},

		{name: "null value never fails min", record: apple, spec: withRange(stock.FieldROE, f64(1000), nil), want: true},
		{name: "null value never fails max", record: apple, spec: withRange(stock.FieldMarketCap, nil, f64(-1000)), want: true},
		{name: "zero bound is active", record: negativePBR, spec: withRange(stock.FieldPBR, f64(0), nil), want: false},
		{name: "nan bound ignored", record: negativePBR, spec: entity.FilterSpec{Ranges: map[stock.FieldID]entity.Bounds{stock.FieldPBR: {Min: f64(math.NaN())}}}, want: true},
		{name: "inf bound ignored", record: negativePBR, spec: entity.FilterSpec{Ranges: map[stock.FieldID]entity.Bounds{stock.FieldPBR: {Min: f64(math.Inf(1))}}}, want: true},

		{name: "legacy net cash max passes", record: legacy, spec: withRange(stock.FieldNetCash, nil, f64(-1)), want: true},
		{name: "legacy net cash min excludes", record: legacy, spec: withRange(stock.FieldNetCash, f64(0), nil), want: false},

		{name: "company case insensitive", record: apple, spec: entity.FilterSpec{CompanyName: "apple"}, want: true},
		{name: "company substring", record: toyota, spec: entity.FilterSpec{CompanyName: "自動車"}, want: true},
		{name: "company mismatch", record: toyota, spec: entity.FilterSpec{CompanyName: "ソニー"}, want: false},
		{name: "code substring", record: toyota, spec: entity.FilterSpec{StockCode: "72"}, want: true},
		{name: "code case insensitive", record: apple, spec: entity.FilterSpec{StockCode: "aap"}, want: true},
		{name: "code mismatch", record: toyota, spec: entity.FilterSpec{StockCode: "99"}, want: false},
		{name: "legacy code fallback", record: legacy, spec: entity.FilterSpec{StockCode: "130"}, want: true},

		{name: "industry member", record: toyota, spec: entity.FilterSpec{Industries: []string{"電気機器", "輸送用機器"}}, want: true},
		{name: "industry non member", record: toyota, spec: entity.FilterSpec{Industries: []string{"電気機器"}}, want: false},
		{name: "industry missing excluded by non-empty set", record: apple, spec: entity.FilterSpec{Industries: []string{"電気機器"}}, want: false},
		{name: "market member", record: apple, spec: entity.FilterSpec{Markets: []string{"NASDAQ"}}, want: true},
		{name: "market non member", record: toyota, spec: entity.FilterSpec{Markets: []string{"NASDAQ"}}, want: false},

		{name: "prefecture member", record: toyota, spec: entity.FilterSpec{Prefectures: []string{"愛知県"}}, want: true},
		{name: "prefecture non member", record: toyota, spec: entity.FilterSpec{Prefectures: []string{"東京都"}}, want: false},
		{name: "prefecture ignored for US", record: apple, spec: entity.FilterSpec{Prefectures: []string{"東京都"}}, want: true},
		{name: "prefecture missing on JP excluded", record: negativePBR, spec: entity.FilterSpec{Prefectures: []string{"東京都"}}, want: false},

		{name: "market type JP excludes US", record: apple, spec: entity.FilterSpec{MarketTypes: []stock.MarketType{stock.MarketJP}}, want: false},
		{name: "market type US includes ticker", record: apple, spec: entity.FilterSpec{MarketTypes: []stock.MarketType{stock.MarketUS}}, want: true},
		{name: "explicit market type wins", record: explicitUS, spec: entity.FilterSpec{MarketTypes: []stock.MarketType{stock.MarketJP}}, want: false},
		{name: "empty market type set passes", record: apple, spec: entity.FilterSpec{MarketTypes: []stock.MarketType{}}, want: true},

		{name: "dimensions combined with AND", record: toyota, spec: func() entity.FilterSpec {
			s := withRange(stock.FieldMarketCap, f64(20), nil)
			s.CompanyName = "トヨタ"
			s.Industries = []string{"電気機器"}
			return s
		}(), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := tt.record
			assert.Equal(t, tt.want, Matches(&r, tt.spec))
		})
	}
}

// TestFilter_EmptyIndustriesPassAll は業種条件が空なら業種に関係なく全件が通過することを検証します。
func TestFilter_EmptyIndustriesPassAll(t *testing.T) {
	t.Parallel()

	industries := []string{"輸送用機器", "電気機器", "銀行業", "小売業"}
	records := make([]stock.StockRecord, 0, 100)
	for i := 0; i < 100; i++ {
		records = append(records, rec(fmt.Sprintf("会社%d", i), fmt.Sprintf("%04d", 1000+i), func(r *stock.StockRecord) {
			if i%5 != 0 {
				r.Industry = str(industries[i%len(industries)])
			}
		}))
	}

	spec := entity.DefaultFilterSpec()
	spec.Industries = []string{}
	got := Filter(records, spec)
	assert.Len(t, got, 100)
}

// TestFilter_PreservesOrder は絞り込み結果が元の順序を保ち、入力を変更しないことを検証します。
func TestFilter_PreservesOrder(t *testing.T) {
	t.Parallel()

	records := []stock.StockRecord{
		rec("C", "3000", func(r *stock.StockRecord) { r.PBR = f64(3) }),
		rec("A", "1000", func(r *stock.StockRecord) { r.PBR = f64(0.5) }),
		rec("B", "2000", func(r *stock.StockRecord) { r.PBR = f64(2) }),
		rec("D", "4000"),
	}
	got := Filter(records, withRange(stock.FieldPBR, f64(1), nil))
	assert.Equal(t, []string{"C", "B", "D"}, names(got))
	assert.Equal(t, []string{"C", "A", "B", "D"}, names(records))
}

// TestFilter_Monotonicity は下限を下げる（上限を上げる）と通過件数が減らないことを検証します。
func TestFilter_Monotonicity(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	records := make([]stock.StockRecord, 0, 200)
	for i := 0; i < 200; i++ {
		records = append(records, rec(fmt.Sprintf("会社%d", i), fmt.Sprintf("%04d", i), func(r *stock.StockRecord) {
			if rng.Intn(4) > 0 {
				r.ROE = f64(rng.Float64()*0.4 - 0.1)
			}
			if rng.Intn(4) > 0 {
				r.MarketCap = f64(rng.Float64() * 1e12)
			}
		}))
	}

	passing := func(spec entity.FilterSpec) map[string]bool {
		out := map[string]bool{}
		for _, r := range Filter(records, spec) {
			out[r.Code] = true
		}
		return out
	}

	for _, tc := range []struct {
		id            stock.FieldID
		narrow, widen entity.Bounds
	}{
		{id: stock.FieldROE, narrow: entity.Bounds{Min: f64(10)}, widen: entity.Bounds{Min: f64(5)}},
		{id: stock.FieldROE, narrow: entity.Bounds{Max: f64(5)}, widen: entity.Bounds{Max: f64(20)}},
		{id: stock.FieldMarketCap, narrow: entity.Bounds{Min: f64(500_000), Max: f64(600_000)}, widen: entity.Bounds{Min: f64(100_000), Max: f64(900_000)}},
	} {
		narrow := passing(entity.DefaultFilterSpec().WithRange(tc.id, tc.narrow))
		wide := passing(entity.DefaultFilterSpec().WithRange(tc.id, tc.widen))
		require.GreaterOrEqual(t, len(wide), len(narrow))
		for code := range narrow {
			assert.True(t, wide[code], "widening %s dropped %s", tc.id, code)
		}
	}
}

// TestFilter_NullSafety はnullの指標を持つレコードが範囲条件に関係なく通過することを検証します。
func TestFilter_NullSafety(t *testing.T) {
	t.Parallel()

	records := []stock.StockRecord{rec("値なし", "1111")}
	for _, f := range stock.NumericFields {
		for _, b := range []entity.Bounds{{Min: f64(1e9)}, {Max: f64(-1e9)}, {Min: f64(0), Max: f64(0)}} {
			got := Filter(records, entity.DefaultFilterSpec().WithRange(f.ID, b))
			assert.Len(t, got, 1, "field %s", f.ID)
		}
	}
}
