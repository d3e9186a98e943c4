package entity_test

import (
	"math"
	"testing"

	"stock_search/internal/feature/screener/domain/entity"
	stock "stock_search/internal/feature/stocks/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }
func str(s string) *string { return &s }

func TestDefaultFilterSpec(t *testing.T) {
	t.Parallel()

	s := entity.DefaultFilterSpec()
	assert.Equal(t, []stock.MarketType{stock.MarketJP, stock.MarketUS}, s.MarketTypes)
	assert.True(t, s.HasDefaultMarketTypes())
	assert.Empty(t, s.Ranges)
	assert.Empty(t, s.CompanyName)
}

func TestFilterSpec_WithRange(t *testing.T) {
	t.Parallel()

	base := entity.DefaultFilterSpec()
	next := base.WithRange(stock.FieldROE, entity.Bounds{Min: f64(0)})

	assert.Empty(t, base.Ranges, "元の条件は変更されない")
	require.Contains(t, next.Ranges, stock.FieldROE)
	assert.Equal(t, 0.0, *next.Range(stock.FieldROE).Min, "0は有効な下限")

	cleared := next.WithRange(stock.FieldROE, entity.Bounds{})
	assert.NotContains(t, cleared.Ranges, stock.FieldROE)

	nan := base.WithRange(stock.FieldPBR, entity.Bounds{Min: f64(math.NaN())})
	assert.NotContains(t, nan.Ranges, stock.FieldPBR, "NaNのみの条件は未設定と同じ")
}

func TestFilterSpec_Merge(t *testing.T) {
	t.Parallel()

	base := entity.DefaultFilterSpec().WithRange(stock.FieldMarketCap, entity.Bounds{Min: f64(10), Max: f64(100)})
	base.CompanyName = "トヨタ"

	merged := base.Merge(entity.FilterPatch{
		StockCode:   str("72"),
		Industries:  []string{"輸送用機器"},
		MarketTypes: []stock.MarketType{stock.MarketJP},
		Ranges: map[stock.FieldID]entity.Bounds{
			stock.FieldMarketCap: {Max: f64(500)},
			stock.FieldROE:       {Min: f64(8)},
		},
	})

	assert.Equal(t, "トヨタ", merged.CompanyName, "patchにない項目は維持される")
	assert.Equal(t, "72", merged.StockCode)
	assert.Equal(t, []string{"輸送用機器"}, merged.Industries)
	assert.Nil(t, merged.Markets)
	assert.Equal(t, []stock.MarketType{stock.MarketJP}, merged.MarketTypes)
	assert.False(t, merged.HasDefaultMarketTypes())
	assert.Equal(t, 10.0, *merged.Range(stock.FieldMarketCap).Min)
	assert.Equal(t, 500.0, *merged.Range(stock.FieldMarketCap).Max)
	assert.Equal(t, 8.0, *merged.Range(stock.FieldROE).Min)
	assert.Equal(t, 100.0, *base.Range(stock.FieldMarketCap).Max, "元の条件は変更されない")
}

func TestFilterSpec_HasDefaultMarketTypes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		mts  []stock.MarketType
		want bool
	}{
		{name: "both", mts: []stock.MarketType{stock.MarketUS, stock.MarketJP}, want: true},
		{name: "jp only", mts: []stock.MarketType{stock.MarketJP}, want: false},
		{name: "empty", mts: nil, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := entity.FilterSpec{MarketTypes: tt.mts}
			assert.Equal(t, tt.want, s.HasDefaultMarketTypes())
		})
	}
}

func TestNextSort(t *testing.T) {
	t.Parallel()

	s := entity.NextSort(entity.SortSpec{}, "PBR")
	assert.Equal(t, entity.SortSpec{Key: "PBR", Direction: entity.Ascending}, s)
	s = entity.NextSort(s, "PBR")
	assert.Equal(t, entity.SortSpec{Key: "PBR", Direction: entity.Descending}, s)
	s = entity.NextSort(s, "PBR")
	assert.True(t, s.IsZero())

	s = entity.NextSort(entity.SortSpec{Key: "PBR", Direction: entity.Descending}, "ROE")
	assert.Equal(t, entity.SortSpec{Key: "ROE", Direction: entity.Ascending}, s)
}

func TestParseDirection(t *testing.T) {
	t.Parallel()

	assert.Equal(t, entity.Descending, entity.ParseDirection("desc"))
	assert.Equal(t, entity.Ascending, entity.ParseDirection("asc"))
	assert.Equal(t, entity.Ascending, entity.ParseDirection(""))
}

func TestPaginationState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		state     entity.PaginationState
		wantPage  int
		wantPages int
		wantStart int
		wantEnd   int
	}{
		{name: "first page", state: entity.PaginationState{CurrentPage: 1, ItemsPerPage: 50, TotalItems: 120}, wantPage: 1, wantPages: 3, wantStart: 0, wantEnd: 50},
		{name: "last partial page", state: entity.PaginationState{CurrentPage: 3, ItemsPerPage: 50, TotalItems: 120}, wantPage: 3, wantPages: 3, wantStart: 100, wantEnd: 120},
		{name: "clamped high", state: entity.PaginationState{CurrentPage: 9, ItemsPerPage: 50, TotalItems: 120}, wantPage: 3, wantPages: 3, wantStart: 100, wantEnd: 120},
		{name: "clamped low", state: entity.PaginationState{CurrentPage: 0, ItemsPerPage: 100, TotalItems: 120}, wantPage: 1, wantPages: 2, wantStart: 0, wantEnd: 100},
		{name: "empty", state: entity.PaginationState{CurrentPage: 4, ItemsPerPage: 50, TotalItems: 0}, wantPage: 1, wantPages: 1, wantStart: 0, wantEnd: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.state.Clamp()
			assert.Equal(t, tt.wantPage, got.CurrentPage)
			assert.Equal(t, tt.wantPages, got.TotalPages())
			start, end := got.Bounds()
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestNormalizeItemsPerPage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 100, entity.NormalizeItemsPerPage(100))
	assert.Equal(t, 200, entity.NormalizeItemsPerPage(200))
	assert.Equal(t, entity.DefaultItemsPerPage, entity.NormalizeItemsPerPage(0))
	assert.Equal(t, entity.DefaultItemsPerPage, entity.NormalizeItemsPerPage(75))
}
