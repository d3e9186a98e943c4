package usecase

import (
	"testing"

	stock "stock_search/internal/feature/stocks/domain/entity"

	"github.com/stretchr/testify/assert"
)

func optionRecords() []stock.StockRecord {
	return []stock.StockRecord{
		rec("トヨタ", "7203", func(r *stock.StockRecord) {
			r.Industry = str("輸送用機器")
			r.PreferredMarket = str("プライム")
			r.Prefecture = str("愛知県")
		}),
		rec("ソニー", "6758", func(r *stock.StockRecord) {
			r.Industry = str("電気機器")
			r.PreferredMarket = str("プライム")
			r.Prefecture = str("東京都")
		}),
		rec("Apple", "AAPL", func(r *stock.StockRecord) {
			r.Industry = str("電気機器")
			r.PreferredMarket = str("NASDAQ")
			r.Prefecture = str("California")
		}),
		rec("空", "1301", func(r *stock.StockRecord) {
			r.Industry = str("")
		}),
	}
}

func TestAvailableIndustries(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"輸送用機器", "電気機器"}, AvailableIndustries(optionRecords()))
	assert.Equal(t, []string{}, AvailableIndustries(nil))
}

func TestAvailableMarkets(t *testing.T) {
	t.Parallel()

	records := optionRecords()
	assert.Equal(t, []string{"NASDAQ", "プライム"}, AvailableMarkets(records, nil))
	assert.Equal(t, []string{"プライム"}, AvailableMarkets(records, []stock.MarketType{stock.MarketJP}))
	assert.Equal(t, []string{"NASDAQ"}, AvailableMarkets(records, []stock.MarketType{stock.MarketUS}))
}

func TestAvailablePrefectures(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"愛知県", "東京都"}, AvailablePrefectures(optionRecords()))
}

func TestOptions(t *testing.T) {
	t.Parallel()

	got := Options(optionRecords(), stock.AllMarketTypes())
	assert.Equal(t, FilterOptions{
		Industries:  []string{"輸送用機器", "電気機器"},
		Markets:     []string{"NASDAQ", "プライム"},
		Prefectures: []string{"愛知県", "東京都"},
	}, got)
}
