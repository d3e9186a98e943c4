package entity_test

import (
	"testing"

	"stock_search/internal/feature/stocks/domain/entity"

	"github.com/stretchr/testify/assert"
)

// TestStockRecord_Valid は会社名とコードの有無による有効判定を検証します。
func TestStockRecord_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		record entity.StockRecord
		want   bool
	}{
		{name: "会社名と銘柄コードあり", record: entity.StockRecord{CompanyName: "トヨタ自動車", Code: "7203"}, want: true},
		{name: "旧コード列のみ", record: entity.StockRecord{CompanyName: "トヨタ自動車", LegacyCode: "7203"}, want: true},
		{name: "会社名なし", record: entity.StockRecord{Code: "7203"}, want: false},
		{name: "コードなし", record: entity.StockRecord{CompanyName: "トヨタ自動車"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.record.Valid())
		})
	}
}

// TestStockRecord_Value は列キーによる値の取得（固定列・数値列・追加列・内部列）を検証します。
func TestStockRecord_Value(t *testing.T) {
	t.Parallel()

	var r entity.StockRecord
	r.SetText(entity.KeyCompanyName, " トヨタ自動車 ")
	r.SetText(entity.KeyCode, "7203")
	r.SetText(entity.KeyIndustry, "")
	r.SetText("上場日", "1949/05/16")
	r.SetText("備考", "  ")
	r.SetText(entity.KeyRowIndex, "3")
	r.SetNumeric("時価総額", f64(30_000_000))

	assert.Equal(t, entity.StringValue("トヨタ自動車"), r.Value(entity.KeyCompanyName))
	assert.Equal(t, entity.StringValue("7203"), r.Value(entity.KeyCode))
	assert.True(t, r.Value(entity.KeyIndustry).IsNull())
	assert.Equal(t, entity.NumberValue(30_000_000), r.Value("時価総額"))
	assert.True(t, r.Value("PBR").IsNull())
	assert.Equal(t, entity.StringValue("1949/05/16"), r.Value("上場日"))
	assert.True(t, r.Value("備考").IsNull())
	assert.True(t, r.Value("存在しない列").IsNull())
	assert.Equal(t, entity.NumberValue(3), r.Value(entity.KeyRowIndex))
	assert.Equal(t, []string{"上場日", "備考"}, r.Extras.Keys())
}

// TestValue_Text はCSV出力用の文字列化を検証します。
func TestValue_Text(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", entity.NullValue().Text())
	assert.Equal(t, "abc", entity.StringValue("abc").Text())
	assert.Equal(t, "30000000", entity.NumberValue(30_000_000).Text())
	assert.Equal(t, "0.12", entity.NumberValue(0.12).Text())
	assert.Equal(t, "-1.5", entity.NumberValue(-1.5).Text())
}

// TestIsInternalKey は"_"始まりの列が内部列として扱われることを検証します。
func TestIsInternalKey(t *testing.T) {
	t.Parallel()

	assert.True(t, entity.IsInternalKey(entity.KeySourceFile))
	assert.True(t, entity.IsInternalKey(entity.KeyRowIndex))
	assert.False(t, entity.IsInternalKey(entity.KeyCompanyName))
}
