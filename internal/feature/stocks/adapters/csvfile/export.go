package csvfile

import (
	"fmt"
	"strings"
	"time"

	"stock_search/internal/feature/stocks/domain/entity"
)

// BOM はExcelなどにUTF-8と認識させるために出力の先頭に付けるバイト順マークです。
const BOM = "\uFEFF"

// DefaultExportBaseName はエクスポートファイル名の既定の接頭辞です。
const DefaultExportBaseName = "stock_data"

// Export はレコードを表示中の列だけでCSV文字列にします。
// ヘッダーは列のラベル、全セルをダブルクォートで囲み、値なしは空のクォートになります。
// 先頭にBOMを付けます。レコードが0件でもヘッダー行は出力します。
func Export(records []entity.StockRecord, columns []entity.ColumnConfig) string {
	visible := make([]entity.ColumnConfig, 0, len(columns))
	for _, c := range columns {
		if c.Visible {
			visible = append(visible, c)
		}
	}

	var b strings.Builder
	b.WriteString(BOM)

	for i, c := range visible {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(quote(c.Label))
	}

	for i := range records {
		b.WriteByte('\n')
		for j, c := range visible {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quote(records[i].Value(c.Key).Text()))
		}
	}
	return b.String()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// ExportFileName はダウンロード用のファイル名を生成します。
// 絞り込み件数が全件より少なければ "filtered"、そうでなければ "full" を含めます。
func ExportFileName(base string, filteredCount, totalCount int, now time.Time) string {
	if base == "" {
		base = DefaultExportBaseName
	}
	stamp := now.Format("20060102_1504")
	if filteredCount < totalCount {
		return fmt.Sprintf("%s_filtered_%d件_%s.csv", base, filteredCount, stamp)
	}
	return fmt.Sprintf("%s_full_%d件_%s.csv", base, totalCount, stamp)
}

// Encoder はエクスポート処理をユースケースに渡すための入れ物です。
type Encoder struct {
	BaseName string
}

// Export はパッケージ関数Exportを呼び出します。
func (e Encoder) Export(records []entity.StockRecord, columns []entity.ColumnConfig) string {
	return Export(records, columns)
}

// FileName はBaseNameを接頭辞にしたファイル名を返します。
func (e Encoder) FileName(filteredCount, totalCount int, now time.Time) string {
	return ExportFileName(e.BaseName, filteredCount, totalCount, now)
}
