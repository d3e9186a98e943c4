package entity

// Table はCSV1ファイル分の解析結果です。
// Columns はヘッダー順の列キー一覧で、内部列（"_"始まり）は含みません。
type Table struct {
	Records []StockRecord
	Columns []string
}
