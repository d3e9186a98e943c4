package entity

// ColumnConfig は表示・エクスポート対象の列設定です。
// Essential な列は非表示にできません。
type ColumnConfig struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	Category  string `json:"category"`
	Visible   bool   `json:"visible"`
	Essential bool   `json:"essential"`
}
