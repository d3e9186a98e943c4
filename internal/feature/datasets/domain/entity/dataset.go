// Package entity はdatasetsフィーチャーのドメインモデルを定義します。
package entity

import (
	"time"

	stock "stock_search/internal/feature/stocks/domain/entity"

	"github.com/google/uuid"
)

// Dataset は読み込み済みのCSV1ファイル分のデータです。公開後は変更されません。
type Dataset struct {
	ID       uuid.UUID
	Name     string
	LoadedAt time.Time
	Columns  []string
	Records  []stock.StockRecord
}

// IsEmpty は有効な行が1件もない場合にtrueを返します。
// 解析失敗とは区別され、エラーではありません。
func (d *Dataset) IsEmpty() bool {
	return len(d.Records) == 0
}

// SourceFile は読み込み可能なCSVファイルの情報です。
type SourceFile struct {
	Name         string
	DisplayName  string
	Size         int64
	LastModified time.Time
}
