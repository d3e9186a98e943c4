// Package dto はdatasetsフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"time"

	"stock_search/internal/feature/datasets/domain/entity"
)

// LoadRequest は/v1/datasets/loadのリクエストボディです。
type LoadRequest struct {
	Name string `json:"name" binding:"required"`
}

// SourceFileResponse は読み込み可能なファイル1件です。
type SourceFileResponse struct {
	Name         string     `json:"name"`
	DisplayName  string     `json:"display_name"`
	Size         int64      `json:"size"`
	LastModified *time.Time `json:"last_modified,omitempty"`
}

// DatasetResponse は読み込み済みデータセットの概要です。
type DatasetResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	LoadedAt    time.Time `json:"loaded_at"`
	RecordCount int       `json:"record_count"`
	Columns     []string  `json:"columns"`
	Empty       bool      `json:"empty"`
}

// NewSourceFileResponses はファイル一覧をDTOに変換します。
func NewSourceFileResponses(files []entity.SourceFile) []SourceFileResponse {
	out := make([]SourceFileResponse, 0, len(files))
	for _, f := range files {
		r := SourceFileResponse{Name: f.Name, DisplayName: f.DisplayName, Size: f.Size}
		if !f.LastModified.IsZero() {
			lm := f.LastModified
			r.LastModified = &lm
		}
		out = append(out, r)
	}
	return out
}

// NewDatasetResponse はデータセットをDTOに変換します。
func NewDatasetResponse(ds *entity.Dataset) DatasetResponse {
	return DatasetResponse{
		ID:          ds.ID.String(),
		Name:        ds.Name,
		LoadedAt:    ds.LoadedAt,
		RecordCount: len(ds.Records),
		Columns:     ds.Columns,
		Empty:       ds.IsEmpty(),
	}
}
