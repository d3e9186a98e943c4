// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DatasetStatus は現在読み込まれているデータセットの名前と件数を返します。未読み込みならokはfalseです。
type DatasetStatus func() (name string, records int, ok bool)

// Health はサービスヘルスチェック用の /healthz ハンドラーを返します。
// データセット未読み込みでもプロセスは稼働しているため200を返し、本文で状態を示します。
func Health(status DatasetStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 明示的にキャッシュを防止
		c.Header("Cache-Control", "no-store")

		switch c.Request.Method {
		case http.MethodHead:
			c.Status(http.StatusOK)
			return
		case http.MethodOptions:
			c.Status(http.StatusNoContent)
			return
		}

		body := gin.H{"status": "ok", "dataset_loaded": false}
		if status != nil {
			if name, records, ok := status(); ok {
				body["dataset_loaded"] = true
				body["dataset"] = name
				body["records"] = records
			}
		}
		c.JSON(http.StatusOK, body)
	}
}
