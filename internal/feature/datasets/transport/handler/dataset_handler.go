// Package handler はdatasetsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"stock_search/internal/api"
	"stock_search/internal/feature/datasets/domain/entity"
	"stock_search/internal/feature/datasets/transport/http/dto"
)

// MaxUploadSize はアップロードできるCSVの上限サイズです。
const MaxUploadSize = 64 << 20

var errUploadTooLarge = errors.New("file too large")

// DatasetUsecase はデータセットの一覧・読み込みのユースケースを定義します。
type DatasetUsecase interface {
	Sources(ctx context.Context) ([]entity.SourceFile, error)
	Load(ctx context.Context, name string) (*entity.Dataset, error)
	LoadBytes(ctx context.Context, name string, data []byte) (*entity.Dataset, error)
	Current() (*entity.Dataset, error)
}

// DatasetHandler はデータセットのHTTPリクエストを処理します。
type DatasetHandler struct {
	uc DatasetUsecase
}

// NewDatasetHandler は新しい DatasetHandler を作成します。
func NewDatasetHandler(uc DatasetUsecase) *DatasetHandler {
	return &DatasetHandler{uc: uc}
}

// List は読み込み可能なCSVファイルの一覧を返します。
func (h *DatasetHandler) List(c *gin.Context) {
	files, err := h.uc.Sources(c.Request.Context())
	if err != nil {
		h.fail(c, "dataset listing failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSourceFileResponses(files))
}

// Load は取得元のファイルを読み込み、現在のデータセットにします。
//
// エンドポイント例:
// POST /v1/datasets/load {"name": "20250307_combined.csv"}
func (h *DatasetHandler) Load(c *gin.Context) {
	var req dto.LoadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("dataset load validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	ds, err := h.uc.Load(c.Request.Context(), req.Name)
	if err != nil {
		h.fail(c, "dataset load failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewDatasetResponse(ds))
}

// Upload はmultipartの"file"フィールドで送られたCSVを読み込みます。
func (h *DatasetHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		slog.Warn("dataset upload without file", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "file is required"})
		return
	}
	data, err := readUpload(fh)
	if err != nil {
		slog.Warn("dataset upload unreadable", "error", err, "file", fh.Filename)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	ds, err := h.uc.LoadBytes(c.Request.Context(), filepath.Base(fh.Filename), data)
	if err != nil {
		h.fail(c, "dataset upload failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewDatasetResponse(ds))
}

// Current は現在のデータセットの概要を返します。
func (h *DatasetHandler) Current(c *gin.Context) {
	ds, err := h.uc.Current()
	if err != nil {
		h.fail(c, "no current dataset", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewDatasetResponse(ds))
}

func (h *DatasetHandler) fail(c *gin.Context, msg string, err error) {
	status, body := api.Status(err)
	if status >= http.StatusInternalServerError {
		slog.Error(msg, "error", err, "path", c.FullPath())
	} else {
		slog.Warn(msg, "error", err, "path", c.FullPath())
	}
	c.JSON(status, body)
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	if fh.Size > MaxUploadSize {
		return nil, errUploadTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, MaxUploadSize))
}
