// Package usecase implements dataset loading: fetching CSV bytes from a source,
// parsing them, and publishing the result as the current dataset.
package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"stock_search/internal/feature/datasets/domain/entity"
	stock "stock_search/internal/feature/stocks/domain/entity"

	"github.com/google/uuid"
)

// Source はCSVファイルの取得元です（ローカルディレクトリ、HTTPなど）。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type Source interface {
	List(ctx context.Context) ([]entity.SourceFile, error)
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// RecordParser はCSVテキストを銘柄レコードに変換します。
type RecordParser interface {
	Parse(r io.Reader, sourceFile string) (*stock.Table, error)
}

// DatasetUsecase は現在のデータセットを管理します。
// 読み込みが並行した場合は最後に開始された読み込みだけが公開されます。
type DatasetUsecase struct {
	src    Source
	parser RecordParser
	now    func() time.Time

	generation atomic.Uint64
	mu         sync.Mutex // 公開（generationの確認とcurrentの差し替え）を直列化する
	current    atomic.Pointer[entity.Dataset]
}

// NewDatasetUsecase creates a new DatasetUsecase.
func NewDatasetUsecase(src Source, parser RecordParser) *DatasetUsecase {
	return &DatasetUsecase{src: src, parser: parser, now: time.Now}
}

// Sources は取得元にあるCSVファイルの一覧を返します。
func (u *DatasetUsecase) Sources(ctx context.Context) ([]entity.SourceFile, error) {
	files, err := u.src.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrListFailed, err)
	}
	return files, nil
}

// Load は取得元からファイルを読み込み、現在のデータセットとして公開します。
func (u *DatasetUsecase) Load(ctx context.Context, name string) (*entity.Dataset, error) {
	if !entity.ValidFileName(name) {
		return nil, ErrInvalidName
	}
	gen := u.generation.Add(1)

	data, err := u.src.Fetch(ctx, name)
	if err != nil {
		slog.Warn("dataset fetch failed", "name", name, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return u.publish(gen, name, data)
}

// LoadBytes はアップロードされた内容を解析し、現在のデータセットとして公開します。
func (u *DatasetUsecase) LoadBytes(ctx context.Context, name string, data []byte) (*entity.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	gen := u.generation.Add(1)
	return u.publish(gen, name, data)
}

// Current は現在のデータセットを返します。未読み込みならErrNoDatasetです。
func (u *DatasetUsecase) Current() (*entity.Dataset, error) {
	ds := u.current.Load()
	if ds == nil {
		return nil, ErrNoDataset
	}
	return ds, nil
}

func (u *DatasetUsecase) publish(gen uint64, name string, data []byte) (*entity.Dataset, error) {
	table, err := u.parser.Parse(bytes.NewReader(data), name)
	if err != nil {
		slog.Warn("dataset parse failed", "name", name, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrParseFailed, err)
	}

	ds := &entity.Dataset{
		ID:       uuid.New(),
		Name:     name,
		LoadedAt: u.now(),
		Columns:  table.Columns,
		Records:  table.Records,
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	if latest := u.generation.Load(); latest != gen {
		slog.Info("dataset load superseded", "name", name, "generation", gen, "latest", latest)
		return nil, ErrSuperseded
	}
	u.current.Store(ds)

	slog.Info("dataset loaded", "id", ds.ID, "name", name, "records", len(ds.Records), "columns", len(ds.Columns))
	return ds, nil
}
