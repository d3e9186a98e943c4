// Package localdir はローカルディレクトリのCSVファイルを取得元とするアダプターです。
package localdir

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"stock_search/internal/feature/datasets/domain/entity"
	"stock_search/internal/feature/datasets/usecase"
)

var _ usecase.Source = (*Source)(nil)

// ErrInvalidName はディレクトリ外を指すファイル名を拒否したときのエラーです。
var ErrInvalidName = errors.New("localdir: invalid file name")

// Source はディレクトリ直下のCSVファイルを列挙・読み込みします。
type Source struct {
	dir string
	now func() time.Time
}

// NewSource creates a Source rooted at dir.
func NewSource(dir string) *Source {
	return &Source{dir: dir, now: time.Now}
}

// List は直近30日分の日付付きファイル（新しい順）と、それ以外のCSVファイル（名前順）を返します。
// 30日より古い日付付きファイルは含めません。
func (s *Source) List(ctx context.Context) ([]entity.SourceFile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", s.dir, err)
	}

	byName := make(map[string]fs.DirEntry, len(entries))
	others := make([]string, 0)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		byName[e.Name()] = e
		if _, dated := entity.ParseDatedFileName(e.Name()); !dated {
			others = append(others, e.Name())
		}
	}
	sort.Strings(others)

	names := make([]string, 0, len(byName))
	for _, n := range entity.RecentDatedFileNames(s.now(), entity.DatedLookbackDay) {
		if _, ok := byName[n]; ok {
			names = append(names, n)
		}
	}
	names = append(names, others...)

	out := make([]entity.SourceFile, 0, len(names))
	for _, n := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, err := byName[n].Info()
		if err != nil {
			continue
		}
		out = append(out, entity.SourceFile{
			Name:         n,
			DisplayName:  entity.DisplayName(n),
			Size:         info.Size(),
			LastModified: info.ModTime(),
		})
	}
	return out, nil
}

// Fetch はファイルの内容を返します。
func (s *Source) Fetch(ctx context.Context, name string) ([]byte, error) {
	if !entity.ValidFileName(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}
