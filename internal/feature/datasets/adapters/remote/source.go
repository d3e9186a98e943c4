// Package remote はHTTPで公開されたCSVファイルを取得元とするアダプターです。
package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"stock_search/internal/feature/datasets/domain/entity"
	"stock_search/internal/feature/datasets/usecase"
	"stock_search/internal/shared/ratelimiter"

	"golang.org/x/sync/errgroup"
)

var _ usecase.Source = (*Source)(nil)

const (
	defaultConcurrency = 4
	// maxBodyBytes はダウンロードするCSVの上限サイズです。
	maxBodyBytes = 64 << 20
)

var (
	// ErrInvalidName はURLパスとして扱えないファイル名のエラーです。
	ErrInvalidName = errors.New("remote: invalid file name")
	// ErrTooLarge はCSVが上限サイズを超えた場合のエラーです。
	ErrTooLarge = errors.New("remote: response too large")
)

// StatusError は2xx以外の応答を表します。
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote: GET %s: unexpected status %d", e.URL, e.Status)
}

// Source はベースURL配下の "YYYYMMDD_combined.csv" をHEADで探索し、GETで取得します。
type Source struct {
	baseURL     string
	client      *http.Client
	limiter     ratelimiter.RateLimiterInterface
	concurrency int
	now         func() time.Time
}

// NewSource creates a Source. limiter may be nil.
func NewSource(baseURL string, client *http.Client, limiter ratelimiter.RateLimiterInterface) *Source {
	return &Source{
		baseURL:     baseURL,
		client:      client,
		limiter:     limiter,
		concurrency: defaultConcurrency,
		now:         time.Now,
	}
}

// List は直近30日分の日付付きファイルのうち、存在するものを新しい順に返します。
// 個々の確認に失敗したファイルは存在しないものとして扱います。
func (s *Source) List(ctx context.Context) ([]entity.SourceFile, error) {
	names := entity.RecentDatedFileNames(s.now(), entity.DatedLookbackDay)
	found := make([]*entity.SourceFile, len(names))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, name := range names {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			s.wait()
			f, err := s.head(ctx, name)
			if err != nil {
				slog.Debug("csv probe failed", "name", name, "error", err)
				return nil
			}
			found[i] = f
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]entity.SourceFile, 0, len(found))
	for _, f := range found {
		if f != nil {
			out = append(out, *f)
		}
	}
	slog.Info("csv files detected", "base_url", s.baseURL, "count", len(out))
	return out, nil
}

// Fetch はファイルをダウンロードします。
func (s *Source) Fetch(ctx context.Context, name string) ([]byte, error) {
	u, err := s.fileURL(name)
	if err != nil {
		return nil, err
	}
	s.wait()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote: GET %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{URL: u, Status: resp.StatusCode}
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("remote: read %s: %w", u, err)
	}
	if len(data) > maxBodyBytes {
		return nil, ErrTooLarge
	}
	return data, nil
}

func (s *Source) head(ctx context.Context, name string) (*entity.SourceFile, error) {
	u, err := s.fileURL(name)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{URL: u, Status: resp.StatusCode}
	}

	f := &entity.SourceFile{Name: name, DisplayName: entity.DisplayName(name)}
	if n, err := strconv.ParseInt(resp.Header.Get("Content-Length"), 10, 64); err == nil {
		f.Size = n
	}
	if lm, err := http.ParseTime(resp.Header.Get("Last-Modified")); err == nil {
		f.LastModified = lm
	} else {
		f.LastModified = s.now()
	}
	return f, nil
}

func (s *Source) fileURL(name string) (string, error) {
	if !entity.ValidFileName(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return url.JoinPath(s.baseURL, name)
}

func (s *Source) wait() {
	if s.limiter != nil {
		s.limiter.WaitIfNeeded()
	}
}
