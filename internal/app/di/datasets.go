// Package di provides dependency injection factories for creating application components.
package di

import (
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"stock_search/internal/feature/datasets/adapters/localdir"
	"stock_search/internal/feature/datasets/adapters/remote"
	"stock_search/internal/feature/datasets/usecase"
	"stock_search/internal/platform/cache"
	infrahttp "stock_search/internal/platform/http"
	"stock_search/internal/shared/ratelimiter"
)

const (
	SourceLocal  = "local"
	SourceRemote = "remote"
)

// SourceConfig はCSV取得元の設定です。
type SourceConfig struct {
	Kind        string        // local | remote
	Dir         string        // CSV_DIR
	BaseURL     string        // CSV_BASE_URL
	DefaultFile string        // 起動時に読み込むファイル名（CSV_DEFAULT_FILE）
	Timeout     time.Duration // remote の HTTP タイムアウト
	RateLimit   int           // remote の1秒あたりのリクエスト数
}

// LoadSourceConfig loads the CSV source configuration from environment variables.
// CSV_SOURCE が未設定なら、CSV_BASE_URL があればremote、なければlocalです。
func LoadSourceConfig() SourceConfig {
	cfg := SourceConfig{
		Kind:        os.Getenv("CSV_SOURCE"),
		Dir:         os.Getenv("CSV_DIR"),
		BaseURL:     os.Getenv("CSV_BASE_URL"),
		DefaultFile: os.Getenv("CSV_DEFAULT_FILE"),
		Timeout:     30 * time.Second,
		RateLimit:   8,
	}
	if cfg.Kind == "" {
		cfg.Kind = SourceLocal
		if cfg.BaseURL != "" {
			cfg.Kind = SourceRemote
		}
	}
	if cfg.Dir == "" {
		cfg.Dir = "./data"
	}
	return cfg
}

// NewSource creates the configured CSV Source wrapped with the Redis cache.
// rdb が nil の場合キャッシュは無効です。
func NewSource(cfg SourceConfig, rdb *redis.Client) (usecase.Source, error) {
	var inner usecase.Source
	switch cfg.Kind {
	case SourceLocal:
		inner = localdir.NewSource(cfg.Dir)
	case SourceRemote:
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("CSV_BASE_URL is required for %s source", SourceRemote)
		}
		client := infrahttp.NewHTTPClient(cfg.Timeout)
		inner = remote.NewSource(cfg.BaseURL, client, ratelimiter.NewRateLimiter(cfg.RateLimit, time.Second))
	default:
		return nil, fmt.Errorf("unsupported CSV_SOURCE %q", cfg.Kind)
	}
	return cache.NewCachingSource(rdb, 0, inner, "csv:"+cfg.Kind), nil
}
