package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"stock_search/internal/app/di"
	"stock_search/internal/app/router"
	datasethandler "stock_search/internal/feature/datasets/transport/handler"
	datasetusecase "stock_search/internal/feature/datasets/usecase"
	favadapters "stock_search/internal/feature/favorites/adapters"
	favoritehandler "stock_search/internal/feature/favorites/transport/handler"
	favoriteusecase "stock_search/internal/feature/favorites/usecase"
	screenerhandler "stock_search/internal/feature/screener/transport/handler"
	screenerusecase "stock_search/internal/feature/screener/usecase"
	"stock_search/internal/feature/stocks/adapters/csvfile"
	infradb "stock_search/internal/platform/db"
	"stock_search/internal/platform/http/handler"
	infraredis "stock_search/internal/platform/redis"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	// db
	db, err := infradb.OpenDB(infradb.LoadConfigFromEnv(), &favadapters.FavoriteModel{})
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(infraredis.LoadConfigFromEnv()); err != nil {
		slog.Warn("Redis unavailable. Running without cache.", "error", err)
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	// CSV取得元（Redisキャッシュでラップ）
	srcCfg := di.LoadSourceConfig()
	src, err := di.NewSource(srcCfg, rdb)
	if err != nil {
		log.Fatalf("invalid CSV source: %v", err)
	}

	// Usecase
	datasetUC := datasetusecase.NewDatasetUsecase(src, csvfile.NewParser())
	screenerUC := screenerusecase.NewScreenerUsecase(datasetUC, csvfile.Encoder{BaseName: csvfile.DefaultExportBaseName})
	favoriteUC := favoriteusecase.NewFavoriteUsecase(di.NewFavoriteRepository(rdb, db))

	loadInitialDataset(datasetUC, srcCfg.DefaultFile)

	// Handler
	h := router.Handlers{
		Health: handler.Health(func() (string, int, bool) {
			ds, err := datasetUC.Current()
			if err != nil {
				return "", 0, false
			}
			return ds.Name, len(ds.Records), true
		}),
		Datasets:  datasethandler.NewDatasetHandler(datasetUC),
		Stocks:    screenerhandler.NewStockHandler(screenerUC).WithFavorites(favoriteUC),
		Favorites: favoritehandler.NewFavoriteHandler(favoriteUC),
	}

	// ルータ生成
	r := router.NewRouter(h)

	// JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv("JWT_SECRET") == "" {
		slog.Warn("JWT_SECRET is not set. Favorites endpoints will reject all requests.")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

// loadInitialDataset は起動時にCSVを読み込みます。name が空なら一覧の先頭（最新の日付ファイル）を使います。
// 失敗してもサーバーは起動し、/v1/datasets/load で後から読み込めます。
func loadInitialDataset(uc *datasetusecase.DatasetUsecase, name string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if name == "" {
		files, err := uc.Sources(ctx)
		if err != nil || len(files) == 0 {
			slog.Warn("no CSV available at startup", "error", err)
			return
		}
		name = files[0].Name
	}
	if _, err := uc.Load(ctx, name); err != nil {
		slog.Warn("initial dataset load failed", "name", name, "error", err)
	}
}
