// Package router はHTTPルーティングを定義します。
package router

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	datasethandler "stock_search/internal/feature/datasets/transport/handler"
	favoritehandler "stock_search/internal/feature/favorites/transport/handler"
	screenerhandler "stock_search/internal/feature/screener/transport/handler"
	"stock_search/internal/platform/http/handler"
	jwtmw "stock_search/internal/platform/jwt"
)

// Handlers はルーターに登録するハンドラーの集まりです。
type Handlers struct {
	Health    gin.HandlerFunc
	Datasets  *datasethandler.DatasetHandler
	Stocks    *screenerhandler.StockHandler
	Favorites *favoritehandler.FavoriteHandler
}

// EnvKeyCORSOrigins はCORSを許可するオリジン（カンマ区切り）を指定する環境変数です。
// 未設定の場合はすべてのオリジンを許可します。
const EnvKeyCORSOrigins = "CORS_ALLOW_ORIGINS"

// NewRouter builds the gin engine with all routes registered.
func NewRouter(h Handlers) *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(CORSConfig(os.Getenv(EnvKeyCORSOrigins))))
	Register(r, h)
	return r
}

// CORSConfig はオリジン指定からCORS設定を作ります。
// ダウンロード時のファイル名をブラウザから読めるよう、Content-Dispositionを公開します。
func CORSConfig(origins string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	cfg.ExposeHeaders = []string{"Content-Disposition"}

	var list []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			list = append(list, o)
		}
	}
	if len(list) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = list
	}
	return cfg
}

// Register はルートを登録します。テストではgin.New()のエンジンに対して使います。
func Register(r *gin.Engine, h Handlers) {
	// 導通確認用
	health := h.Health
	if health == nil {
		health = handler.Health(nil)
	}
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)

	v1 := r.Group("/v1")

	// データセット（認証不要）
	v1.GET("/datasets", h.Datasets.List)
	v1.POST("/datasets/load", h.Datasets.Load)
	v1.POST("/datasets/upload", h.Datasets.Upload)
	v1.GET("/datasets/current", h.Datasets.Current)

	// 銘柄一覧（トークンがあればお気に入りに印を付ける）
	stocks := v1.Group("/")
	stocks.Use(jwtmw.OptionalAuth())
	{
		stocks.GET("/stocks", h.Stocks.List)
		stocks.GET("/stocks/export", h.Stocks.Export)
		stocks.GET("/stocks/options", h.Stocks.Options)
		stocks.GET("/columns", h.Stocks.Columns)
	}

	// お気に入り（認証必須）
	fav := v1.Group("/favorites")
	fav.Use(jwtmw.AuthRequired())
	{
		fav.GET("", h.Favorites.List)
		fav.PUT("/:code", h.Favorites.Put)
		fav.DELETE("/:code", h.Favorites.Delete)
		fav.POST("/:code/toggle", h.Favorites.Toggle)
	}
}
