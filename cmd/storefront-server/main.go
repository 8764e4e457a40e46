package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/MorseWayne/storefront/internal/api"
	"github.com/MorseWayne/storefront/internal/cache"
	"github.com/MorseWayne/storefront/internal/catalog"
	"github.com/MorseWayne/storefront/internal/config"
	"github.com/MorseWayne/storefront/internal/limiter"
	"github.com/MorseWayne/storefront/internal/logger"
	mw "github.com/MorseWayne/storefront/internal/middleware"
	"github.com/MorseWayne/storefront/internal/resp"
	"github.com/MorseWayne/storefront/internal/state"
)

// AppDependencies 包含应用的所有依赖
type AppDependencies struct {
	Store          *state.Store
	CartHandler    *api.CartHandler
	CatalogHandler *api.CatalogHandler
	RefreshLimiter limiter.Limiter
}

// initConfigAndLogger 初始化配置和日志器
func initConfigAndLogger() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %v", err)
	}

	// init logger
	lg, err := logger.New(cfg.App.Env, cfg.Log.Level, cfg.Log.Encoding, cfg.App.Name, cfg.App.Version)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %v", err)
	}

	return cfg, lg, nil
}

// initCache 初始化缓存实例
func initCache(cfg *config.Config, lg *zap.Logger) cache.Cache {
	var cacheInstance cache.Cache
	if cfg.Cache.Enabled {
		switch cfg.Cache.Type {
		case "redis":
			redisAddr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
			redisCache, err := cache.NewRedisCache(redisAddr, cfg.Redis.Password, cfg.Redis.DB)
			if err != nil {
				lg.Sugar().Warnw("failed to connect to Redis, falling back to memory cache", "error", err)
				cacheInstance = cache.NewMemoryCache()
				lg.Sugar().Infow("cache enabled", "type", "memory (fallback)", "ttl", cfg.Cache.TTL)
			} else {
				cacheInstance = redisCache
				lg.Sugar().Infow("cache enabled", "type", "redis", "addr", redisAddr, "ttl", cfg.Cache.TTL)
			}
		case "memory":
			cacheInstance = cache.NewMemoryCache()
			lg.Sugar().Infow("cache enabled", "type", "memory", "ttl", cfg.Cache.TTL)
		default:
			lg.Sugar().Warnw("unknown cache type, using memory cache", "type", cfg.Cache.Type)
			cacheInstance = cache.NewMemoryCache()
		}
	} else {
		cacheInstance = cache.NewNullCache()
		lg.Sugar().Infow("cache disabled")
	}
	return cacheInstance
}

// initRefreshLimiter 初始化目录刷新接口的限流器。
// 缓存走Redis时复用其连接做分布式令牌桶，否则退化为内存令牌桶。
func initRefreshLimiter(cfg *config.Config, cacheInstance cache.Cache, lg *zap.Logger) limiter.Limiter {
	if !cfg.RateLimit.Enabled {
		return nil
	}

	lcfg := &limiter.Config{
		Rate:   cfg.RateLimit.Rate,
		Burst:  cfg.RateLimit.Burst,
		Window: cfg.RateLimit.Window,
	}

	if rc, ok := cacheInstance.(*cache.RedisCache); ok {
		l, err := limiter.NewTokenBucketLimiter(rc.Client(), lcfg)
		if err == nil {
			lg.Sugar().Infow("rate limit enabled", "backend", "redis",
				"rate", lcfg.Rate, "burst", lcfg.Burst, "window", lcfg.Window)
			return l
		}
		lg.Sugar().Warnw("failed to init redis limiter, falling back to memory", "error", err)
	}

	lg.Sugar().Infow("rate limit enabled", "backend", "memory",
		"rate", lcfg.Rate, "burst", lcfg.Burst, "window", lcfg.Window)
	return limiter.NewMemoryBucketLimiter(lcfg)
}

// initDependencies 初始化应用依赖（数据源 -> 状态容器 -> API处理器）
func initDependencies(cfg *config.Config, cacheInstance cache.Cache, lg *zap.Logger) *AppDependencies {
	// 目录数据源，可选缓存装饰器
	var source catalog.Source = catalog.NewHTTPSource(cfg.Catalog.Endpoint, nil)
	if cfg.Cache.Enabled {
		source = catalog.NewCachedSource(source, cacheInstance, cfg.Cache.TTL)
	}

	// 状态容器：购物车与商品目录两个分片的组合
	store := state.New()

	cartHandler := api.NewCartHandler(store, lg)
	catalogHandler := api.NewCatalogHandler(store, source, lg)

	// 状态变更审计日志（订阅者在每次 dispatch 后同步触发）
	store.Subscribe(func() {
		s := store.GetState()
		lg.Debug("state changed",
			zap.String("catalog_status", string(s.Catalog.Status)),
			zap.Int64("cart_quantity", s.Cart.TotalQuantity),
		)
	})

	// 展示层契约：启动时触发一次 fetch-if-idle
	if cfg.Catalog.PrefetchOnStart {
		go catalog.FetchIfIdle(context.Background(), store, source, lg)
	}

	return &AppDependencies{
		Store:          store,
		CartHandler:    cartHandler,
		CatalogHandler: catalogHandler,
		RefreshLimiter: initRefreshLimiter(cfg, cacheInstance, lg),
	}
}

// setupRoutes 设置路由和中间件
func setupRoutes(cfg *config.Config, deps *AppDependencies, lg *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	// 健康检查端点
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		reqID := mw.RequestIDFromContext(r.Context())
		data := map[string]any{
			"status":  "ok",
			"version": cfg.App.Version,
		}
		resp.OK(w, &data, reqID, "")
	})

	// 商品目录
	mux.HandleFunc("/api/v1/products", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			deps.CatalogHandler.ListProducts(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// 目录刷新（限流）
	var refresh http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			deps.CatalogHandler.Refresh(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	if deps.RefreshLimiter != nil {
		refresh = limiter.Middleware(deps.RefreshLimiter, lg)(refresh)
	}
	mux.Handle("/api/v1/catalog/refresh", refresh)

	// 过滤与分页参数
	mux.HandleFunc("/api/v1/catalog/filters", requirePut(deps.CatalogHandler.SetFilters))
	mux.HandleFunc("/api/v1/catalog/page", requirePut(deps.CatalogHandler.SetPage))
	mux.HandleFunc("/api/v1/catalog/page-size", requirePut(deps.CatalogHandler.SetPageSize))

	// 购物车
	mux.HandleFunc("/api/v1/cart", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			deps.CartHandler.GetCart(w, r)
		case http.MethodDelete:
			deps.CartHandler.ClearCart(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/api/v1/cart/items", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			deps.CartHandler.AddItem(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/api/v1/cart/items/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/increase") && r.Method == http.MethodPost {
			deps.CartHandler.IncreaseItem(w, r)
		} else if strings.HasSuffix(r.URL.Path, "/decrease") && r.Method == http.MethodPost {
			deps.CartHandler.DecreaseItem(w, r)
		} else if r.Method == http.MethodDelete {
			deps.CartHandler.RemoveItem(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/api/v1/cart/toggle", requirePost(deps.CartHandler.ToggleCart))
	mux.HandleFunc("/api/v1/cart/close", requirePost(deps.CartHandler.CloseCart))
	mux.HandleFunc("/api/v1/cart/checkout", requirePost(deps.CartHandler.Checkout))

	// 构建中间件链：请求进入时执行顺序为 access log → CORS → timeout → recovery → request ID
	handler := mw.RequestID(mux)
	handler = mw.Recovery(lg)(handler)
	handler = mw.Timeout(cfg.App.RequestTimeout)(handler)
	handler = mw.CORS(mw.CORSConfig{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: cfg.CORS.AllowedMethods,
		AllowedHeaders: cfg.CORS.AllowedHeaders,
	})(handler)
	handler = mw.AccessLog(lg)(handler)

	return handler
}

// requirePost 仅放行 POST 请求
func requirePost(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}

// requirePut 仅放行 PUT 请求
func requirePut(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}

// startServer 启动服务器并处理优雅关闭
func startServer(cfg *config.Config, handler http.Handler, lg *zap.Logger) {
	addr := fmt.Sprintf(":%d", cfg.App.Port)
	lg.Sugar().Infow("server starting", "addr", addr)
	srv := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 5 * time.Second}

	// 启动服务器（异步）
	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- srv.ListenAndServe()
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	select {
	case err := <-serverErrCh:
		if err != nil && err != http.ErrServerClosed {
			lg.Sugar().Fatalw("server error", "err", err)
		}
	case <-quit:
		lg.Sugar().Infow("shutdown signal received")
	}

	// 优雅关闭
	ctx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		lg.Sugar().Errorw("server shutdown error", "err", err)
	}
	lg.Sugar().Infow("server exited")
}

// main 为应用入口，协调各个组件的初始化和启动
func main() {
	// 1) 加载配置和初始化日志
	cfg, lg, err := initConfigAndLogger()
	if err != nil {
		log.Fatalf("failed to initialize config and logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	// 2) 初始化缓存
	cacheInstance := initCache(cfg, lg)
	defer func() { _ = cacheInstance.Close() }()

	// 3) 初始化依赖（数据源、状态容器、处理器、限流器）
	deps := initDependencies(cfg, cacheInstance, lg)

	// 4) 路由与中间件
	handler := setupRoutes(cfg, deps, lg)

	// 5) 启动并等待退出
	startServer(cfg, handler, lg)
}
