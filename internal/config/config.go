// Package config 负责从环境变量加载应用配置，支持 .env 文件。
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig 应用基础配置
type AppConfig struct {
	Name            string
	Version         string
	Env             string // dev | prod
	Port            int
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// LogConfig 日志配置
type LogConfig struct {
	Level    string // debug | info | warn | error
	Encoding string // json | console
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// CatalogConfig 商品目录上游配置
type CatalogConfig struct {
	Endpoint        string // 商品端点，返回商品JSON数组
	PrefetchOnStart bool   // 启动时异步预抓取一次
}

// CacheConfig 缓存配置
type CacheConfig struct {
	Enabled bool
	Type    string // redis | memory
	TTL     time.Duration
}

// RedisConfig Redis连接配置
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RateLimitConfig 目录刷新接口的限流配置
type RateLimitConfig struct {
	Enabled bool
	Rate    int64         // 窗口内补充的令牌数
	Burst   int64         // 桶容量
	Window  time.Duration // 补充窗口
}

// Config 汇总应用全部配置。
type Config struct {
	App       AppConfig
	Log       LogConfig
	CORS      CORSConfig
	Catalog   CatalogConfig
	Cache     CacheConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

// Load 加载配置：先尝试读取 .env（不存在则忽略），再读取环境变量。
func Load() (*Config, error) {
	// .env 仅用于本地开发，生产环境直接注入环境变量
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:            getEnv("APP_NAME", "storefront"),
			Version:         getEnv("APP_VERSION", "dev"),
			Env:             getEnv("APP_ENV", "dev"),
			Port:            getEnvInt("APP_PORT", 8080),
			RequestTimeout:  getEnvDuration("APP_REQUEST_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvDuration("APP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Log: LogConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Encoding: getEnv("LOG_ENCODING", "json"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods: getEnvList("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			AllowedHeaders: getEnvList("CORS_ALLOWED_HEADERS", []string{"Content-Type", "X-Request-ID"}),
		},
		Catalog: CatalogConfig{
			Endpoint:        getEnv("CATALOG_ENDPOINT", "https://fakestoreapi.com/products"),
			PrefetchOnStart: getEnvBool("CATALOG_PREFETCH_ON_START", true),
		},
		Cache: CacheConfig{
			Enabled: getEnvBool("CACHE_ENABLED", false),
			Type:    getEnv("CACHE_TYPE", "memory"),
			TTL:     getEnvDuration("CACHE_TTL", 5*time.Minute),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "127.0.0.1"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		RateLimit: RateLimitConfig{
			Enabled: getEnvBool("RATE_LIMIT_ENABLED", true),
			Rate:    int64(getEnvInt("RATE_LIMIT_RATE", 10)),
			Burst:   int64(getEnvInt("RATE_LIMIT_BURST", 10)),
			Window:  getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate 校验配置的基本合法性。
func (c *Config) validate() error {
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("invalid APP_PORT: %d", c.App.Port)
	}
	if c.Catalog.Endpoint == "" {
		return fmt.Errorf("CATALOG_ENDPOINT is required")
	}
	if c.Cache.Enabled && c.Cache.Type != "redis" && c.Cache.Type != "memory" {
		return fmt.Errorf("invalid CACHE_TYPE: %s", c.Cache.Type)
	}
	if c.RateLimit.Enabled && (c.RateLimit.Rate <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate limit rate/burst must be positive")
	}
	return nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return def
}
