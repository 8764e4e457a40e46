// Package limiter 限流中间件实现
package limiter

import (
	"fmt"
	"net"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/MorseWayne/storefront/internal/middleware"
	"github.com/MorseWayne/storefront/internal/resp"
)

// clientKey 基于客户端IP生成限流key。
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return fmt.Sprintf("ip:%s", host)
}

// Middleware 对被包裹的处理器做限流；限流器故障时放行（fail-open），
// 保护机制自身不应成为可用性瓶颈。
func Middleware(l Limiter, lg *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := middleware.RequestIDFromContext(r.Context())

			result, err := l.Allow(r.Context(), clientKey(r))
			if err != nil {
				lg.Warn("rate limiter error, allowing request",
					zap.String("request_id", reqID), zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
			if !result.Allowed {
				if result.RetryAfter > 0 {
					w.Header().Set("Retry-After", strconv.FormatInt(int64(result.RetryAfter.Seconds()), 10))
				}
				resp.Error(w, http.StatusTooManyRequests, resp.CodeTooManyReqs, "too many requests", reqID, "")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
