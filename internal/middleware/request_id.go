// Package middleware 提供 HTTP 中间件：请求 ID、恢复、超时、CORS、访问日志。
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const (
	// HeaderRequestID 为请求 ID 使用的头名称。
	HeaderRequestID = "X-Request-ID"
)

// contextKey 用于在上下文中存取特定键，避免与外部键冲突。
type contextKey string

const contextKeyRequestID contextKey = "request_id"

// withRequestID 将请求 ID 写入上下文。
func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKeyRequestID, id)
}

// RequestIDFromContext 从上下文中读取请求 ID（可能为空）。
func RequestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(contextKeyRequestID); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// RequestID 确保每个请求都有请求 ID：
// 优先读取请求头 X-Request-ID，为空时生成 UUID，
// 然后写入响应头与请求上下文。
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get(HeaderRequestID)
		if strings.TrimSpace(rid) == "" {
			rid = uuid.New().String()
		}
		w.Header().Set(HeaderRequestID, rid)
		next.ServeHTTP(w, r.WithContext(withRequestID(r.Context(), rid)))
	})
}
