// Package resp 提供统一的HTTP JSON响应封装与业务码定义。
package resp

import (
	"encoding/json"
	"net/http"
)

// 业务码约定：0 表示成功；4xxxx 对应客户端错误；5xxxx 对应服务端错误。
const (
	CodeOK            = 0
	CodeInvalidParam  = 40001
	CodeNotFound      = 40401
	CodeTooManyReqs   = 42901
	CodeInternalError = 50001
	CodeTimeout       = 50401
)

// Body 为统一响应体。
type Body struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

// HTTPStatusFromCode 将业务码映射为HTTP状态码。
func HTTPStatusFromCode(code int) int {
	switch code {
	case CodeOK:
		return http.StatusOK
	case CodeInvalidParam:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeTooManyReqs:
		return http.StatusTooManyRequests
	case CodeTimeout:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// OK 写出成功响应；message 为空时使用 "ok"。
func OK(w http.ResponseWriter, data any, requestID, message string) {
	if message == "" {
		message = "ok"
	}
	write(w, http.StatusOK, Body{
		Code:      CodeOK,
		Message:   message,
		Data:      data,
		RequestID: requestID,
	})
}

// Error 写出错误响应，httpStatus 与业务码由调用方指定。
func Error(w http.ResponseWriter, httpStatus, code int, message, requestID, detail string) {
	write(w, httpStatus, Body{
		Code:      code,
		Message:   message,
		RequestID: requestID,
		Detail:    detail,
	})
}

func write(w http.ResponseWriter, status int, body Body) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	// 编码失败无法再挽救响应，忽略错误
	_ = json.NewEncoder(w).Encode(body)
}
