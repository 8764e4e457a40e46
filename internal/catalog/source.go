// Package catalog 提供商品目录的上游数据源与抓取任务编排。
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MorseWayne/storefront/internal/domain"
)

// Source 定义商品目录数据源接口。
type Source interface {
	// Fetch 拉取完整的商品集合。
	Fetch(ctx context.Context) ([]domain.Product, error)
}

// HTTPSource 通过 HTTP GET 从上游端点拉取商品 JSON 数组。
type HTTPSource struct {
	endpoint string
	client   *http.Client
}

// NewHTTPSource 创建 HTTP 数据源。client 为 nil 时使用 http.DefaultClient：
// 抓取本身不设超时、不做重试，超时与取消语义由调用方通过 ctx 控制。
func NewHTTPSource(endpoint string, client *http.Client) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{endpoint: endpoint, client: client}
}

// Fetch 拉取商品集合。
// 非 2xx 响应映射为 "HTTP error! status: <code>" 形式的错误；
// 传输层与 JSON 解析错误原样透传，错误文本即失败载荷。
func (s *HTTPSource) Fetch(ctx context.Context) ([]domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return nil, err
	}

	res, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP error! status: %d", res.StatusCode)
	}

	var products []domain.Product
	if err := json.NewDecoder(res.Body).Decode(&products); err != nil {
		return nil, err
	}

	return products, nil
}
