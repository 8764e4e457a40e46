// Package api 提供商品目录相关的HTTP API处理器实现。
package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/MorseWayne/storefront/internal/catalog"
	"github.com/MorseWayne/storefront/internal/domain"
	"github.com/MorseWayne/storefront/internal/middleware"
	"github.com/MorseWayne/storefront/internal/resp"
	"github.com/MorseWayne/storefront/internal/state"
)

// CatalogHandler 商品目录相关的HTTP处理器
type CatalogHandler struct {
	store  *state.Store
	source catalog.Source
	logger *zap.Logger
}

// NewCatalogHandler 创建目录处理器实例
func NewCatalogHandler(store *state.Store, source catalog.Source, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		store:  store,
		source: source,
		logger: logger,
	}
}

// CatalogView 为目录的派生视图：当前页商品与分页/过滤上下文。
type CatalogView struct {
	Products     []domain.Product    `json:"products"`
	Status       state.CatalogStatus `json:"status"`
	Error        string              `json:"error,omitempty"`
	CurrentPage  int                 `json:"current_page"`
	ItemsPerPage int                 `json:"items_per_page"`
	TotalItems   int                 `json:"total_items"` // 过滤后的总条数
	TotalPages   int                 `json:"total_pages"`
	Categories   []string            `json:"categories"`

	MinPrice          float64 `json:"min_price"`
	MaxPrice          float64 `json:"max_price"`
	MinRating         float64 `json:"min_rating"`
	MaxRating         float64 `json:"max_rating"`
	SelectedCategory  string  `json:"selected_category"`
	SearchQuery       string  `json:"search_query,omitempty"`
	SelectedMinPrice  float64 `json:"selected_min_price"`
	SelectedMaxPrice  float64 `json:"selected_max_price"`
	SelectedMinRating float64 `json:"selected_min_rating"`
	SelectedMaxRating float64 `json:"selected_max_rating"`
}

// buildView 用选择器从目录状态推导可见视图。
func buildView(cs state.CatalogState) *CatalogView {
	return &CatalogView{
		Products:          state.VisibleProducts(cs),
		Status:            cs.Status,
		Error:             cs.Error,
		CurrentPage:       cs.CurrentPage,
		ItemsPerPage:      cs.ItemsPerPage,
		TotalItems:        len(state.FilteredProducts(cs)),
		TotalPages:        state.TotalPages(cs),
		Categories:        state.Categories(cs),
		MinPrice:          cs.MinPrice,
		MaxPrice:          cs.MaxPrice,
		MinRating:         cs.MinRating,
		MaxRating:         cs.MaxRating,
		SelectedCategory:  cs.SelectedCategory,
		SearchQuery:       cs.SearchQuery,
		SelectedMinPrice:  cs.SelectedMinPrice,
		SelectedMaxPrice:  cs.SelectedMaxPrice,
		SelectedMinRating: cs.SelectedMinRating,
		SelectedMaxRating: cs.SelectedMaxRating,
	}
}

// ListProducts 获取当前过滤/分页下的可见商品
// GET /api/v1/products
// 目录尚未抓取过（idle）时同步抓取一次再渲染；loading 状态下不重复触发。
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	catalog.FetchIfIdle(r.Context(), h.store, h.source, h.logger)

	view := buildView(h.store.GetState().Catalog)
	resp.OK(w, view, reqID, "")
}

// Refresh 强制重新抓取目录
// POST /api/v1/catalog/refresh
func (h *CatalogHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	// 去重属于展示层职责：已有抓取在途时跳过本次触发
	if h.store.GetState().Catalog.Status == state.StatusLoading {
		resp.Error(w, http.StatusConflict, resp.CodeInvalidParam, "fetch already in progress", reqID, "")
		return
	}

	// 强制刷新需要绕过缓存回源
	if cs, ok := h.source.(*catalog.CachedSource); ok {
		cs.Invalidate(r.Context())
	}

	catalog.Fetch(r.Context(), h.store, h.source, h.logger)

	cs := h.store.GetState().Catalog
	result := map[string]any{
		"status": cs.Status,
		"count":  len(cs.Items),
	}
	if cs.Error != "" {
		result["error"] = cs.Error
	}
	resp.OK(w, &result, reqID, "")
}

// filtersRequest 过滤条件的部分更新请求；nil 字段保持不变。
type filtersRequest struct {
	Category  *string  `json:"category"`
	MinPrice  *float64 `json:"min_price"`
	MaxPrice  *float64 `json:"max_price"`
	MinRating *float64 `json:"min_rating"`
	MaxRating *float64 `json:"max_rating"`
	Search    *string  `json:"search"`
}

// SetFilters 更新过滤条件
// PUT /api/v1/catalog/filters
// 每个提供的字段派发对应 setter；任何过滤变更都会回到第一页。
func (h *CatalogHandler) SetFilters(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	var req filtersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid request body", reqID, "")
		return
	}

	if req.Category != nil {
		h.store.Dispatch(state.SetSelectedCategory(*req.Category))
	}
	if req.MinPrice != nil {
		h.store.Dispatch(state.SetSelectedMinPrice(*req.MinPrice))
	}
	if req.MaxPrice != nil {
		h.store.Dispatch(state.SetSelectedMaxPrice(*req.MaxPrice))
	}
	if req.MinRating != nil {
		h.store.Dispatch(state.SetSelectedMinRating(*req.MinRating))
	}
	if req.MaxRating != nil {
		h.store.Dispatch(state.SetSelectedMaxRating(*req.MaxRating))
	}
	if req.Search != nil {
		h.store.Dispatch(state.SetSearchQuery(*req.Search))
	}

	view := buildView(h.store.GetState().Catalog)
	resp.OK(w, view, reqID, "")
}

// SetPage 切换当前页
// PUT /api/v1/catalog/page  body: {"page": 2}
// 页码合法性由调用方在此校验：超出 [1, totalPages] 拒绝。
func (h *CatalogHandler) SetPage(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	var req struct {
		Page int `json:"page"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid request body", reqID, "")
		return
	}

	total := state.TotalPages(h.store.GetState().Catalog)
	if req.Page < 1 || req.Page > total {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "page out of range", reqID, "")
		return
	}

	h.store.Dispatch(state.SetCurrentPage(req.Page))

	view := buildView(h.store.GetState().Catalog)
	resp.OK(w, view, reqID, "")
}

// SetPageSize 设置每页条数
// PUT /api/v1/catalog/page-size  body: {"items_per_page": 8}
func (h *CatalogHandler) SetPageSize(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	var req struct {
		ItemsPerPage int `json:"items_per_page"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid request body", reqID, "")
		return
	}

	if req.ItemsPerPage <= 0 {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "items_per_page must be positive", reqID, "")
		return
	}

	h.store.Dispatch(state.SetItemsPerPage(req.ItemsPerPage))

	view := buildView(h.store.GetState().Catalog)
	resp.OK(w, view, reqID, "")
}
