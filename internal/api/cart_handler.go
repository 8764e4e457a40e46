// Package api 提供店面状态容器的HTTP API处理器实现。
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/MorseWayne/storefront/internal/middleware"
	"github.com/MorseWayne/storefront/internal/resp"
	"github.com/MorseWayne/storefront/internal/state"
)

// CartHandler 购物车相关的HTTP处理器。
// 处理器即展示层协作方：读取状态快照渲染响应，把用户手势翻译成动作派发。
type CartHandler struct {
	store  *state.Store
	logger *zap.Logger
}

// NewCartHandler 创建购物车处理器实例
func NewCartHandler(store *state.Store, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		store:  store,
		logger: logger,
	}
}

// GetCart 获取购物车状态
// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	cart := h.store.GetState().Cart
	resp.OK(w, &cart, reqID, "")
}

// AddItem 将商品加入购物车
// POST /api/v1/cart/items  body: {"product_id": 1}
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	var req struct {
		ProductID int64 `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid request body", reqID, "")
		return
	}

	// reducer 对未知ID退化为无操作；对HTTP调用方仍需可见的404，
	// 因此在展示层用目录状态校验商品存在性
	snapshot := h.store.GetState()
	var found bool
	for i := range snapshot.Catalog.Items {
		if snapshot.Catalog.Items[i].ID == req.ProductID {
			h.store.Dispatch(state.AddToCart(snapshot.Catalog.Items[i]))
			found = true
			break
		}
	}
	if !found {
		resp.Error(w, http.StatusNotFound, resp.CodeNotFound, "product not found", reqID, "")
		return
	}

	cart := h.store.GetState().Cart
	resp.OK(w, &cart, reqID, "")
}

// RemoveItem 整条移除购物车条目
// DELETE /api/v1/cart/items/{id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.dispatchByID(w, r, state.RemoveFromCart)
}

// IncreaseItem 条目数量加一
// POST /api/v1/cart/items/{id}/increase
func (h *CartHandler) IncreaseItem(w http.ResponseWriter, r *http.Request) {
	h.dispatchByID(w, r, state.IncreaseQuantity)
}

// DecreaseItem 条目数量减一（下限为1，到达下限后为无操作）
// POST /api/v1/cart/items/{id}/decrease
func (h *CartHandler) DecreaseItem(w http.ResponseWriter, r *http.Request) {
	h.dispatchByID(w, r, state.DecreaseQuantity)
}

// dispatchByID 从URL路径提取条目ID并派发对应动作，返回最新购物车状态。
func (h *CartHandler) dispatchByID(w http.ResponseWriter, r *http.Request, action func(int64) state.Action) {
	reqID := middleware.RequestIDFromContext(r.Context())

	id, err := itemIDFromPath(r.URL.Path)
	if err != nil {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid item ID", reqID, "")
		return
	}

	h.store.Dispatch(action(id))

	cart := h.store.GetState().Cart
	resp.OK(w, &cart, reqID, "")
}

// itemIDFromPath 解析 /api/v1/cart/items/{id}[/suffix] 形式的路径。
func itemIDFromPath(path string) (int64, error) {
	parts := strings.Split(path, "/")
	if len(parts) < 6 {
		return 0, fmt.Errorf("invalid path: %s", path)
	}
	return strconv.ParseInt(parts[5], 10, 64)
}

// ClearCart 清空购物车
// DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	h.store.Dispatch(state.ClearCart())
	cart := h.store.GetState().Cart
	resp.OK(w, &cart, reqID, "")
}

// ToggleCart 翻转购物车侧栏开合状态
// POST /api/v1/cart/toggle
func (h *CartHandler) ToggleCart(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	h.store.Dispatch(state.ToggleCart())
	cart := h.store.GetState().Cart
	resp.OK(w, &cart, reqID, "")
}

// CloseCart 关闭购物车侧栏（幂等）
// POST /api/v1/cart/close
func (h *CartHandler) CloseCart(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	h.store.Dispatch(state.CloseCart())
	cart := h.store.GetState().Cart
	resp.OK(w, &cart, reqID, "")
}

// Checkout 结算：回显合计后清空并关闭购物车。
// 不接入任何支付流程，仅作为确认动作存在。
// POST /api/v1/cart/checkout
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	cart := h.store.GetState().Cart
	if len(cart.Items) == 0 {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "cart is empty", reqID, "")
		return
	}

	result := map[string]any{
		"total_quantity": cart.TotalQuantity,
		"total_amount":   cart.TotalAmount,
	}

	h.store.Dispatch(state.ClearCart())
	h.store.Dispatch(state.CloseCart())

	h.logger.Info("checkout completed",
		zap.String("request_id", reqID),
		zap.Int64("total_quantity", cart.TotalQuantity),
		zap.Float64("total_amount", cart.TotalAmount),
	)

	resp.OK(w, &result, reqID, "thank you for your purchase")
}
