// Package state 实现店面应用的状态容器：购物车与商品目录两个状态分片、
// 对应的纯函数 reducer、组合二者的 Store，以及派生可见视图的选择器。
package state

import (
	"strings"

	"github.com/MorseWayne/storefront/internal/domain"
)

// Action 表示一次状态迁移请求，Kind 形如 "<slice>/<operation>"。
// Payload 的具体类型由各 Kind 约定；类型不匹配时 reducer 按无操作处理。
type Action struct {
	Kind    string
	Payload any
}

// 购物车分片的动作类型。
const (
	KindAddToCart        = "cart/addToCart"
	KindRemoveFromCart   = "cart/removeFromCart"
	KindIncreaseQuantity = "cart/increaseQuantity"
	KindDecreaseQuantity = "cart/decreaseQuantity"
	KindClearCart        = "cart/clearCart"
	KindToggleCart       = "cart/toggleCart"
	KindCloseCart        = "cart/closeCart"
)

// 商品目录分片的动作类型。
const (
	KindFetchRequested       = "products/fetchRequested"
	KindFetchSucceeded       = "products/fetchSucceeded"
	KindFetchFailed          = "products/fetchFailed"
	KindSetCurrentPage       = "products/setCurrentPage"
	KindSetItemsPerPage      = "products/setItemsPerPage"
	KindSetSelectedCategory  = "products/setSelectedCategory"
	KindSetSelectedMinPrice  = "products/setSelectedMinPrice"
	KindSetSelectedMaxPrice  = "products/setSelectedMaxPrice"
	KindSetSelectedMinRating = "products/setSelectedMinRating"
	KindSetSelectedMaxRating = "products/setSelectedMaxRating"
	KindSetSearchQuery       = "products/setSearchQuery"
)

// namespace 返回动作所属的分片名（"cart"、"products"），无分隔符时返回全名。
func (a Action) namespace() string {
	if i := strings.IndexByte(a.Kind, '/'); i >= 0 {
		return a.Kind[:i]
	}
	return a.Kind
}

// AddToCart 将商品加入购物车；已存在时数量加一。
func AddToCart(p domain.Product) Action {
	return Action{Kind: KindAddToCart, Payload: p}
}

// RemoveFromCart 整条移除指定商品；不存在时无操作。
func RemoveFromCart(id int64) Action {
	return Action{Kind: KindRemoveFromCart, Payload: id}
}

// IncreaseQuantity 将指定条目数量加一；不存在时无操作。
func IncreaseQuantity(id int64) Action {
	return Action{Kind: KindIncreaseQuantity, Payload: id}
}

// DecreaseQuantity 将指定条目数量减一；数量下限为 1，到达下限或条目不存在时无操作。
func DecreaseQuantity(id int64) Action {
	return Action{Kind: KindDecreaseQuantity, Payload: id}
}

// ClearCart 清空购物车条目与合计，不影响开合状态。
func ClearCart() Action {
	return Action{Kind: KindClearCart}
}

// ToggleCart 翻转购物车侧栏的开合状态。
func ToggleCart() Action {
	return Action{Kind: KindToggleCart}
}

// CloseCart 关闭购物车侧栏，可重复调用。
func CloseCart() Action {
	return Action{Kind: KindCloseCart}
}

// FetchRequested 标记一次目录抓取开始。
func FetchRequested() Action {
	return Action{Kind: KindFetchRequested}
}

// FetchSucceeded 携带抓取到的商品集合结束一次抓取。
func FetchSucceeded(products []domain.Product) Action {
	return Action{Kind: KindFetchSucceeded, Payload: products}
}

// FetchFailed 携带失败原因结束一次抓取。
func FetchFailed(message string) Action {
	return Action{Kind: KindFetchFailed, Payload: message}
}

// SetCurrentPage 直接设置当前页码，不重置任何过滤条件。
func SetCurrentPage(page int) Action {
	return Action{Kind: KindSetCurrentPage, Payload: page}
}

// SetItemsPerPage 设置每页条数并回到第一页。
func SetItemsPerPage(n int) Action {
	return Action{Kind: KindSetItemsPerPage, Payload: n}
}

// SetSelectedCategory 设置分类过滤（"all" 表示不过滤）并回到第一页。
func SetSelectedCategory(category string) Action {
	return Action{Kind: KindSetSelectedCategory, Payload: category}
}

// SetSelectedMinPrice 设置价格过滤下界并回到第一页。
func SetSelectedMinPrice(v float64) Action {
	return Action{Kind: KindSetSelectedMinPrice, Payload: v}
}

// SetSelectedMaxPrice 设置价格过滤上界并回到第一页。
func SetSelectedMaxPrice(v float64) Action {
	return Action{Kind: KindSetSelectedMaxPrice, Payload: v}
}

// SetSelectedMinRating 设置评分过滤下界并回到第一页。
func SetSelectedMinRating(v float64) Action {
	return Action{Kind: KindSetSelectedMinRating, Payload: v}
}

// SetSelectedMaxRating 设置评分过滤上界并回到第一页。
func SetSelectedMaxRating(v float64) Action {
	return Action{Kind: KindSetSelectedMaxRating, Payload: v}
}

// SetSearchQuery 设置标题搜索关键字并回到第一页。
func SetSearchQuery(q string) Action {
	return Action{Kind: KindSetSearchQuery, Payload: q}
}
