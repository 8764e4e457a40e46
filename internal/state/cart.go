package state

import (
	"github.com/MorseWayne/storefront/internal/domain"
)

// CartState 表示购物车分片的完整状态。
// 不变量：TotalQuantity == Σ Items[].Quantity；
// TotalAmount == Σ Items[].Price*Items[].Quantity（浮点误差范围内）。
// 两个合计字段由每次变更增量维护，与 Items 在同一次迁移中更新。
type CartState struct {
	Items         []domain.CartItem `json:"items"` // 保持插入顺序
	TotalQuantity int64             `json:"total_quantity"`
	TotalAmount   float64           `json:"total_amount"`
	IsOpen        bool              `json:"is_open"`
}

// NewCartState 返回购物车的初始状态。
func NewCartState() CartState {
	return CartState{Items: []domain.CartItem{}}
}

// findItem 返回指定商品ID在条目序列中的下标，未找到返回 -1。
func findItem(items []domain.CartItem, id int64) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

// cloneItems 复制条目序列，reducer 以写时复制保证旧快照不被修改。
func cloneItems(items []domain.CartItem) []domain.CartItem {
	out := make([]domain.CartItem, len(items))
	copy(out, items)
	return out
}

// reduceCart 是购物车分片的 reducer：纯函数，针对未知动作或
// 不存在的商品ID退化为无操作，永不失败。
func reduceCart(s CartState, a Action) CartState {
	switch a.Kind {
	case KindAddToCart:
		p, ok := a.Payload.(domain.Product)
		if !ok {
			return s
		}
		items := cloneItems(s.Items)
		if i := findItem(items, p.ID); i >= 0 {
			items[i].Quantity++
		} else {
			items = append(items, domain.CartItem{
				ID:       p.ID,
				Title:    p.Title,
				Price:    p.Price,
				Image:    p.Image,
				Quantity: 1,
			})
		}
		s.Items = items
		s.TotalQuantity++
		s.TotalAmount += p.Price
		return s

	case KindRemoveFromCart:
		id, ok := a.Payload.(int64)
		if !ok {
			return s
		}
		i := findItem(s.Items, id)
		if i < 0 {
			return s
		}
		removed := s.Items[i]
		items := make([]domain.CartItem, 0, len(s.Items)-1)
		items = append(items, s.Items[:i]...)
		items = append(items, s.Items[i+1:]...)
		s.Items = items
		s.TotalQuantity -= removed.Quantity
		s.TotalAmount -= removed.Subtotal()
		return s

	case KindIncreaseQuantity:
		id, ok := a.Payload.(int64)
		if !ok {
			return s
		}
		i := findItem(s.Items, id)
		if i < 0 {
			return s
		}
		items := cloneItems(s.Items)
		items[i].Quantity++
		s.Items = items
		s.TotalQuantity++
		s.TotalAmount += items[i].Price
		return s

	case KindDecreaseQuantity:
		id, ok := a.Payload.(int64)
		if !ok {
			return s
		}
		i := findItem(s.Items, id)
		// 数量下限为 1，降到下限后只能通过 removeFromCart 删除
		if i < 0 || s.Items[i].Quantity <= 1 {
			return s
		}
		items := cloneItems(s.Items)
		items[i].Quantity--
		s.Items = items
		s.TotalQuantity--
		s.TotalAmount -= items[i].Price
		return s

	case KindClearCart:
		s.Items = []domain.CartItem{}
		s.TotalQuantity = 0
		s.TotalAmount = 0
		return s

	case KindToggleCart:
		s.IsOpen = !s.IsOpen
		return s

	case KindCloseCart:
		s.IsOpen = false
		return s
	}

	return s
}
