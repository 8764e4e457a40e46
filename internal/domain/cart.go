// Package domain 定义购物车相关的业务领域模型。
package domain

// CartItem 表示购物车中的一个条目。
// 约束：同一商品ID在购物车中至多出现一次；Quantity 始终 >= 1。
type CartItem struct {
	ID       int64   `json:"id"` // 引用 Product.ID
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int64   `json:"quantity"`
}

// Subtotal 返回该条目的小计金额。
func (i *CartItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}
