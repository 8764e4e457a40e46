// Package domain 定义店面相关的业务领域模型。
package domain

// Rating 表示商品评分信息
type Rating struct {
	Rate  float64 `json:"rate"`  // 评分值，范围 [0,5]
	Count int64   `json:"count"` // 评分数量
}

// Product 表示上游目录返回的商品模型。
// 商品数据在抓取成功后只读，本服务不会修改上游字段。
type Product struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      *Rating `json:"rating,omitempty"` // 上游可能缺失评分
}

// RatingRate 返回商品评分值，缺失评分按 0 处理。
func (p *Product) RatingRate() float64 {
	if p.Rating == nil {
		return 0
	}
	return p.Rating.Rate
}
