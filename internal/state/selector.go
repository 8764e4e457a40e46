package state

import (
	"strings"

	"github.com/MorseWayne/storefront/internal/domain"
)

// 选择器：对状态快照的纯派生计算，无副作用、完全确定。
// 数据集规模很小，每次读取重算即可，不做缓存失效管理。

// Categories 返回分类集合："all" 在首位，其余按商品序列中首次出现的顺序。
func Categories(s CatalogState) []string {
	out := []string{CategoryAll}
	seen := map[string]bool{}
	for i := range s.Items {
		c := s.Items[i].Category
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// matches 判断商品是否通过当前过滤条件。
func matches(s CatalogState, p *domain.Product) bool {
	if s.SelectedCategory != CategoryAll && p.Category != s.SelectedCategory {
		return false
	}
	if p.Price < s.SelectedMinPrice || p.Price > s.SelectedMaxPrice {
		return false
	}
	rate := p.RatingRate()
	if rate < s.SelectedMinRating || rate > s.SelectedMaxRating {
		return false
	}
	if q := strings.TrimSpace(s.SearchQuery); q != "" {
		if !strings.Contains(strings.ToLower(p.Title), strings.ToLower(q)) {
			return false
		}
	}
	return true
}

// FilteredProducts 返回通过过滤条件的商品，保持原序列顺序（稳定过滤）。
func FilteredProducts(s CatalogState) []domain.Product {
	out := make([]domain.Product, 0, len(s.Items))
	for i := range s.Items {
		if matches(s, &s.Items[i]) {
			out = append(out, s.Items[i])
		}
	}
	return out
}

// TotalPages 返回过滤后结果的总页数：ceil(count/perPage)，空结果为 0。
func TotalPages(s CatalogState) int {
	return pageCount(len(FilteredProducts(s)), s.ItemsPerPage)
}

// pageCount 计算 n 条记录按 perPage 分页的页数。
func pageCount(n, perPage int) int {
	if n == 0 || perPage <= 0 {
		return 0
	}
	return (n + perPage - 1) / perPage
}

// VisibleProducts 返回当前页可见的商品子集：
// filtered[(page-1)*perPage : page*perPage]，越界部分截断为空。
// 页码合法性由调用方（页面切换操作）负责，选择器不做拒绝。
func VisibleProducts(s CatalogState) []domain.Product {
	filtered := FilteredProducts(s)
	if s.ItemsPerPage <= 0 {
		return []domain.Product{}
	}
	start := (s.CurrentPage - 1) * s.ItemsPerPage
	if start < 0 || start >= len(filtered) {
		return []domain.Product{}
	}
	end := start + s.ItemsPerPage
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

// CartQuantity 按条目重新累计购物车总数量，供不变量校验与展示使用。
func CartQuantity(s CartState) int64 {
	var total int64
	for i := range s.Items {
		total += s.Items[i].Quantity
	}
	return total
}

// CartAmount 按条目重新累计购物车总金额。
func CartAmount(s CartState) float64 {
	var total float64
	for i := range s.Items {
		total += s.Items[i].Subtotal()
	}
	return total
}
