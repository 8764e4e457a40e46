package state

import (
	"math"

	"github.com/MorseWayne/storefront/internal/domain"
)

// CatalogStatus 表示目录抓取生命周期的状态。
type CatalogStatus string

const (
	StatusIdle      CatalogStatus = "idle"      // 尚未发起抓取
	StatusLoading   CatalogStatus = "loading"   // 抓取进行中
	StatusSucceeded CatalogStatus = "succeeded" // 抓取成功，商品与边界已就绪
	StatusFailed    CatalogStatus = "failed"    // 抓取失败，Error 携带原因
)

// CategoryAll 为分类过滤的哨兵值，表示不过滤分类。
const CategoryAll = "all"

// DefaultItemsPerPage 为每页条数的默认值。
const DefaultItemsPerPage = 4

// CatalogState 表示商品目录分片的完整状态：抓取生命周期、
// 过滤/分页参数以及由抓取结果计算出的价格/评分边界。
// SelectedMinPrice <= SelectedMaxPrice 由调用方保证，reducer 不做校验；
// 边界仅在抓取成功时重算，并同时把 Selected* 重置为完整区间。
type CatalogState struct {
	Items  []domain.Product `json:"items"`
	Status CatalogStatus    `json:"status"`
	Error  string           `json:"error,omitempty"` // 为空表示无错误

	CurrentPage  int `json:"current_page"`
	ItemsPerPage int `json:"items_per_page"`

	SelectedCategory string `json:"selected_category"`
	SearchQuery      string `json:"search_query"`

	MinPrice  float64 `json:"min_price"`
	MaxPrice  float64 `json:"max_price"`
	MinRating float64 `json:"min_rating"`
	MaxRating float64 `json:"max_rating"`

	SelectedMinPrice  float64 `json:"selected_min_price"`
	SelectedMaxPrice  float64 `json:"selected_max_price"`
	SelectedMinRating float64 `json:"selected_min_rating"`
	SelectedMaxRating float64 `json:"selected_max_rating"`
}

// NewCatalogState 返回商品目录的初始状态。
func NewCatalogState() CatalogState {
	return CatalogState{
		Items:            []domain.Product{},
		Status:           StatusIdle,
		CurrentPage:      1,
		ItemsPerPage:     DefaultItemsPerPage,
		SelectedCategory: CategoryAll,
	}
}

// reduceCatalog 是商品目录分片的 reducer。
// 过滤与每页条数的任何变更都会把 CurrentPage 重置为 1；
// setCurrentPage 是唯一不带该副作用的 setter。
func reduceCatalog(s CatalogState, a Action) CatalogState {
	switch a.Kind {
	case KindFetchRequested:
		s.Status = StatusLoading
		s.Error = ""
		return s

	case KindFetchSucceeded:
		products, ok := a.Payload.([]domain.Product)
		if !ok {
			return s
		}
		s.Status = StatusSucceeded
		s.Items = products
		// 空结果集上 min/max 无定义，保留原有边界
		if len(products) == 0 {
			return s
		}
		minPrice, maxPrice := products[0].Price, products[0].Price
		minRating, maxRating := products[0].RatingRate(), products[0].RatingRate()
		for i := 1; i < len(products); i++ {
			p := &products[i]
			minPrice = math.Min(minPrice, p.Price)
			maxPrice = math.Max(maxPrice, p.Price)
			minRating = math.Min(minRating, p.RatingRate())
			maxRating = math.Max(maxRating, p.RatingRate())
		}
		s.MinPrice = math.Floor(minPrice)
		s.MaxPrice = math.Ceil(maxPrice)
		s.MinRating = math.Floor(minRating)
		s.MaxRating = math.Ceil(maxRating)
		// 选中区间重置为完整区间，丢弃用户此前选择的范围
		s.SelectedMinPrice = s.MinPrice
		s.SelectedMaxPrice = s.MaxPrice
		s.SelectedMinRating = s.MinRating
		s.SelectedMaxRating = s.MaxRating
		return s

	case KindFetchFailed:
		msg, ok := a.Payload.(string)
		if !ok {
			return s
		}
		s.Status = StatusFailed
		s.Error = msg
		return s

	case KindSetCurrentPage:
		page, ok := a.Payload.(int)
		if !ok {
			return s
		}
		s.CurrentPage = page
		return s

	case KindSetItemsPerPage:
		n, ok := a.Payload.(int)
		if !ok {
			return s
		}
		s.ItemsPerPage = n
		s.CurrentPage = 1
		return s

	case KindSetSelectedCategory:
		category, ok := a.Payload.(string)
		if !ok {
			return s
		}
		s.SelectedCategory = category
		s.CurrentPage = 1
		return s

	case KindSetSelectedMinPrice:
		v, ok := a.Payload.(float64)
		if !ok {
			return s
		}
		s.SelectedMinPrice = v
		s.CurrentPage = 1
		return s

	case KindSetSelectedMaxPrice:
		v, ok := a.Payload.(float64)
		if !ok {
			return s
		}
		s.SelectedMaxPrice = v
		s.CurrentPage = 1
		return s

	case KindSetSelectedMinRating:
		v, ok := a.Payload.(float64)
		if !ok {
			return s
		}
		s.SelectedMinRating = v
		s.CurrentPage = 1
		return s

	case KindSetSelectedMaxRating:
		v, ok := a.Payload.(float64)
		if !ok {
			return s
		}
		s.SelectedMaxRating = v
		s.CurrentPage = 1
		return s

	case KindSetSearchQuery:
		q, ok := a.Payload.(string)
		if !ok {
			return s
		}
		s.SearchQuery = q
		s.CurrentPage = 1
		return s
	}

	return s
}
