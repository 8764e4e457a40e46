package state

import (
	"sync"
)

// State 为购物车与商品目录两个分片组合出的应用状态快照。
// 快照按值传递；reducer 写时复制，内部切片在快照间共享但永不被改写。
type State struct {
	Cart    CartState    `json:"cart"`
	Catalog CatalogState `json:"catalog"`
}

// Listener 在每次 dispatch 应用完成后被同步调用一次。
type Listener func()

// Store 组合两个状态分片，把动作路由到唯一归属的分片 reducer，
// 并在新状态安装后同步通知订阅者。所有迁移经互斥锁串行化，
// 对观察者而言每次迁移都是原子的。
type Store struct {
	mu        sync.Mutex
	state     State
	listeners map[int64]Listener
	nextID    int64
}

// New 创建使用默认初始状态的 Store。
func New() *Store {
	return NewWithState(State{
		Cart:    NewCartState(),
		Catalog: NewCatalogState(),
	})
}

// NewWithState 创建使用指定初始状态的 Store，便于测试注入。
func NewWithState(initial State) *Store {
	return &Store{
		state:     initial,
		listeners: make(map[int64]Listener),
	}
}

// GetState 返回当前组合状态的快照。
func (s *Store) GetState() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch 将动作路由到其命名空间归属的分片并安装新状态。
// 未识别的命名空间或动作类型是无操作而非错误：为向前兼容，
// 未知动作必须被容忍。同步 reducer 执行完毕后立即返回。
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	switch a.namespace() {
	case "cart":
		s.state.Cart = reduceCart(s.state.Cart, a)
	case "products":
		s.state.Catalog = reduceCatalog(s.state.Catalog, a)
	}
	// 通知名单在安装时刻快照：本轮通知中新增的订阅者要等下一次 dispatch
	ids := make([]int64, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	for _, id := range ids {
		s.mu.Lock()
		l, ok := s.listeners[id]
		s.mu.Unlock()
		// 本轮内被取消订阅的回调不再调用
		if ok {
			l()
		}
	}
}

// Subscribe 注册订阅回调，返回对应的取消函数。
// 订阅与取消在任意时刻（包括回调内部）都是安全的。
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}
