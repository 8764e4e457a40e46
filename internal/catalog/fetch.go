package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/MorseWayne/storefront/internal/state"
)

// Fetch 执行一次完整的目录抓取生命周期：
// 先派发 fetchRequested，再等待数据源返回，最终恰好派发一个终态动作
// （fetchSucceeded 或 fetchFailed）。不重试、不去重；并发触发的多次抓取
// 各自独立完成，结果按后写覆盖的方式落入共享状态。
func Fetch(ctx context.Context, store *state.Store, source Source, lg *zap.Logger) {
	store.Dispatch(state.FetchRequested())

	products, err := source.Fetch(ctx)
	if err != nil {
		lg.Warn("catalog fetch failed", zap.Error(err))
		store.Dispatch(state.FetchFailed(err.Error()))
		return
	}

	lg.Info("catalog fetch succeeded", zap.Int("count", len(products)))
	store.Dispatch(state.FetchSucceeded(products))
}

// FetchIfIdle 仅当目录尚未抓取过时触发一次抓取。
// 去重是调用方（展示层）的职责而非状态机的保证，与分片语义保持一致。
func FetchIfIdle(ctx context.Context, store *state.Store, source Source, lg *zap.Logger) bool {
	if store.GetState().Catalog.Status != state.StatusIdle {
		return false
	}
	Fetch(ctx, store, source, lg)
	return true
}
