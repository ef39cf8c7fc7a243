package auction

import (
	"context"

	"go.uber.org/zap"

	"github.com/ProjectsTask/EasySwapAuction/src/pkg/logger/xzap"
)

// DefaultMaxSoldBatch 批量标记已售的默认上限
// 限制单次调用成本, 超限直接拒绝而不是部分执行
const DefaultMaxSoldBatch = 100

// SettingsRegistry 全局费率与已售标记注册表
// 纯状态 + 带校验的 setter, 串行化由上层 Engine 保证
type SettingsRegistry struct {
	marketplaceFeePct uint64
	collectionFeePct  map[string]uint64
	sold              map[AssetRef]bool
	maxSoldBatch      int

	store Store
}

// NewSettingsRegistry 创建注册表
func NewSettingsRegistry(maxSoldBatch int, store Store) *SettingsRegistry {
	if maxSoldBatch <= 0 {
		maxSoldBatch = DefaultMaxSoldBatch
	}
	return &SettingsRegistry{
		collectionFeePct: make(map[string]uint64),
		sold:             make(map[AssetRef]bool),
		maxSoldBatch:     maxSoldBatch,
		store:            store,
	}
}

// SetMarketplaceFeePct 设置全局平台费率
// 要求 pct <= 100, 校验失败时原值保持不变
func (s *SettingsRegistry) SetMarketplaceFeePct(ctx context.Context, pct uint64) error {
	if pct > 100 {
		return ErrPctOutOfRange
	}
	s.marketplaceFeePct = pct
	if err := s.store.SaveMarketplaceFeePct(ctx, pct); err != nil {
		xzap.WithContext(ctx).Error("failed on persist marketplace fee pct", zap.Error(err))
	}
	return nil
}

// SetCollectionFeePct 设置集合的首次销售费率
func (s *SettingsRegistry) SetCollectionFeePct(ctx context.Context, collection string, pct uint64) error {
	if collection == "" {
		return ErrEmptyCollection
	}
	if pct > 100 {
		return ErrPctOutOfRange
	}
	s.collectionFeePct[collection] = pct
	if err := s.store.SaveCollectionFeePct(ctx, collection, pct); err != nil {
		xzap.WithContext(ctx).Error("failed on persist collection fee pct",
			zap.String("collection_addr", collection), zap.Error(err))
	}
	return nil
}

// MarkSold 标记资产是否已完成首次销售
func (s *SettingsRegistry) MarkSold(ctx context.Context, collection, tokenID string, sold bool) error {
	if collection == "" {
		return ErrEmptyCollection
	}
	s.sold[AssetRef{CollectionAddr: collection, TokenID: tokenID}] = sold
	if err := s.store.SaveSoldFlags(ctx, collection, []string{tokenID}, sold); err != nil {
		xzap.WithContext(ctx).Error("failed on persist sold flag",
			zap.String("collection_addr", collection), zap.String("token_id", tokenID), zap.Error(err))
	}
	return nil
}

// MarkManySold 批量标记已售
// 超过批量上限的请求整体拒绝, 不做部分应用
func (s *SettingsRegistry) MarkManySold(ctx context.Context, collection string, tokenIDs []string, sold bool) error {
	if collection == "" {
		return ErrEmptyCollection
	}
	if len(tokenIDs) > s.maxSoldBatch {
		return ErrBatchTooLarge
	}
	for _, tokenID := range tokenIDs {
		s.sold[AssetRef{CollectionAddr: collection, TokenID: tokenID}] = sold
	}
	if err := s.store.SaveSoldFlags(ctx, collection, tokenIDs, sold); err != nil {
		xzap.WithContext(ctx).Error("failed on persist sold flags",
			zap.String("collection_addr", collection), zap.Int("count", len(tokenIDs)), zap.Error(err))
	}
	return nil
}

// MarketplaceFeePct 当前平台费率
func (s *SettingsRegistry) MarketplaceFeePct() uint64 {
	return s.marketplaceFeePct
}

// CollectionFeePct 集合首次销售费率, 未设置时为 0
func (s *SettingsRegistry) CollectionFeePct(collection string) uint64 {
	return s.collectionFeePct[collection]
}

// IsSold 资产是否已完成首次销售
func (s *SettingsRegistry) IsSold(collection, tokenID string) bool {
	return s.sold[AssetRef{CollectionAddr: collection, TokenID: tokenID}]
}

// MaxSoldBatch 批量标记上限
func (s *SettingsRegistry) MaxSoldBatch() int {
	return s.maxSoldBatch
}

// restore 从快照恢复状态
func (s *SettingsRegistry) restore(snap *Snapshot) {
	s.marketplaceFeePct = snap.MarketplaceFeePct
	for collection, pct := range snap.CollectionFeePct {
		s.collectionFeePct[collection] = pct
	}
	for ref, sold := range snap.Sold {
		s.sold[ref] = sold
	}
}
