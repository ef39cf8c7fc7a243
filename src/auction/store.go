package auction

import "context"

// Snapshot 引擎全量状态
// 启动时由 Store.Load 返回, 用于恢复内存状态
type Snapshot struct {
	MarketplaceFeePct uint64
	CollectionFeePct  map[string]uint64
	Sold              map[AssetRef]bool
	EscrowCredits     map[string]uint64
	ReserveAuctions   map[AssetRef]ReserveAuction
	ScheduledAuctions map[AssetRef]ScheduledAuction
	Bids              map[AssetRef]ActiveBid
}

// Store 引擎状态持久化
// 引擎内存状态为权威, Store 负责 write-through 落库与启动恢复;
// 单条写入失败只记录日志, 不回滚已完成的状态迁移
type Store interface {
	Load(ctx context.Context) (*Snapshot, error)

	SaveMarketplaceFeePct(ctx context.Context, pct uint64) error
	SaveCollectionFeePct(ctx context.Context, collection string, pct uint64) error
	SaveSoldFlags(ctx context.Context, collection string, tokenIDs []string, sold bool) error

	SaveReserveAuction(ctx context.Context, ref AssetRef, rec ReserveAuction) error
	DeleteReserveAuction(ctx context.Context, ref AssetRef) error
	SaveScheduledAuction(ctx context.Context, ref AssetRef, rec ScheduledAuction) error
	DeleteScheduledAuction(ctx context.Context, ref AssetRef) error

	SaveBid(ctx context.Context, ref AssetRef, bid ActiveBid) error
	DeleteBid(ctx context.Context, ref AssetRef) error

	SaveEscrowCredit(ctx context.Context, payee string, balance uint64) error
}

// MemoryStore 纯内存实现, 不做任何持久化
// 用于单元测试和本地模式
type MemoryStore struct{}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Load(context.Context) (*Snapshot, error) { return &Snapshot{}, nil }

func (s *MemoryStore) SaveMarketplaceFeePct(context.Context, uint64) error { return nil }
func (s *MemoryStore) SaveCollectionFeePct(context.Context, string, uint64) error {
	return nil
}
func (s *MemoryStore) SaveSoldFlags(context.Context, string, []string, bool) error {
	return nil
}
func (s *MemoryStore) SaveReserveAuction(context.Context, AssetRef, ReserveAuction) error {
	return nil
}
func (s *MemoryStore) DeleteReserveAuction(context.Context, AssetRef) error { return nil }
func (s *MemoryStore) SaveScheduledAuction(context.Context, AssetRef, ScheduledAuction) error {
	return nil
}
func (s *MemoryStore) DeleteScheduledAuction(context.Context, AssetRef) error { return nil }
func (s *MemoryStore) SaveBid(context.Context, AssetRef, ActiveBid) error     { return nil }
func (s *MemoryStore) DeleteBid(context.Context, AssetRef) error              { return nil }
func (s *MemoryStore) SaveEscrowCredit(context.Context, string, uint64) error { return nil }
