package auction

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ProjectsTask/EasySwapAuction/src/pkg/logger/xzap"
)

// Config 引擎配置
type Config struct {
	// EngineAccount 引擎在托管方的账户地址, 定时拍卖创建时资产转入该账户
	EngineAccount string
	// MarketplaceRecipient 平台费接收地址
	MarketplaceRecipient string
	// MaxSoldBatch 批量标记已售的单次上限
	MaxSoldBatch int
}

// Deps 引擎外部依赖
type Deps struct {
	Custody  CustodyProvider
	Royalty  RoyaltyProvider
	Rail     ValueRail
	Height   HeightSource
	Admin    AdminChecker
	Notifier Notifier
	Store    Store
}

// Engine 拍卖状态机
// 持有全部可变状态的唯一协调者: 所有对外操作都在同一把互斥锁下串行执行,
// 操作要么完整生效, 要么在任何状态变更前被拒绝
type Engine struct {
	mu  sync.Mutex
	cfg Config

	custody  CustodyProvider
	height   HeightSource
	admin    AdminChecker
	notifier Notifier
	store    Store

	settings *SettingsRegistry
	payments *PaymentDispatcher
	fees     *FeeCalculator
	bids     *BidLedger

	reserve   map[AssetRef]ReserveAuction
	scheduled map[AssetRef]ScheduledAuction
}

// New 创建引擎并从 Store 恢复状态
func New(ctx context.Context, cfg Config, deps Deps) (*Engine, error) {
	if deps.Notifier == nil {
		deps.Notifier = NopNotifier{}
	}
	if deps.Store == nil {
		deps.Store = NewMemoryStore()
	}

	settings := NewSettingsRegistry(cfg.MaxSoldBatch, deps.Store)
	payments := NewPaymentDispatcher(deps.Rail, deps.Store)

	e := &Engine{
		cfg:       cfg,
		custody:   deps.Custody,
		height:    deps.Height,
		admin:     deps.Admin,
		notifier:  deps.Notifier,
		store:     deps.Store,
		settings:  settings,
		payments:  payments,
		fees:      NewFeeCalculator(settings, deps.Royalty, cfg.MarketplaceRecipient),
		bids:      NewBidLedger(payments, deps.Store),
		reserve:   make(map[AssetRef]ReserveAuction),
		scheduled: make(map[AssetRef]ScheduledAuction),
	}

	snap, err := deps.Store.Load(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed on load engine state")
	}
	e.restore(snap)

	return e, nil
}

// restore 从快照恢复各组件状态
func (e *Engine) restore(snap *Snapshot) {
	if snap == nil {
		return
	}
	e.settings.restore(snap)
	e.payments.restore(snap)
	e.bids.restore(snap)
	for ref, rec := range snap.ReserveAuctions {
		e.reserve[ref] = rec
	}
	for ref, rec := range snap.ScheduledAuctions {
		e.scheduled[ref] = rec
	}
}

// ---------------------------------------------------------------------------
// 管理操作 (需要管理员能力)
// ---------------------------------------------------------------------------

// SetMarketplaceFeePct 设置全局平台费率
func (e *Engine) SetMarketplaceFeePct(ctx context.Context, caller string, pct uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.admin.IsAdministrator(caller) {
		return ErrNotAdmin
	}
	return e.settings.SetMarketplaceFeePct(ctx, pct)
}

// SetCollectionFeePct 设置集合首次销售费率
func (e *Engine) SetCollectionFeePct(ctx context.Context, caller, collection string, pct uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.admin.IsAdministrator(caller) {
		return ErrNotAdmin
	}
	return e.settings.SetCollectionFeePct(ctx, collection, pct)
}

// MarkSold 管理员标记资产已售状态
func (e *Engine) MarkSold(ctx context.Context, caller, collection, tokenID string, sold bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.admin.IsAdministrator(caller) {
		return ErrNotAdmin
	}
	return e.settings.MarkSold(ctx, collection, tokenID, sold)
}

// MarkManySold 管理员批量标记已售状态
func (e *Engine) MarkManySold(ctx context.Context, caller, collection string, tokenIDs []string, sold bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.admin.IsAdministrator(caller) {
		return ErrNotAdmin
	}
	return e.settings.MarkManySold(ctx, collection, tokenIDs, sold)
}

// ---------------------------------------------------------------------------
// 查询操作 (纯读)
// ---------------------------------------------------------------------------

// MarketplaceFeePct 当前平台费率
func (e *Engine) MarketplaceFeePct() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings.MarketplaceFeePct()
}

// CollectionFeePct 集合首次销售费率
func (e *Engine) CollectionFeePct(collection string) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings.CollectionFeePct(collection)
}

// IsSold 资产是否已完成首次销售
func (e *Engine) IsSold(collection, tokenID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings.IsSold(collection, tokenID)
}

// EscrowBalance 查询托管余额
func (e *Engine) EscrowBalance(payee string) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.payments.Balance(payee)
}

// AuctionDetails 查询拍卖详情
// 不存在拍卖时返回零值记录; 无中间状态可见 (读也在锁内完成)
func (e *Engine) AuctionDetails(collection, tokenID string) Details {
	e.mu.Lock()
	defer e.mu.Unlock()

	ref := AssetRef{CollectionAddr: collection, TokenID: tokenID}
	details := Details{Sold: e.settings.IsSold(collection, tokenID)}

	if rec, ok := e.reserve[ref]; ok {
		details.Kind = AuctionKindReserve
		details.Creator = rec.Creator
		details.Length = rec.Length
		details.StartedAtHeight = rec.StartedAtHeight
		details.ReservePrice = rec.ReservePrice
	} else if rec, ok := e.scheduled[ref]; ok {
		details.Kind = AuctionKindScheduled
		details.Creator = rec.Creator
		details.Length = rec.Length
		details.StartingHeight = rec.StartingHeight
		details.MinimumBid = rec.MinimumBid
	}

	if bid := e.bids.Get(ref); bid.Bidder != "" {
		details.Bidder = bid.Bidder
		details.BidAmount = bid.Amount
		details.FeePctSnapshot = bid.FeePctSnapshot
	}

	return details
}

// ---------------------------------------------------------------------------
// 拍卖生命周期
// ---------------------------------------------------------------------------

// CreateReserveAuction 创建保留价拍卖
// 前置条件: 调用者持有资产并已授权引擎转移, 该资产上不存在任何拍卖, length > 0
func (e *Engine) CreateReserveAuction(ctx context.Context, caller, collection, tokenID string, reservePrice, length uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if length == 0 {
		return ErrInvalidLength
	}
	ref := AssetRef{CollectionAddr: collection, TokenID: tokenID}
	if err := e.requireNoAuction(ref); err != nil {
		return err
	}
	if err := e.requireOwnedAndApproved(ctx, caller, collection, tokenID); err != nil {
		return err
	}

	rec := ReserveAuction{
		Creator:      caller,
		Length:       length,
		ReservePrice: reservePrice,
	}
	e.reserve[ref] = rec
	if err := e.store.SaveReserveAuction(ctx, ref, rec); err != nil {
		xzap.WithContext(ctx).Error("failed on persist reserve auction",
			zap.String("collection_addr", collection), zap.String("token_id", tokenID), zap.Error(err))
	}

	e.notifier.Notify(Event{
		Kind:           EventReserveAuctionCreated,
		CollectionAddr: collection,
		TokenID:        tokenID,
		Creator:        caller,
		ReservePrice:   reservePrice,
		Length:         length,
	})
	return nil
}

// CancelReserveAuction 取消尚未开始的保留价拍卖
// 仅创建者可取消; 若存在未触发开始的出价 (防御路径), 一并退还
func (e *Engine) CancelReserveAuction(ctx context.Context, caller, collection, tokenID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ref := AssetRef{CollectionAddr: collection, TokenID: tokenID}
	rec, ok := e.reserve[ref]
	if !ok {
		return ErrAuctionNotFound
	}
	if rec.StartedAtHeight != 0 {
		return ErrAuctionStarted
	}
	if rec.Creator != caller {
		return ErrNotCreator
	}

	if err := e.bids.refundAndClear(ctx, ref); err != nil {
		return err
	}
	e.deleteReserve(ctx, ref)

	e.notifier.Notify(Event{
		Kind:           EventReserveAuctionCancelled,
		CollectionAddr: collection,
		TokenID:        tokenID,
		Creator:        rec.Creator,
		ReservePrice:   rec.ReservePrice,
		Length:         rec.Length,
	})
	return nil
}

// CreateScheduledAuction 创建定时拍卖
// 开始高度必须严格在未来; 资产在创建时即转入引擎托管账户,
// 托管转移失败则整个操作失败且无任何状态变更
func (e *Engine) CreateScheduledAuction(ctx context.Context, caller, collection, tokenID string, minimumBid, length, startingHeight uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if length == 0 {
		return ErrInvalidLength
	}
	current, err := e.currentHeight(ctx)
	if err != nil {
		return err
	}
	if startingHeight <= current {
		return ErrStartNotFuture
	}
	ref := AssetRef{CollectionAddr: collection, TokenID: tokenID}
	if err := e.requireNoAuction(ref); err != nil {
		return err
	}
	if err := e.requireOwnedAndApproved(ctx, caller, collection, tokenID); err != nil {
		return err
	}

	// 先完成托管转移, 再写入任何状态
	if err := e.custody.TransferFrom(ctx, caller, e.cfg.EngineAccount, collection, tokenID); err != nil {
		return errors.Wrap(err, "failed on escrow asset to engine")
	}

	rec := ScheduledAuction{
		Creator:        caller,
		Length:         length,
		StartingHeight: startingHeight,
		MinimumBid:     minimumBid,
	}
	e.scheduled[ref] = rec
	if err := e.store.SaveScheduledAuction(ctx, ref, rec); err != nil {
		xzap.WithContext(ctx).Error("failed on persist scheduled auction",
			zap.String("collection_addr", collection), zap.String("token_id", tokenID), zap.Error(err))
	}

	e.notifier.Notify(Event{
		Kind:           EventScheduledAuctionCreated,
		CollectionAddr: collection,
		TokenID:        tokenID,
		Creator:        caller,
		StartingHeight: startingHeight,
		MinimumBid:     minimumBid,
		Length:         length,
	})
	return nil
}

// PlaceBid 出价
// 保留价拍卖: 未开始时低于保留价的出价直接拒绝,
// 达到保留价的出价被接受并使拍卖进入 Started 状态;
// 定时拍卖: 仅在 [startingHeight, startingHeight+length) 区间接受出价
func (e *Engine) PlaceBid(ctx context.Context, caller, collection, tokenID string, amount uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ref := AssetRef{CollectionAddr: collection, TokenID: tokenID}
	feePct := e.settings.MarketplaceFeePct()

	if rec, ok := e.reserve[ref]; ok {
		if rec.StartedAtHeight == 0 {
			// 未开始: 只有达到保留价的出价才会被接受并触发开始
			if amount < rec.ReservePrice {
				return ErrBelowReserve
			}
			current, err := e.currentHeight(ctx)
			if err != nil {
				return err
			}
			if err := e.bids.PlaceBid(ctx, ref, rec.Creator, caller, amount, feePct); err != nil {
				return err
			}

			rec.StartedAtHeight = current
			e.reserve[ref] = rec
			if err := e.store.SaveReserveAuction(ctx, ref, rec); err != nil {
				xzap.WithContext(ctx).Error("failed on persist reserve auction",
					zap.String("collection_addr", collection), zap.String("token_id", tokenID), zap.Error(err))
			}

			e.notifyBidPlaced(ref, caller, amount)
			e.notifier.Notify(Event{
				Kind:            EventAuctionStarted,
				CollectionAddr:  collection,
				TokenID:         tokenID,
				Creator:         rec.Creator,
				StartedAtHeight: current,
			})
			return nil
		}

		if err := e.bids.PlaceBid(ctx, ref, rec.Creator, caller, amount, feePct); err != nil {
			return err
		}
		e.notifyBidPlaced(ref, caller, amount)
		return nil
	}

	if rec, ok := e.scheduled[ref]; ok {
		current, err := e.currentHeight(ctx)
		if err != nil {
			return err
		}
		if current < rec.StartingHeight || current >= rec.StartingHeight+rec.Length {
			return ErrBiddingNotOpen
		}
		if amount < rec.MinimumBid {
			return ErrBelowMinimum
		}
		if err := e.bids.PlaceBid(ctx, ref, rec.Creator, caller, amount, feePct); err != nil {
			return err
		}
		e.notifyBidPlaced(ref, caller, amount)
		return nil
	}

	return ErrAuctionNotFound
}

// CancelBid 出价人撤回出价
// 仅在保留价拍卖尚未开始时允许 (开始后的出价只能被更高出价顶替)
func (e *Engine) CancelBid(ctx context.Context, caller, collection, tokenID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ref := AssetRef{CollectionAddr: collection, TokenID: tokenID}
	rec, ok := e.reserve[ref]
	if !ok {
		return ErrAuctionNotFound
	}
	if rec.StartedAtHeight != 0 {
		return ErrAuctionStarted
	}

	bid, err := e.bids.WithdrawBid(ctx, ref, caller)
	if err != nil {
		return err
	}

	e.notifier.Notify(Event{
		Kind:           EventBidCancelled,
		CollectionAddr: collection,
		TokenID:        tokenID,
		Bidder:         bid.Bidder,
		Amount:         bid.Amount,
	})
	return nil
}

// SettleAuction 结算拍卖
// 要求拍卖已开始且时长已届满; 结算对该 AssetRef 是终态操作:
// 资产转移给最高出价人, 成交金额按快照费率分账, 资产标记为已售, 拍卖记录清除
func (e *Engine) SettleAuction(ctx context.Context, caller, collection, tokenID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ref := AssetRef{CollectionAddr: collection, TokenID: tokenID}

	if rec, ok := e.reserve[ref]; ok {
		if rec.StartedAtHeight == 0 {
			return ErrAuctionNotStarted
		}
		current, err := e.currentHeight(ctx)
		if err != nil {
			return err
		}
		if current < rec.StartedAtHeight+rec.Length {
			return ErrAuctionNotEnded
		}
		// 保留价拍卖开始即意味着存在有效出价, 资产仍在创建者手中
		return e.settle(ctx, ref, rec.Creator, rec.Creator, func() { e.deleteReserve(ctx, ref) })
	}

	if rec, ok := e.scheduled[ref]; ok {
		current, err := e.currentHeight(ctx)
		if err != nil {
			return err
		}
		if current < rec.StartingHeight+rec.Length {
			return ErrAuctionNotEnded
		}

		if e.bids.Get(ref).Bidder == "" {
			// 流拍: 资产退还创建者, 不产生销售
			if err := e.custody.TransferFrom(ctx, e.cfg.EngineAccount, rec.Creator, collection, tokenID); err != nil {
				return errors.Wrap(err, "failed on return asset to creator")
			}
			e.deleteScheduled(ctx, ref)
			e.notifier.Notify(Event{
				Kind:           EventAuctionSettled,
				CollectionAddr: collection,
				TokenID:        tokenID,
				Creator:        rec.Creator,
			})
			return nil
		}
		// 定时拍卖的资产托管在引擎账户, 成交款仍归创建者
		return e.settle(ctx, ref, e.cfg.EngineAccount, rec.Creator, func() { e.deleteScheduled(ctx, ref) })
	}

	return ErrAuctionNotFound
}

// settle 公共结算路径
// assetHolder 为当前持有资产的账户, seller 为收款的卖家
func (e *Engine) settle(ctx context.Context, ref AssetRef, assetHolder, seller string, clearAuction func()) error {
	bid := e.bids.Get(ref)
	if bid.Bidder == "" {
		return ErrNoBid
	}

	// 分账金额先行计算: 计算失败 (溢出/版税查询失败) 时拒绝结算, 状态不变
	split, err := e.fees.Split(ctx, ref.CollectionAddr, ref.TokenID, bid.Amount, bid.FeePctSnapshot)
	if err != nil {
		return err
	}

	// 资产转移是结算中唯一可能失败的外部写操作, 放在状态变更之前
	if err := e.custody.TransferFrom(ctx, assetHolder, bid.Bidder, ref.CollectionAddr, ref.TokenID); err != nil {
		return errors.Wrap(err, "failed on transfer asset to winner")
	}

	// 从这里开始操作必定完成: 支付失败会自动转入托管余额, 不会中断结算
	if _, err := e.payments.Pay(ctx, e.cfg.MarketplaceRecipient, split.MarketplaceFee); err != nil {
		return err
	}
	if _, err := e.payments.Pay(ctx, split.SecondaryRecipient, split.SecondaryFee); err != nil {
		return err
	}
	if _, err := e.payments.Pay(ctx, seller, split.SellerAmount); err != nil {
		return err
	}

	if err := e.settings.MarkSold(ctx, ref.CollectionAddr, ref.TokenID, true); err != nil {
		return err
	}
	if _, err := e.bids.Take(ctx, ref); err != nil {
		return err
	}
	clearAuction()

	e.notifier.Notify(Event{
		Kind:           EventAuctionSettled,
		CollectionAddr: ref.CollectionAddr,
		TokenID:        ref.TokenID,
		Creator:        seller,
		Bidder:         bid.Bidder,
		Amount:         bid.Amount,
		MarketplaceFee: split.MarketplaceFee,
		SecondaryFee:   split.SecondaryFee,
		SellerAmount:   split.SellerAmount,
	})
	return nil
}

// Withdraw 提取调用者的托管余额
func (e *Engine) Withdraw(ctx context.Context, caller string) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.payments.Withdraw(ctx, caller)
}

// ---------------------------------------------------------------------------
// 内部辅助
// ---------------------------------------------------------------------------

// requireNoAuction 同一 AssetRef 上最多存在一种拍卖
func (e *Engine) requireNoAuction(ref AssetRef) error {
	if _, ok := e.reserve[ref]; ok {
		return ErrAuctionExists
	}
	if _, ok := e.scheduled[ref]; ok {
		return ErrAuctionExists
	}
	return nil
}

// requireOwnedAndApproved 校验调用者持有资产且已授权引擎
func (e *Engine) requireOwnedAndApproved(ctx context.Context, caller, collection, tokenID string) error {
	owner, err := e.custody.OwnerOf(ctx, collection, tokenID)
	if err != nil {
		return errors.Wrap(err, "failed on query asset owner")
	}
	if owner != caller {
		return ErrNotOwner
	}

	approved, err := e.custody.IsApprovedForAll(ctx, caller, e.cfg.EngineAccount)
	if err != nil {
		return errors.Wrap(err, "failed on query approval")
	}
	if !approved {
		return ErrNotApproved
	}
	return nil
}

func (e *Engine) currentHeight(ctx context.Context) (uint64, error) {
	current, err := e.height.CurrentHeight(ctx)
	if err != nil {
		xzap.WithContext(ctx).Error("failed on query ledger height", zap.Error(err))
		return 0, ErrHeightUnavailable
	}
	return current, nil
}

func (e *Engine) notifyBidPlaced(ref AssetRef, bidder string, amount uint64) {
	e.notifier.Notify(Event{
		Kind:           EventBidPlaced,
		CollectionAddr: ref.CollectionAddr,
		TokenID:        ref.TokenID,
		Bidder:         bidder,
		Amount:         amount,
	})
}

func (e *Engine) deleteReserve(ctx context.Context, ref AssetRef) {
	delete(e.reserve, ref)
	if err := e.store.DeleteReserveAuction(ctx, ref); err != nil {
		xzap.WithContext(ctx).Error("failed on delete reserve auction",
			zap.String("collection_addr", ref.CollectionAddr), zap.String("token_id", ref.TokenID), zap.Error(err))
	}
}

func (e *Engine) deleteScheduled(ctx context.Context, ref AssetRef) {
	delete(e.scheduled, ref)
	if err := e.store.DeleteScheduledAuction(ctx, ref); err != nil {
		xzap.WithContext(ctx).Error("failed on delete scheduled auction",
			zap.String("collection_addr", ref.CollectionAddr), zap.String("token_id", ref.TokenID), zap.Error(err))
	}
}
