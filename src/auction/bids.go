package auction

import (
	"context"

	"go.uber.org/zap"

	"github.com/ProjectsTask/EasySwapAuction/src/pkg/logger/xzap"
)

// BidLedger 出价账本
// 每个 AssetRef 只保留一条有效出价; 出价被替换或撤回时,
// 原出价金额通过 PaymentDispatcher 退还给原出价人
type BidLedger struct {
	bids       map[AssetRef]ActiveBid
	dispatcher *PaymentDispatcher

	store Store
}

// NewBidLedger 创建出价账本
func NewBidLedger(dispatcher *PaymentDispatcher, store Store) *BidLedger {
	return &BidLedger{
		bids:       make(map[AssetRef]ActiveBid),
		dispatcher: dispatcher,
		store:      store,
	}
}

// PlaceBid 记录新出价
// 规则:
// 1. 新出价必须严格高于当前出价 (不允许平价)
// 2. 创建者不得对自己的拍卖出价
// 3. 接受时先退还原出价人, 再写入新出价并快照当前平台费率
func (b *BidLedger) PlaceBid(ctx context.Context, ref AssetRef, creator, bidder string, amount, feePct uint64) error {
	if amount == 0 {
		return ErrZeroAmount
	}
	if bidder == creator {
		return ErrSelfBid
	}

	prior := b.bids[ref]
	if amount <= prior.Amount {
		return ErrBidTooLow
	}

	// 退还被顶替的出价 (转账失败自动转入托管余额, 不阻塞新出价)
	if prior.Bidder != "" {
		if _, err := b.dispatcher.Pay(ctx, prior.Bidder, prior.Amount); err != nil {
			return err
		}
	}

	bid := ActiveBid{
		Bidder:         bidder,
		FeePctSnapshot: feePct,
		Amount:         amount,
	}
	b.bids[ref] = bid
	if err := b.store.SaveBid(ctx, ref, bid); err != nil {
		xzap.WithContext(ctx).Error("failed on persist bid",
			zap.String("collection_addr", ref.CollectionAddr), zap.String("token_id", ref.TokenID), zap.Error(err))
	}
	return nil
}

// WithdrawBid 出价人撤回自己的出价
// 调用方负责校验拍卖尚未开始; 返回被撤回的出价用于通知
func (b *BidLedger) WithdrawBid(ctx context.Context, ref AssetRef, caller string) (ActiveBid, error) {
	bid := b.bids[ref]
	if bid.Bidder == "" {
		return ActiveBid{}, ErrNoBid
	}
	if bid.Bidder != caller {
		return ActiveBid{}, ErrNotBidder
	}

	if err := b.refundAndClear(ctx, ref); err != nil {
		return ActiveBid{}, err
	}
	return bid, nil
}

// Take 取出并清除当前出价 (结算路径)
// 出价金额此时进入分账流程, 不再退还
func (b *BidLedger) Take(ctx context.Context, ref AssetRef) (ActiveBid, error) {
	bid := b.bids[ref]
	if bid.Bidder == "" {
		return ActiveBid{}, ErrNoBid
	}
	b.clear(ctx, ref)
	return bid, nil
}

// Get 查询当前出价, 无出价时返回零值
func (b *BidLedger) Get(ref AssetRef) ActiveBid {
	return b.bids[ref]
}

// refundAndClear 退还当前出价并清除记录
// 拍卖取消路径也使用该方法
func (b *BidLedger) refundAndClear(ctx context.Context, ref AssetRef) error {
	bid := b.bids[ref]
	if bid.Bidder == "" {
		return nil
	}
	if _, err := b.dispatcher.Pay(ctx, bid.Bidder, bid.Amount); err != nil {
		return err
	}
	b.clear(ctx, ref)
	return nil
}

func (b *BidLedger) clear(ctx context.Context, ref AssetRef) {
	delete(b.bids, ref)
	if err := b.store.DeleteBid(ctx, ref); err != nil {
		xzap.WithContext(ctx).Error("failed on delete bid",
			zap.String("collection_addr", ref.CollectionAddr), zap.String("token_id", ref.TokenID), zap.Error(err))
	}
}

// restore 从快照恢复出价
func (b *BidLedger) restore(snap *Snapshot) {
	for ref, bid := range snap.Bids {
		b.bids[ref] = bid
	}
}
