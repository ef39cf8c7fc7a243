package auction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBidLedger() (*BidLedger, *fakeRail) {
	rail := newFakeRail()
	dispatcher := NewPaymentDispatcher(rail, NewMemoryStore())
	return NewBidLedger(dispatcher, NewMemoryStore()), rail
}

func TestPlaceBidStrictIncrease(t *testing.T) {
	ledger, rail := newTestBidLedger()
	ctx := context.Background()
	ref := AssetRef{CollectionAddr: testCollection, TokenID: "1"}

	require.NoError(t, ledger.PlaceBid(ctx, ref, testSeller, testBidderA, 100, 2))

	// 平价与更低出价一律拒绝
	assert.ErrorIs(t, ledger.PlaceBid(ctx, ref, testSeller, testBidderB, 100, 2), ErrBidTooLow)
	assert.ErrorIs(t, ledger.PlaceBid(ctx, ref, testSeller, testBidderB, 99, 2), ErrBidTooLow)

	// 更高出价被接受, 原出价人全额退款
	require.NoError(t, ledger.PlaceBid(ctx, ref, testSeller, testBidderB, 101, 2))
	assert.Equal(t, uint64(100), rail.received[testBidderA])

	bid := ledger.Get(ref)
	assert.Equal(t, testBidderB, bid.Bidder)
	assert.Equal(t, uint64(101), bid.Amount)
}

func TestPlaceBidRejectsSelfBid(t *testing.T) {
	ledger, _ := newTestBidLedger()
	ref := AssetRef{CollectionAddr: testCollection, TokenID: "1"}

	err := ledger.PlaceBid(context.Background(), ref, testSeller, testSeller, 100, 2)
	assert.ErrorIs(t, err, ErrSelfBid)
}

func TestPlaceBidRejectsZeroAmount(t *testing.T) {
	ledger, _ := newTestBidLedger()
	ref := AssetRef{CollectionAddr: testCollection, TokenID: "1"}

	err := ledger.PlaceBid(context.Background(), ref, testSeller, testBidderA, 0, 2)
	assert.ErrorIs(t, err, ErrZeroAmount)
}

// 快照费率在出价接受时捕获, 不随后续费率变化
func TestPlaceBidSnapshotsFeePct(t *testing.T) {
	ledger, _ := newTestBidLedger()
	ctx := context.Background()
	ref := AssetRef{CollectionAddr: testCollection, TokenID: "1"}

	require.NoError(t, ledger.PlaceBid(ctx, ref, testSeller, testBidderA, 100, 2))
	assert.Equal(t, uint64(2), ledger.Get(ref).FeePctSnapshot)

	// 顶替出价使用新的当前费率
	require.NoError(t, ledger.PlaceBid(ctx, ref, testSeller, testBidderB, 200, 9))
	assert.Equal(t, uint64(9), ledger.Get(ref).FeePctSnapshot)
}

func TestWithdrawBid(t *testing.T) {
	ledger, rail := newTestBidLedger()
	ctx := context.Background()
	ref := AssetRef{CollectionAddr: testCollection, TokenID: "1"}

	_, err := ledger.WithdrawBid(ctx, ref, testBidderA)
	assert.ErrorIs(t, err, ErrNoBid)

	require.NoError(t, ledger.PlaceBid(ctx, ref, testSeller, testBidderA, 100, 2))

	// 只有当前出价人可以撤回
	_, err = ledger.WithdrawBid(ctx, ref, testBidderB)
	assert.ErrorIs(t, err, ErrNotBidder)

	bid, err := ledger.WithdrawBid(ctx, ref, testBidderA)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), bid.Amount)
	assert.Equal(t, uint64(100), rail.received[testBidderA])
	assert.Equal(t, "", ledger.Get(ref).Bidder)
}

// 被顶替出价人拒收直接转账时退款进入托管余额, 新出价照常接受
func TestDisplacedBidderRefundFallsBackToEscrow(t *testing.T) {
	rail := newFakeRail()
	dispatcher := NewPaymentDispatcher(rail, NewMemoryStore())
	ledger := NewBidLedger(dispatcher, NewMemoryStore())
	ctx := context.Background()
	ref := AssetRef{CollectionAddr: testCollection, TokenID: "1"}

	require.NoError(t, ledger.PlaceBid(ctx, ref, testSeller, testBidderA, 100, 2))

	rail.rejects[testBidderA] = true
	require.NoError(t, ledger.PlaceBid(ctx, ref, testSeller, testBidderB, 150, 2))

	assert.Equal(t, testBidderB, ledger.Get(ref).Bidder)
	assert.Equal(t, uint64(100), dispatcher.Balance(testBidderA))
}
