package auction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayDirect(t *testing.T) {
	rail := newFakeRail()
	dispatcher := NewPaymentDispatcher(rail, NewMemoryStore())
	ctx := context.Background()

	direct, err := dispatcher.Pay(ctx, testBidderA, 500)
	require.NoError(t, err)
	assert.True(t, direct)
	assert.Equal(t, uint64(500), rail.received[testBidderA])
	assert.Equal(t, uint64(0), dispatcher.Balance(testBidderA))
}

func TestPayFallsBackToEscrow(t *testing.T) {
	rail := newFakeRail()
	rail.rejects[testBidderA] = true
	dispatcher := NewPaymentDispatcher(rail, NewMemoryStore())
	ctx := context.Background()

	// 拒收方不会导致调用失败, 金额进入托管余额
	direct, err := dispatcher.Pay(ctx, testBidderA, 300)
	require.NoError(t, err)
	assert.False(t, direct)
	assert.Equal(t, uint64(300), dispatcher.Balance(testBidderA))

	// 托管余额严格累加
	_, err = dispatcher.Pay(ctx, testBidderA, 200)
	require.NoError(t, err)
	assert.Equal(t, uint64(500), dispatcher.Balance(testBidderA))
}

func TestWithdrawDeliversFullBalanceOnce(t *testing.T) {
	rail := newFakeRail()
	rail.rejects[testBidderA] = true
	dispatcher := NewPaymentDispatcher(rail, NewMemoryStore())
	ctx := context.Background()

	_, err := dispatcher.Pay(ctx, testBidderA, 800)
	require.NoError(t, err)

	// 收款方恢复接收能力后提取全部余额
	rail.rejects[testBidderA] = false
	amount, err := dispatcher.Withdraw(ctx, testBidderA)
	require.NoError(t, err)
	assert.Equal(t, uint64(800), amount)
	assert.Equal(t, uint64(800), rail.received[testBidderA])
	assert.Equal(t, uint64(0), dispatcher.Balance(testBidderA))

	// 二次提取没有余额可取
	_, err = dispatcher.Withdraw(ctx, testBidderA)
	assert.ErrorIs(t, err, ErrNoEscrowBalance)
}

func TestWithdrawRestoresBalanceOnRailFailure(t *testing.T) {
	rail := newFakeRail()
	rail.rejects[testBidderA] = true
	dispatcher := NewPaymentDispatcher(rail, NewMemoryStore())
	ctx := context.Background()

	_, err := dispatcher.Pay(ctx, testBidderA, 400)
	require.NoError(t, err)

	// 提取时通道仍然拒收: 返回错误, 余额不丢失
	_, err = dispatcher.Withdraw(ctx, testBidderA)
	require.Error(t, err)
	assert.Equal(t, uint64(400), dispatcher.Balance(testBidderA))
}

func TestPayZeroAmountIsNoop(t *testing.T) {
	rail := newFakeRail()
	dispatcher := NewPaymentDispatcher(rail, NewMemoryStore())

	direct, err := dispatcher.Pay(context.Background(), testBidderA, 0)
	require.NoError(t, err)
	assert.True(t, direct)
	assert.Equal(t, uint64(0), rail.received[testBidderA])
}
