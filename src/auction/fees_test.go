package auction

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFeeCalculator(t *testing.T, marketplacePct, collectionPct uint64, royalty *fakeRoyalty) (*FeeCalculator, *SettingsRegistry) {
	t.Helper()
	settings := NewSettingsRegistry(DefaultMaxSoldBatch, NewMemoryStore())
	ctx := context.Background()
	require.NoError(t, settings.SetMarketplaceFeePct(ctx, marketplacePct))
	require.NoError(t, settings.SetCollectionFeePct(ctx, testCollection, collectionPct))
	return NewFeeCalculator(settings, royalty, testMarketplace), settings
}

// 三项之和必须严格等于输入金额: 遍历费率与金额组合验证
func TestSplitSumEqualsAmount(t *testing.T) {
	royalty := &fakeRoyalty{recipient: testCreatorAddr, pct: 10}

	amounts := []uint64{0, 1, 3, 99, 100, 101, 999, 1000, 12345, 999999999999}
	percentages := []uint64{0, 1, 2, 33, 50, 99, 100}

	for _, marketplacePct := range percentages {
		for _, collectionPct := range percentages {
			if marketplacePct+collectionPct > 100 {
				// 两费率之和超过 100 时卖家所得可能为负, 由 setter 边界外的组合不在本测试范围
				continue
			}
			calc, _ := newTestFeeCalculator(t, marketplacePct, collectionPct, royalty)
			for _, amount := range amounts {
				split, err := calc.Split(context.Background(), testCollection, "1", amount, marketplacePct)
				require.NoError(t, err)
				assert.Equal(t, amount, split.MarketplaceFee+split.SecondaryFee+split.SellerAmount,
					"pct=%d/%d amount=%d", marketplacePct, collectionPct, amount)
			}
		}
	}
}

func TestSplitPrimarySaleUsesCollectionFee(t *testing.T) {
	royalty := &fakeRoyalty{recipient: testCreatorAddr, pct: 10}
	calc, _ := newTestFeeCalculator(t, 2, 5, royalty)

	// 未售资产: 收取集合首次销售费, 接收方为平台
	split, err := calc.Split(context.Background(), testCollection, "1", 1000, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(20), split.MarketplaceFee)
	assert.Equal(t, uint64(50), split.SecondaryFee)
	assert.Equal(t, testMarketplace, split.SecondaryRecipient)
	assert.Equal(t, uint64(930), split.SellerAmount)
}

func TestSplitSecondarySaleUsesRoyalty(t *testing.T) {
	royalty := &fakeRoyalty{recipient: testCreatorAddr, pct: 10}
	calc, settings := newTestFeeCalculator(t, 2, 5, royalty)
	ctx := context.Background()

	require.NoError(t, settings.MarkSold(ctx, testCollection, "1", true))

	// 已售资产: 改为向版税提供方查询, 接收方为创作者
	split, err := calc.Split(ctx, testCollection, "1", 1000, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(20), split.MarketplaceFee)
	assert.Equal(t, uint64(100), split.SecondaryFee)
	assert.Equal(t, testCreatorAddr, split.SecondaryRecipient)
	assert.Equal(t, uint64(880), split.SellerAmount)
}

// 整数除法截断的余数归卖家
func TestSplitTruncationRemainderToSeller(t *testing.T) {
	royalty := &fakeRoyalty{recipient: testCreatorAddr, pct: 10}
	calc, _ := newTestFeeCalculator(t, 3, 7, royalty)

	split, err := calc.Split(context.Background(), testCollection, "1", 101, 3)
	require.NoError(t, err)
	// 101*3/100=3, 101*7/100=7, 卖家 91
	assert.Equal(t, uint64(3), split.MarketplaceFee)
	assert.Equal(t, uint64(7), split.SecondaryFee)
	assert.Equal(t, uint64(91), split.SellerAmount)
}

func TestSplitRejectsOverflow(t *testing.T) {
	royalty := &fakeRoyalty{recipient: testCreatorAddr, pct: 10}
	calc, _ := newTestFeeCalculator(t, 50, 0, royalty)

	// 溢出必须被拒绝, 绝不回绕
	_, err := calc.Split(context.Background(), testCollection, "1", math.MaxUint64, 50)
	assert.ErrorIs(t, err, ErrAmountOverflow)
}

func TestPctAmountBounds(t *testing.T) {
	_, err := pctAmount(100, 101)
	assert.ErrorIs(t, err, ErrPctOutOfRange)

	v, err := pctAmount(0, 100)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), v)

	v, err = pctAmount(12345, 100)
	require.NoError(t, err)
	assert.Equal(t, uint64(12345), v)
}
