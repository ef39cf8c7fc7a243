package auction

import (
	"context"

	"github.com/pkg/errors"
)

// FeeCalculator 费用拆分计算器
// 将成交金额拆为: 平台费 + (首次销售费 | 创作者版税) + 卖家所得
// 三项之和严格等于输入金额, 整数除法的余数归卖家, 不产生也不损失价值
type FeeCalculator struct {
	settings *SettingsRegistry
	royalty  RoyaltyProvider

	// 平台费与首次销售费的接收地址
	marketplaceRecipient string
}

// NewFeeCalculator 创建费用计算器
func NewFeeCalculator(settings *SettingsRegistry, royalty RoyaltyProvider, marketplaceRecipient string) *FeeCalculator {
	return &FeeCalculator{
		settings:             settings,
		royalty:              royalty,
		marketplaceRecipient: marketplaceRecipient,
	}
}

// Split 拆分成交金额
// marketplacePct 使用出价接受时的快照费率, 保证结算费率不被事后调整;
// 资产未完成首次销售时收取集合的首次销售费 (代替版税),
// 已售资产改为向版税提供方查询创作者版税
func (f *FeeCalculator) Split(ctx context.Context, collection, tokenID string, amount, marketplacePct uint64) (FeeSplit, error) {
	marketplaceFee, err := pctAmount(amount, marketplacePct)
	if err != nil {
		return FeeSplit{}, err
	}

	var secondaryFee uint64
	secondaryRecipient := f.marketplaceRecipient
	if !f.settings.IsSold(collection, tokenID) {
		// 首次销售: 按集合费率收取, 是否翻转 SoldFlag 由调用方在销售完成后负责
		secondaryFee, err = pctAmount(amount, f.settings.CollectionFeePct(collection))
		if err != nil {
			return FeeSplit{}, err
		}
	} else {
		// 二次销售: 创作者版税
		recipient, royaltyAmount, rerr := f.royalty.RoyaltyFor(ctx, collection, tokenID, amount)
		if rerr != nil {
			return FeeSplit{}, errors.Wrap(rerr, "failed on query royalty")
		}
		secondaryFee = royaltyAmount
		secondaryRecipient = recipient
	}

	// 两个费率都被约束在 [0,100], 扣减不可能为负;
	// 版税金额超出剩余部分属于提供方契约违规, 按溢出拒绝
	rest, err := subAmount(amount, marketplaceFee)
	if err != nil {
		return FeeSplit{}, err
	}
	sellerAmount, err := subAmount(rest, secondaryFee)
	if err != nil {
		return FeeSplit{}, err
	}

	return FeeSplit{
		MarketplaceFee:     marketplaceFee,
		SecondaryFee:       secondaryFee,
		SecondaryRecipient: secondaryRecipient,
		SellerAmount:       sellerAmount,
	}, nil
}
