package auction

import (
	"context"

	"go.uber.org/zap"

	"github.com/ProjectsTask/EasySwapAuction/src/pkg/logger/xzap"
)

// PaymentDispatcher 支付分发器
// 核心语义: 直接转账失败时将金额记入收款人的托管余额 (pull-payment),
// 调用方操作照常完成, 异常收款方无法以此阻塞无关的状态迁移
type PaymentDispatcher struct {
	rail   ValueRail
	escrow map[string]uint64

	store Store
}

// NewPaymentDispatcher 创建支付分发器
func NewPaymentDispatcher(rail ValueRail, store Store) *PaymentDispatcher {
	return &PaymentDispatcher{
		rail:   rail,
		escrow: make(map[string]uint64),
		store:  store,
	}
}

// Pay 向收款人支付指定金额
// 返回值 direct 表示是否直接到账; 转账失败不向上传播,
// 金额累加到托管余额, 等待收款人自行提取
func (p *PaymentDispatcher) Pay(ctx context.Context, recipient string, amount uint64) (bool, error) {
	if amount == 0 {
		return true, nil
	}

	err := p.rail.Transfer(ctx, recipient, amount)
	if err == nil {
		return true, nil
	}
	xzap.WithContext(ctx).Warn("direct transfer failed, credit to escrow",
		zap.String("recipient", recipient), zap.Uint64("amount", amount), zap.Error(err))

	// 托管余额只增不减, 唯一的扣减途径是收款人自己发起的 Withdraw
	credited, err := addAmount(p.escrow[recipient], amount)
	if err != nil {
		return false, err
	}
	p.escrow[recipient] = credited

	if err := p.store.SaveEscrowCredit(ctx, recipient, credited); err != nil {
		xzap.WithContext(ctx).Error("failed on persist escrow credit",
			zap.String("recipient", recipient), zap.Error(err))
	}
	return false, nil
}

// Withdraw 收款人提取全部托管余额
// 余额在发起转账之前清零, 防止重入式的重复提取
func (p *PaymentDispatcher) Withdraw(ctx context.Context, payee string) (uint64, error) {
	balance := p.escrow[payee]
	if balance == 0 {
		return 0, ErrNoEscrowBalance
	}

	// 先清零再转账
	p.escrow[payee] = 0
	if err := p.store.SaveEscrowCredit(ctx, payee, 0); err != nil {
		xzap.WithContext(ctx).Error("failed on persist escrow credit",
			zap.String("recipient", payee), zap.Error(err))
	}

	if err := p.rail.Transfer(ctx, payee, balance); err != nil {
		// 提取失败则恢复余额, 本次操作以错误返回
		p.escrow[payee] = balance
		if serr := p.store.SaveEscrowCredit(ctx, payee, balance); serr != nil {
			xzap.WithContext(ctx).Error("failed on persist escrow credit",
				zap.String("recipient", payee), zap.Error(serr))
		}
		return 0, err
	}

	return balance, nil
}

// Balance 查询托管余额
func (p *PaymentDispatcher) Balance(payee string) uint64 {
	return p.escrow[payee]
}

// restore 从快照恢复托管余额
func (p *PaymentDispatcher) restore(snap *Snapshot) {
	for payee, balance := range snap.EscrowCredits {
		p.escrow[payee] = balance
	}
}
