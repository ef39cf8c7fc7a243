package auction

import "context"

// CustodyProvider 资产托管方
// 引擎只调用该接口, 不维护任何所有权状态
type CustodyProvider interface {
	// OwnerOf 查询资产当前持有人
	OwnerOf(ctx context.Context, collection, tokenID string) (string, error)
	// IsApprovedForAll 查询 owner 是否已授权 operator 转移其资产
	IsApprovedForAll(ctx context.Context, owner, operator string) (bool, error)
	// TransferFrom 转移资产持有权
	TransferFrom(ctx context.Context, from, to, collection, tokenID string) error
}

// RoyaltyProvider 创作者版税查询方
// 语义对齐 EIP-2981 royaltyInfo: 返回接收人和版税金额
type RoyaltyProvider interface {
	RoyaltyFor(ctx context.Context, collection, tokenID string, saleAmount uint64) (recipient string, amount uint64, err error)
}

// ValueRail 支付通道
// Transfer 失败时由 PaymentDispatcher 转入托管余额, 不会向上传播
type ValueRail interface {
	Transfer(ctx context.Context, to string, amount uint64) error
}

// HeightSource 账本高度来源, 用于判断拍卖开始与结算时点
type HeightSource interface {
	CurrentHeight(ctx context.Context) (uint64, error)
}

// AdminChecker 管理员能力校验
type AdminChecker interface {
	IsAdministrator(caller string) bool
}

// Notifier 生命周期通知接收方
// 引擎在状态迁移完成后同步调用, 实现方不应阻塞
type Notifier interface {
	Notify(event Event)
}

// NopNotifier 空实现
type NopNotifier struct{}

func (NopNotifier) Notify(Event) {}
