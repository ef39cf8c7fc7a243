package auction

// 拍卖类型
const (
	AuctionKindNone      = 0 // 不存在拍卖
	AuctionKindReserve   = 1 // 保留价拍卖: 无固定开始时间, 出价达到保留价后自动开始
	AuctionKindScheduled = 2 // 定时拍卖: 预定区块高度开始, 创建时资产即托管给引擎
)

// AssetRef 资产唯一标识: (集合地址, Token ID)
// 拍卖和出价都以该组合键为单位
type AssetRef struct {
	CollectionAddr string
	TokenID        string
}

// ReserveAuction 保留价拍卖记录
// StartedAtHeight 为 0 表示尚未开始
type ReserveAuction struct {
	Creator         string // 创建者 (卖家) 地址
	Length          uint64 // 拍卖时长 (区块数)
	StartedAtHeight uint64 // 开始高度, 0 = 未开始
	ReservePrice    uint64 // 保留价, 首个有效出价必须达到
}

// ScheduledAuction 定时拍卖记录
// 与同一 AssetRef 上的 ReserveAuction 互斥
type ScheduledAuction struct {
	Creator        string // 创建者 (卖家) 地址
	Length         uint64 // 拍卖时长 (区块数)
	StartingHeight uint64 // 预定开始高度
	MinimumBid     uint64 // 最低出价
}

// ActiveBid 当前有效出价
// FeePctSnapshot 在出价被接受时快照, 结算时使用, 不受后续费率调整影响
type ActiveBid struct {
	Bidder         string // 出价人地址, 空串表示无出价
	FeePctSnapshot uint64 // 出价接受时的平台费率快照
	Amount         uint64 // 出价金额 (最小计价单位)
}

// Details 拍卖详情查询结果
// 不存在拍卖时返回零值记录 (Kind = AuctionKindNone)
type Details struct {
	Kind            int    `json:"kind"`
	Creator         string `json:"creator,omitempty"`
	Length          uint64 `json:"length,omitempty"`
	StartedAtHeight uint64 `json:"started_at_height,omitempty"`
	StartingHeight  uint64 `json:"starting_height,omitempty"`
	ReservePrice    uint64 `json:"reserve_price,omitempty"`
	MinimumBid      uint64 `json:"minimum_bid,omitempty"`
	Bidder          string `json:"bidder,omitempty"`
	BidAmount       uint64 `json:"bid_amount,omitempty"`
	FeePctSnapshot  uint64 `json:"fee_pct_snapshot,omitempty"`
	Sold            bool   `json:"sold"`
}

// FeeSplit 费用拆分结果
// 三项之和严格等于输入金额, 取整余数归卖家
type FeeSplit struct {
	MarketplaceFee     uint64 // 平台费
	SecondaryFee       uint64 // 首次销售费或创作者版税
	SecondaryRecipient string // 费用接收方
	SellerAmount       uint64 // 卖家所得
}
