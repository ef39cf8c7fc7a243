package auction

// 通知事件类型
const (
	EventReserveAuctionCreated   = "reserve_auction_created"
	EventReserveAuctionCancelled = "reserve_auction_cancelled"
	EventScheduledAuctionCreated = "scheduled_auction_created"
	EventBidPlaced               = "bid_placed"
	EventBidCancelled            = "bid_cancelled"
	EventAuctionStarted          = "auction_started"
	EventAuctionSettled          = "auction_settled"
)

// Event 状态迁移通知
// 供外部消费者 (索引器/前端推送) 使用, 字段按事件类型选择性填充
type Event struct {
	Kind            string `json:"kind"`
	CollectionAddr  string `json:"collection_addr"`
	TokenID         string `json:"token_id"`
	Creator         string `json:"creator,omitempty"`
	Bidder          string `json:"bidder,omitempty"`
	Amount          uint64 `json:"amount,omitempty"`
	ReservePrice    uint64 `json:"reserve_price,omitempty"`
	MinimumBid      uint64 `json:"minimum_bid,omitempty"`
	Length          uint64 `json:"length,omitempty"`
	StartingHeight  uint64 `json:"starting_height,omitempty"`
	StartedAtHeight uint64 `json:"started_at_height,omitempty"`
	SellerAmount    uint64 `json:"seller_amount,omitempty"`
	MarketplaceFee  uint64 `json:"marketplace_fee,omitempty"`
	SecondaryFee    uint64 `json:"secondary_fee,omitempty"`
}
