package types

import "github.com/shopspring/decimal"

// CreateReserveAuctionReq 创建保留价拍卖请求
type CreateReserveAuctionReq struct {
	Caller         string          `json:"caller" binding:"required,address"`          // 创建者地址
	CollectionAddr string          `json:"collection_addr" binding:"required,address"` // 集合地址
	TokenID        string          `json:"token_id" binding:"required"`                // Token ID
	ReservePrice   decimal.Decimal `json:"reserve_price"`                              // 保留价 (最小计价单位)
	Length         uint64          `json:"length" binding:"required"`                  // 拍卖时长 (区块数)
}

// CreateScheduledAuctionReq 创建定时拍卖请求
type CreateScheduledAuctionReq struct {
	Caller         string          `json:"caller" binding:"required,address"`          // 创建者地址
	CollectionAddr string          `json:"collection_addr" binding:"required,address"` // 集合地址
	TokenID        string          `json:"token_id" binding:"required"`                // Token ID
	MinimumBid     decimal.Decimal `json:"minimum_bid"`                                // 最低出价 (最小计价单位)
	Length         uint64          `json:"length" binding:"required"`                  // 拍卖时长 (区块数)
	StartingHeight uint64          `json:"starting_height" binding:"required"`         // 预定开始高度
}

// CancelAuctionReq 取消拍卖请求
type CancelAuctionReq struct {
	Caller         string `json:"caller" binding:"required,address"`
	CollectionAddr string `json:"collection_addr" binding:"required,address"`
	TokenID        string `json:"token_id" binding:"required"`
}

// PlaceBidReq 出价请求
type PlaceBidReq struct {
	Caller         string          `json:"caller" binding:"required,address"`
	CollectionAddr string          `json:"collection_addr" binding:"required,address"`
	TokenID        string          `json:"token_id" binding:"required"`
	Amount         decimal.Decimal `json:"amount"` // 出价金额 (最小计价单位)
}

// CancelBidReq 撤回出价请求
type CancelBidReq struct {
	Caller         string `json:"caller" binding:"required,address"`
	CollectionAddr string `json:"collection_addr" binding:"required,address"`
	TokenID        string `json:"token_id" binding:"required"`
}

// SettleAuctionReq 结算拍卖请求
type SettleAuctionReq struct {
	Caller         string `json:"caller" binding:"required,address"`
	CollectionAddr string `json:"collection_addr" binding:"required,address"`
	TokenID        string `json:"token_id" binding:"required"`
}

// AuctionDetailsResp 拍卖详情响应
type AuctionDetailsResp struct {
	Result AuctionDetails `json:"result"`
}

// AuctionDetails 拍卖详情
// Kind: 0 无拍卖, 1 保留价拍卖, 2 定时拍卖
type AuctionDetails struct {
	Kind            int    `json:"kind"`
	Creator         string `json:"creator,omitempty"`
	Length          uint64 `json:"length,omitempty"`
	StartedAtHeight uint64 `json:"started_at_height,omitempty"`
	StartingHeight  uint64 `json:"starting_height,omitempty"`
	ReservePrice    string `json:"reserve_price,omitempty"`
	MinimumBid      string `json:"minimum_bid,omitempty"`
	Bidder          string `json:"bidder,omitempty"`
	BidAmount       string `json:"bid_amount,omitempty"`
	FeePctSnapshot  uint64 `json:"fee_pct_snapshot,omitempty"`
	Sold            bool   `json:"sold"`
}
