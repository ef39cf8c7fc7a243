package types

// SetMarketplaceFeeReq 设置全局平台费率请求
type SetMarketplaceFeeReq struct {
	Caller string `json:"caller" binding:"required,address"` // 管理员地址
	Pct    uint64 `json:"pct"`                               // 费率 (0-100 整数百分比)
}

// SetCollectionFeeReq 设置集合首次销售费率请求
type SetCollectionFeeReq struct {
	Caller         string `json:"caller" binding:"required,address"`
	CollectionAddr string `json:"collection_addr" binding:"required,address"`
	Pct            uint64 `json:"pct"`
}

// MarkSoldReq 标记资产已售状态请求
// TokenIDs 为空时按单个 TokenID 处理
type MarkSoldReq struct {
	Caller         string   `json:"caller" binding:"required,address"`
	CollectionAddr string   `json:"collection_addr" binding:"required,address"`
	TokenID        string   `json:"token_id"`
	TokenIDs       []string `json:"token_ids"`
	Sold           bool     `json:"sold"`
}

// FeeResp 费率查询响应
type FeeResp struct {
	Pct uint64 `json:"pct"`
}

// SoldResp 已售状态查询响应
type SoldResp struct {
	Sold bool `json:"sold"`
}
