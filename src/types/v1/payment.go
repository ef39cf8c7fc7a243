package types

// WithdrawReq 提取托管余额请求
type WithdrawReq struct {
	Caller string `json:"caller" binding:"required,address"` // 提取人地址
}

// WithdrawResp 提取结果
type WithdrawResp struct {
	Amount string `json:"amount"` // 实际提取金额 (最小计价单位)
}

// EscrowBalanceResp 托管余额查询响应
type EscrowBalanceResp struct {
	Balance string `json:"balance"`
}
