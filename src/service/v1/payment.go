package service

import (
	"context"
	"strconv"

	"github.com/ProjectsTask/EasySwapAuction/src/service/svc"
	"github.com/ProjectsTask/EasySwapAuction/src/types/v1"
)

// Withdraw 提取调用者的全部托管余额
func Withdraw(ctx context.Context, svcCtx *svc.ServerCtx, req types.WithdrawReq) (*types.WithdrawResp, error) {
	amount, err := svcCtx.Engine.Withdraw(ctx, req.Caller)
	if err != nil {
		return nil, asBusinessErr(err)
	}
	return &types.WithdrawResp{Amount: strconv.FormatUint(amount, 10)}, nil
}

// GetEscrowBalance 查询托管余额
func GetEscrowBalance(ctx context.Context, svcCtx *svc.ServerCtx, payee string) (*types.EscrowBalanceResp, error) {
	balance := svcCtx.Engine.EscrowBalance(payee)
	return &types.EscrowBalanceResp{Balance: strconv.FormatUint(balance, 10)}, nil
}
