package service

import (
	"context"

	"github.com/ProjectsTask/EasySwapAuction/src/service/svc"
	"github.com/ProjectsTask/EasySwapAuction/src/types/v1"
)

// PlaceBid 出价
// 被接受的出价会顶替并退款前一出价人; 保留价拍卖可能因此进入 Started 状态
func PlaceBid(ctx context.Context, svcCtx *svc.ServerCtx, req types.PlaceBidReq) error {
	amount, err := toAmount(req.Amount)
	if err != nil {
		return err
	}

	if err := svcCtx.Engine.PlaceBid(ctx, req.Caller, req.CollectionAddr, req.TokenID, amount); err != nil {
		return asBusinessErr(err)
	}

	invalidateAuctionCache(ctx, svcCtx, req.CollectionAddr, req.TokenID)
	return nil
}

// CancelBid 撤回出价 (仅保留价拍卖开始前允许)
func CancelBid(ctx context.Context, svcCtx *svc.ServerCtx, req types.CancelBidReq) error {
	if err := svcCtx.Engine.CancelBid(ctx, req.Caller, req.CollectionAddr, req.TokenID); err != nil {
		return asBusinessErr(err)
	}

	invalidateAuctionCache(ctx, svcCtx, req.CollectionAddr, req.TokenID)
	return nil
}
