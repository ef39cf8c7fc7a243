package service

import (
	"context"

	"github.com/ProjectsTask/EasySwapAuction/src/pkg/errcode"
	"github.com/ProjectsTask/EasySwapAuction/src/service/svc"
	"github.com/ProjectsTask/EasySwapAuction/src/types/v1"
)

// SetMarketplaceFee 设置全局平台费率 (管理员)
func SetMarketplaceFee(ctx context.Context, svcCtx *svc.ServerCtx, req types.SetMarketplaceFeeReq) error {
	if err := svcCtx.Engine.SetMarketplaceFeePct(ctx, req.Caller, req.Pct); err != nil {
		return asBusinessErr(err)
	}
	return nil
}

// SetCollectionFee 设置集合首次销售费率 (管理员)
func SetCollectionFee(ctx context.Context, svcCtx *svc.ServerCtx, req types.SetCollectionFeeReq) error {
	if err := svcCtx.Engine.SetCollectionFeePct(ctx, req.Caller, req.CollectionAddr, req.Pct); err != nil {
		return asBusinessErr(err)
	}
	return nil
}

// MarkSold 标记资产已售状态 (管理员)
// 同时支持单个和批量: TokenIDs 非空时走批量路径, 整批校验整批生效
func MarkSold(ctx context.Context, svcCtx *svc.ServerCtx, req types.MarkSoldReq) error {
	if len(req.TokenIDs) > 0 {
		if err := svcCtx.Engine.MarkManySold(ctx, req.Caller, req.CollectionAddr, req.TokenIDs, req.Sold); err != nil {
			return asBusinessErr(err)
		}
		for _, tokenID := range req.TokenIDs {
			invalidateAuctionCache(ctx, svcCtx, req.CollectionAddr, tokenID)
		}
		return nil
	}

	if req.TokenID == "" {
		return errcode.ErrInvalidParams
	}
	if err := svcCtx.Engine.MarkSold(ctx, req.Caller, req.CollectionAddr, req.TokenID, req.Sold); err != nil {
		return asBusinessErr(err)
	}
	invalidateAuctionCache(ctx, svcCtx, req.CollectionAddr, req.TokenID)
	return nil
}

// GetMarketplaceFee 查询全局平台费率
func GetMarketplaceFee(ctx context.Context, svcCtx *svc.ServerCtx) *types.FeeResp {
	return &types.FeeResp{Pct: svcCtx.Engine.MarketplaceFeePct()}
}

// GetCollectionFee 查询集合首次销售费率
func GetCollectionFee(ctx context.Context, svcCtx *svc.ServerCtx, collectionAddr string) *types.FeeResp {
	return &types.FeeResp{Pct: svcCtx.Engine.CollectionFeePct(collectionAddr)}
}

// GetSold 查询资产已售状态
func GetSold(ctx context.Context, svcCtx *svc.ServerCtx, collectionAddr, tokenID string) *types.SoldResp {
	return &types.SoldResp{Sold: svcCtx.Engine.IsSold(collectionAddr, tokenID)}
}
