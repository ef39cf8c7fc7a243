package service

import (
	"context"
	"encoding/json"
	"strconv"

	"go.uber.org/zap"

	"github.com/ProjectsTask/EasySwapAuction/src/auction"
	"github.com/ProjectsTask/EasySwapAuction/src/pkg/logger/xzap"
	"github.com/ProjectsTask/EasySwapAuction/src/service/svc"
	"github.com/ProjectsTask/EasySwapAuction/src/types/v1"
)

// CreateReserveAuction 创建保留价拍卖
func CreateReserveAuction(ctx context.Context, svcCtx *svc.ServerCtx, req types.CreateReserveAuctionReq) error {
	reservePrice, err := toAmount(req.ReservePrice)
	if err != nil {
		return err
	}

	if err := svcCtx.Engine.CreateReserveAuction(ctx, req.Caller, req.CollectionAddr, req.TokenID, reservePrice, req.Length); err != nil {
		return asBusinessErr(err)
	}

	invalidateAuctionCache(ctx, svcCtx, req.CollectionAddr, req.TokenID)
	return nil
}

// CancelReserveAuction 取消尚未开始的保留价拍卖
func CancelReserveAuction(ctx context.Context, svcCtx *svc.ServerCtx, req types.CancelAuctionReq) error {
	if err := svcCtx.Engine.CancelReserveAuction(ctx, req.Caller, req.CollectionAddr, req.TokenID); err != nil {
		return asBusinessErr(err)
	}

	invalidateAuctionCache(ctx, svcCtx, req.CollectionAddr, req.TokenID)
	return nil
}

// CreateScheduledAuction 创建定时拍卖
func CreateScheduledAuction(ctx context.Context, svcCtx *svc.ServerCtx, req types.CreateScheduledAuctionReq) error {
	minimumBid, err := toAmount(req.MinimumBid)
	if err != nil {
		return err
	}

	if err := svcCtx.Engine.CreateScheduledAuction(ctx, req.Caller, req.CollectionAddr, req.TokenID, minimumBid, req.Length, req.StartingHeight); err != nil {
		return asBusinessErr(err)
	}

	invalidateAuctionCache(ctx, svcCtx, req.CollectionAddr, req.TokenID)
	return nil
}

// SettleAuction 结算拍卖
func SettleAuction(ctx context.Context, svcCtx *svc.ServerCtx, req types.SettleAuctionReq) error {
	if err := svcCtx.Engine.SettleAuction(ctx, req.Caller, req.CollectionAddr, req.TokenID); err != nil {
		return asBusinessErr(err)
	}

	invalidateAuctionCache(ctx, svcCtx, req.CollectionAddr, req.TokenID)
	return nil
}

// GetAuctionDetails 查询拍卖详情
// 读路径走 Redis 缓存, 未命中时查询引擎并回填
func GetAuctionDetails(ctx context.Context, svcCtx *svc.ServerCtx, collectionAddr, tokenID string) (*types.AuctionDetailsResp, error) {
	cacheKey := getAuctionDetailsCacheKey(svcCtx.C.ProjectCfg.Name, svcCtx.C.ChainCfg.Name, collectionAddr, tokenID)

	if svcCtx.KvStore != nil {
		if cached, err := svcCtx.KvStore.Get(cacheKey); err == nil && cached != "" {
			var details types.AuctionDetails
			if err := json.Unmarshal([]byte(cached), &details); err == nil {
				return &types.AuctionDetailsResp{Result: details}, nil
			}
		}
	}

	details := toAuctionDetails(svcCtx.Engine.AuctionDetails(collectionAddr, tokenID))

	if svcCtx.KvStore != nil {
		if raw, err := json.Marshal(&details); err == nil {
			if err := svcCtx.KvStore.Setex(cacheKey, string(raw), CacheAuctionDetailsPeriod); err != nil {
				xzap.WithContext(ctx).Warn("failed on cache auction details",
					zap.String("collection_addr", collectionAddr), zap.String("token_id", tokenID), zap.Error(err))
			}
		}
	}

	return &types.AuctionDetailsResp{Result: details}, nil
}

// toAuctionDetails 引擎详情转 API 返回结构, 金额输出为十进制字符串
func toAuctionDetails(d auction.Details) types.AuctionDetails {
	details := types.AuctionDetails{
		Kind:            d.Kind,
		Creator:         d.Creator,
		Length:          d.Length,
		StartedAtHeight: d.StartedAtHeight,
		StartingHeight:  d.StartingHeight,
		FeePctSnapshot:  d.FeePctSnapshot,
		Bidder:          d.Bidder,
		Sold:            d.Sold,
	}
	if d.Kind == auction.AuctionKindReserve {
		details.ReservePrice = strconv.FormatUint(d.ReservePrice, 10)
	}
	if d.Kind == auction.AuctionKindScheduled {
		details.MinimumBid = strconv.FormatUint(d.MinimumBid, 10)
	}
	if d.Bidder != "" {
		details.BidAmount = strconv.FormatUint(d.BidAmount, 10)
	}
	return details
}

// invalidateAuctionCache 状态变更后失效详情缓存
func invalidateAuctionCache(ctx context.Context, svcCtx *svc.ServerCtx, collectionAddr, tokenID string) {
	if svcCtx.KvStore == nil {
		return
	}
	cacheKey := getAuctionDetailsCacheKey(svcCtx.C.ProjectCfg.Name, svcCtx.C.ChainCfg.Name, collectionAddr, tokenID)
	if _, err := svcCtx.KvStore.Del(cacheKey); err != nil {
		xzap.WithContext(ctx).Warn("failed on invalidate auction details cache",
			zap.String("collection_addr", collectionAddr), zap.String("token_id", tokenID), zap.Error(err))
	}
}
