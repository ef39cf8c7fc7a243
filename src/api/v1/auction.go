package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/ProjectsTask/EasySwapAuction/src/common/utils"
	"github.com/ProjectsTask/EasySwapAuction/src/pkg/errcode"
	"github.com/ProjectsTask/EasySwapAuction/src/pkg/xhttp"
	"github.com/ProjectsTask/EasySwapAuction/src/service/svc"
	service "github.com/ProjectsTask/EasySwapAuction/src/service/v1"
	"github.com/ProjectsTask/EasySwapAuction/src/types/v1"
)

// CreateReserveAuctionHandler 创建保留价拍卖
// 前置条件: 调用者持有资产并已授权引擎, 资产上无其他拍卖
func CreateReserveAuctionHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.CreateReserveAuctionReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		req.Caller = utils.ToValidateAddress(req.Caller)
		req.CollectionAddr = utils.ToValidateAddress(req.CollectionAddr)

		if err := service.CreateReserveAuction(c.Request.Context(), svcCtx, req); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, nil)
	}
}

// CancelReserveAuctionHandler 取消尚未开始的保留价拍卖 (仅创建者)
func CancelReserveAuctionHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.CancelAuctionReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		req.Caller = utils.ToValidateAddress(req.Caller)
		req.CollectionAddr = utils.ToValidateAddress(req.CollectionAddr)

		if err := service.CancelReserveAuction(c.Request.Context(), svcCtx, req); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, nil)
	}
}

// CreateScheduledAuctionHandler 创建定时拍卖
// 资产在创建时即转入引擎托管账户
func CreateScheduledAuctionHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.CreateScheduledAuctionReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		req.Caller = utils.ToValidateAddress(req.Caller)
		req.CollectionAddr = utils.ToValidateAddress(req.CollectionAddr)

		if err := service.CreateScheduledAuction(c.Request.Context(), svcCtx, req); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, nil)
	}
}

// SettleAuctionHandler 结算已届满的拍卖
func SettleAuctionHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.SettleAuctionReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		req.Caller = utils.ToValidateAddress(req.Caller)
		req.CollectionAddr = utils.ToValidateAddress(req.CollectionAddr)

		if err := service.SettleAuction(c.Request.Context(), svcCtx, req); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, nil)
	}
}

// AuctionDetailsHandler 查询拍卖详情
func AuctionDetailsHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		collectionAddr := c.Param("collection_addr")
		tokenID := c.Param("token_id")
		if !utils.IsHexAddress(collectionAddr) || tokenID == "" {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		resp, err := service.GetAuctionDetails(c.Request.Context(), svcCtx, utils.ToValidateAddress(collectionAddr), tokenID)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, resp)
	}
}
