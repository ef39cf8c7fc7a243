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

// SetMarketplaceFeeHandler 设置全局平台费率 (管理员)
func SetMarketplaceFeeHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.SetMarketplaceFeeReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		req.Caller = utils.ToValidateAddress(req.Caller)

		if err := service.SetMarketplaceFee(c.Request.Context(), svcCtx, req); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, nil)
	}
}

// GetMarketplaceFeeHandler 查询全局平台费率
func GetMarketplaceFeeHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		xhttp.OkJson(c, service.GetMarketplaceFee(c.Request.Context(), svcCtx))
	}
}

// SetCollectionFeeHandler 设置集合首次销售费率 (管理员)
func SetCollectionFeeHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.SetCollectionFeeReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		req.Caller = utils.ToValidateAddress(req.Caller)
		req.CollectionAddr = utils.ToValidateAddress(req.CollectionAddr)

		if err := service.SetCollectionFee(c.Request.Context(), svcCtx, req); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, nil)
	}
}

// GetCollectionFeeHandler 查询集合首次销售费率
func GetCollectionFeeHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		collectionAddr := c.Param("collection_addr")
		if !utils.IsHexAddress(collectionAddr) {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		xhttp.OkJson(c, service.GetCollectionFee(c.Request.Context(), svcCtx, utils.ToValidateAddress(collectionAddr)))
	}
}

// MarkSoldHandler 标记资产已售状态 (管理员), 支持单个与批量
func MarkSoldHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.MarkSoldReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		req.Caller = utils.ToValidateAddress(req.Caller)
		req.CollectionAddr = utils.ToValidateAddress(req.CollectionAddr)

		if err := service.MarkSold(c.Request.Context(), svcCtx, req); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, nil)
	}
}

// GetSoldHandler 查询资产已售状态
func GetSoldHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		collectionAddr := c.Param("collection_addr")
		tokenID := c.Param("token_id")
		if !utils.IsHexAddress(collectionAddr) || tokenID == "" {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		xhttp.OkJson(c, service.GetSold(c.Request.Context(), svcCtx, utils.ToValidateAddress(collectionAddr), tokenID))
	}
}
