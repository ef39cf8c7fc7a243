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

// PlaceBidHandler 出价
// 保留价拍卖: 首个达到保留价的出价使拍卖开始; 之后只接受严格更高的出价
// 定时拍卖: 仅在开始高度与结束高度之间接受出价
func PlaceBidHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.PlaceBidReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		req.Caller = utils.ToValidateAddress(req.Caller)
		req.CollectionAddr = utils.ToValidateAddress(req.CollectionAddr)

		if err := service.PlaceBid(c.Request.Context(), svcCtx, req); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, nil)
	}
}

// CancelBidHandler 撤回出价 (仅保留价拍卖开始前)
func CancelBidHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.CancelBidReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		req.Caller = utils.ToValidateAddress(req.Caller)
		req.CollectionAddr = utils.ToValidateAddress(req.CollectionAddr)

		if err := service.CancelBid(c.Request.Context(), svcCtx, req); err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, nil)
	}
}
