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

// WithdrawHandler 提取托管余额
// 余额在转账前清零, 转账失败时恢复
func WithdrawHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.WithdrawReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		req.Caller = utils.ToValidateAddress(req.Caller)

		resp, err := service.Withdraw(c.Request.Context(), svcCtx, req)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, resp)
	}
}

// EscrowBalanceHandler 查询托管余额
func EscrowBalanceHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		address := c.Param("address")
		if !utils.IsHexAddress(address) {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		resp, err := service.GetEscrowBalance(c.Request.Context(), svcCtx, utils.ToValidateAddress(address))
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, resp)
	}
}
