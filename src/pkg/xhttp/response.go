package xhttp

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ProjectsTask/EasySwapAuction/src/pkg/errcode"
)

// Response 统一响应结构
type Response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

// OkJson 返回成功响应
func OkJson(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: errcode.CodeOK,
		Msg:  "success",
		Data: data,
	})
}

// Error 返回错误响应
// 业务错误 (*errcode.Err) 按其错误码返回, 其余错误统一归为服务内部错误
func Error(c *gin.Context, err error) {
	if e, ok := err.(*errcode.Err); ok {
		c.JSON(e.HTTPStatus(), Response{
			Code: e.Code(),
			Msg:  e.Msg(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, Response{
		Code: errcode.CodeUnexpected,
		Msg:  err.Error(),
	})
}
