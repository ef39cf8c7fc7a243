package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ProjectsTask/EasySwapAuction/src/api/middleware"
	v1 "github.com/ProjectsTask/EasySwapAuction/src/api/v1"
	"github.com/ProjectsTask/EasySwapAuction/src/common/utils"
	"github.com/ProjectsTask/EasySwapAuction/src/service/svc"
)

func NewRouter(svcCtx *svc.ServerCtx) *gin.Engine {
	// 强制控制台颜色输出，使日志更易读
	gin.ForceConsoleColor()
	// 设置 Gin 为发布模式 (ReleaseMode)
	gin.SetMode(gin.ReleaseMode)

	// 注册自定义参数校验规则 (address 等)
	if err := utils.RegisterValidators(); err != nil {
		panic(err)
	}

	r := gin.New()                        // 新建一个gin引擎实例
	r.Use(middleware.RecoverMiddleware()) // 使用自定义的恢复中间件，处理 Panic
	r.Use(middleware.RLog())              // 使用请求日志中间件，记录API访问日志

	r.Use(cors.New(cors.Config{ // 使用cors中间件，配置跨域访问策略
		AllowAllOrigins:  true,                                                         // 允许所有源
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}, // 允许的方法
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "X-CSRF-Token", "Authorization", "AccessToken", "Token"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Access-Control-Allow-Origin", "Access-Control-Allow-Headers", "X-GW-Error-Code", "X-GW-Error-Message"},
		AllowCredentials: true,
		MaxAge:           1 * time.Hour,
	}))
	loadV1(r, svcCtx) // 加载 v1 版本的路由分组

	return r
}

// loadV1 注册 v1 版本的全部路由
func loadV1(r *gin.Engine, svcCtx *svc.ServerCtx) {
	apiV1 := r.Group("/api/v1")

	auctions := apiV1.Group("/auctions")
	{
		auctions.POST("/reserve", v1.CreateReserveAuctionHandler(svcCtx))     // 创建保留价拍卖
		auctions.DELETE("/reserve", v1.CancelReserveAuctionHandler(svcCtx))   // 取消保留价拍卖
		auctions.POST("/scheduled", v1.CreateScheduledAuctionHandler(svcCtx)) // 创建定时拍卖
		auctions.POST("/bids", v1.PlaceBidHandler(svcCtx))                    // 出价
		auctions.DELETE("/bids", v1.CancelBidHandler(svcCtx))                 // 撤回出价
		auctions.POST("/settle", v1.SettleAuctionHandler(svcCtx))             // 结算拍卖
		auctions.GET("/:collection_addr/:token_id", v1.AuctionDetailsHandler(svcCtx))
	}

	payments := apiV1.Group("/payments")
	{
		payments.POST("/withdraw", v1.WithdrawHandler(svcCtx))            // 提取托管余额
		payments.GET("/escrow/:address", v1.EscrowBalanceHandler(svcCtx)) // 查询托管余额
	}

	admin := apiV1.Group("/admin")
	{
		admin.POST("/fees/marketplace", v1.SetMarketplaceFeeHandler(svcCtx)) // 设置平台费率
		admin.GET("/fees/marketplace", v1.GetMarketplaceFeeHandler(svcCtx))
		admin.POST("/fees/collections", v1.SetCollectionFeeHandler(svcCtx)) // 设置集合首次销售费率
		admin.GET("/fees/collections/:collection_addr", v1.GetCollectionFeeHandler(svcCtx))
		admin.POST("/items/sold", v1.MarkSoldHandler(svcCtx)) // 标记已售
		admin.GET("/items/sold/:collection_addr/:token_id", v1.GetSoldHandler(svcCtx))
	}
}
