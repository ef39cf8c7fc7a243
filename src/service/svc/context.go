package svc

import (
	"context"
	"strings"

	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/kv"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"gorm.io/gorm"

	"github.com/ProjectsTask/EasySwapAuction/src/auction"
	"github.com/ProjectsTask/EasySwapAuction/src/chain"
	"github.com/ProjectsTask/EasySwapAuction/src/config"
	"github.com/ProjectsTask/EasySwapAuction/src/dao"
	"github.com/ProjectsTask/EasySwapAuction/src/pkg/logger/xzap"
	"github.com/ProjectsTask/EasySwapAuction/src/pkg/stores/gdb"
	"github.com/ProjectsTask/EasySwapAuction/src/pkg/stores/xkv"
	"github.com/ProjectsTask/EasySwapAuction/src/service/mq"
)

type ServerCtx struct {
	C       *config.Config
	DB      *gorm.DB
	Dao     *dao.Dao
	KvStore *xkv.Store
	Engine  *auction.Engine
}

// AdminList 基于配置地址列表的管理员能力校验
// 地址比较大小写不敏感
type AdminList struct {
	admins map[string]struct{}
}

func NewAdminList(addresses []string) *AdminList {
	admins := make(map[string]struct{}, len(addresses))
	for _, addr := range addresses {
		admins[strings.ToLower(addr)] = struct{}{}
	}
	return &AdminList{admins: admins}
}

func (a *AdminList) IsAdministrator(caller string) bool {
	_, ok := a.admins[strings.ToLower(caller)]
	return ok
}

// NewServiceContext 初始化服务上下文
// 该函数负责初始化后端服务所需的所有基础设施组件
func NewServiceContext(c *config.Config) (*ServerCtx, error) {
	// 1. 初始化日志系统 (Zap Logger)
	_, err := xzap.SetUp(c.Log)
	if err != nil {
		return nil, err
	}

	var kvConf kv.KvConf
	// 2. 构造 Redis 配置
	for _, con := range c.Kv.Redis {
		kvConf = append(kvConf, cache.NodeConf{
			RedisConf: redis.RedisConf{
				Host: con.Host,
				Type: con.Type,
				Pass: con.Pass,
			},
			Weight: 1,
		})
	}

	// 3. 初始化 Redis 客户端 (xkv Store)
	store := xkv.NewStore(kvConf)
	// 4. 初始化数据库连接 (GORM)
	db, err := gdb.NewDB(c.DB)
	if err != nil {
		return nil, err
	}

	// 5. 初始化数据访问层 (DAO)
	daoInst := dao.New(context.Background(), db, store)

	// 6. 初始化账本高度来源
	heightSource, err := chain.NewHeightSource(context.Background(), c.ChainCfg)
	if err != nil {
		return nil, err
	}

	// 7. 组装拍卖引擎: 端口适配器全部落在 DAO 层, 通知走 Redis 队列
	engine, err := auction.New(context.Background(),
		auction.Config{
			EngineAccount:        c.MarketplaceCfg.EngineAccount,
			MarketplaceRecipient: c.MarketplaceCfg.MarketplaceRecipient,
			MaxSoldBatch:         c.MarketplaceCfg.MaxSoldBatch,
		},
		auction.Deps{
			Custody:  dao.NewCustodyRegistry(daoInst),
			Royalty:  dao.NewRoyaltyRegistry(daoInst),
			Rail:     dao.NewAccountRail(daoInst),
			Height:   heightSource,
			Admin:    NewAdminList(c.MarketplaceCfg.AdminAddresses),
			Notifier: mq.NewLifecycleNotifier(store, c.ProjectCfg.Name, c.ChainCfg.Name),
			Store:    dao.NewEngineStore(daoInst),
		})
	if err != nil {
		return nil, err
	}

	// 8. 组装 ServerCtx 对象
	serverCtx := NewServerCtx(
		WithDB(db),
		WithKv(store),
		WithDao(daoInst),
		WithEngine(engine),
	)
	serverCtx.C = c

	return serverCtx, nil
}
