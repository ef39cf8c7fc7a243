package chain

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"github.com/zeromicro/go-zero/core/threading"
	"go.uber.org/zap"

	"github.com/ProjectsTask/EasySwapAuction/src/auction"
	"github.com/ProjectsTask/EasySwapAuction/src/common/utils"
	"github.com/ProjectsTask/EasySwapAuction/src/config"
	"github.com/ProjectsTask/EasySwapAuction/src/pkg/logger/xzap"
)

const defaultPollInterval = 10 // 轮询间隔兜底 (秒)

// RPCHeightSource 基于 RPC 节点的账本高度来源
// 后台循环轮询最新区块号并缓存, 读高度不阻塞在网络调用上
type RPCHeightSource struct {
	client   *ethclient.Client
	interval time.Duration
	height   atomic.Uint64
	primed   atomic.Bool
}

// NewRPCHeightSource 连接 RPC 节点并做一次初始高度拉取
func NewRPCHeightSource(ctx context.Context, cfg config.ChainCfg) (*RPCHeightSource, error) {
	client, err := ethclient.DialContext(ctx, cfg.Endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "failed on dial rpc endpoint")
	}

	interval := time.Duration(cfg.PollInterval) * time.Second
	if interval <= 0 {
		interval = defaultPollInterval * time.Second
	}

	s := &RPCHeightSource{
		client:   client,
		interval: interval,
	}
	// 初始拉取失败不阻塞启动, 轮询循环会继续尝试
	_ = utils.Retry("prime block height", 3, time.Second, func() error {
		number, err := client.BlockNumber(ctx)
		if err != nil {
			return err
		}
		s.height.Store(number)
		s.primed.Store(true)
		return nil
	})
	return s, nil
}

// Start 启动后台高度轮询循环
func (s *RPCHeightSource) Start(ctx context.Context) {
	threading.GoSafe(func() {
		s.pollLoop(ctx)
	})
}

func (s *RPCHeightSource) pollLoop(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			number, err := s.client.BlockNumber(ctx)
			if err != nil {
				xzap.WithContext(ctx).Warn("failed on poll block number", zap.Error(err))
				continue
			}
			s.height.Store(number)
			s.primed.Store(true)
		}
	}
}

// CurrentHeight 返回最近缓存的高度
func (s *RPCHeightSource) CurrentHeight(ctx context.Context) (uint64, error) {
	if !s.primed.Load() {
		// 初始拉取失败且轮询尚未成功过, 宁可拒绝操作也不用零高度
		return 0, auction.ErrHeightUnavailable
	}
	return s.height.Load(), nil
}

// LocalHeightSource 本地递增高度, 用于开发联调环境
type LocalHeightSource struct {
	mu     sync.Mutex
	height uint64
}

func NewLocalHeightSource(start uint64) *LocalHeightSource {
	return &LocalHeightSource{height: start}
}

func (s *LocalHeightSource) CurrentHeight(ctx context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.height, nil
}

// Advance 推进本地高度
func (s *LocalHeightSource) Advance(delta uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.height += delta
}

// NewHeightSource 按配置选择高度来源
func NewHeightSource(ctx context.Context, cfg config.ChainCfg) (auction.HeightSource, error) {
	switch cfg.Mode {
	case "local":
		return NewLocalHeightSource(1), nil
	default:
		source, err := NewRPCHeightSource(ctx, cfg)
		if err != nil {
			return nil, err
		}
		source.Start(ctx)
		return source, nil
	}
}
