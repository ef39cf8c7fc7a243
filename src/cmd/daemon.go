package cmd

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof" // 引入 pprof 用于性能分析
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ProjectsTask/EasySwapAuction/src/api/router"
	"github.com/ProjectsTask/EasySwapAuction/src/app"
	"github.com/ProjectsTask/EasySwapAuction/src/config"
	"github.com/ProjectsTask/EasySwapAuction/src/pkg/logger/xzap"
	"github.com/ProjectsTask/EasySwapAuction/src/service/svc"
)

// DaemonCmd 定义了 "daemon" 子命令
var DaemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "serve auction and settlement api.", // 命令简短描述：启动拍卖结算服务
	Long:  "serve auction and settlement api.",
	Run: func(cmd *cobra.Command, args []string) {
		// 使用 WaitGroup 等待所有 goroutine 完成
		wg := &sync.WaitGroup{}
		wg.Add(1)

		// 创建一个带有取消功能的 Context，用于优雅退出
		ctx, cancel := context.WithCancel(context.Background())

		// 退出信号通知chan，用于接收服务启动或运行过程中的错误
		onServeExit := make(chan error, 1)

		// 启动一个 goroutine 来运行主服务逻辑
		go func() {
			defer wg.Done()

			// 1. 读取和解析配置文件 (config.toml)
			cfg, err := config.UnmarshalCmdConfig()
			if err != nil {
				xzap.WithContext(ctx).Error("Failed to unmarshal config", zap.Error(err))
				onServeExit <- err
				return
			}

			// 2. 初始化服务上下文: 日志, DB, Redis, 高度来源与拍卖引擎
			serverCtx, err := svc.NewServiceContext(cfg)
			if err != nil {
				xzap.WithContext(ctx).Error("Failed to create server context", zap.Error(err))
				onServeExit <- err
				return
			}

			xzap.WithContext(ctx).Info("auction server start", zap.Any("config", cfg))

			// 3. 初始化 Gin 路由实例
			r := router.NewRouter(serverCtx)
			platform, err := app.NewPlatform(cfg, r, serverCtx)
			if err != nil {
				xzap.WithContext(ctx).Error("Failed to create platform", zap.Error(err))
				onServeExit <- err
				return
			}

			// 4. 如果配置开启了 Pprof，启动 HTTP 服务进行性能监控
			if cfg.Monitor != nil && cfg.Monitor.PprofEnable {
				go func() {
					_ = http.ListenAndServe(fmt.Sprintf("0.0.0.0:%d", cfg.Monitor.PprofPort), nil)
				}()
			}

			// 5. 启动 HTTP 服务 (阻塞)
			platform.Start()
		}()

		// 信号通知chan，用于接收系统信号
		onSignal := make(chan os.Signal, 1)
		// 监听 SIGINT (Ctrl+C) 和 SIGTERM (kill) 信号，实现优雅退出
		signal.Notify(onSignal, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-onSignal:
			switch sig {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM:
				cancel()
				xzap.WithContext(ctx).Info("Exit by signal", zap.String("signal", sig.String()))
				os.Exit(0)
			}
		case err := <-onServeExit:
			cancel()
			xzap.WithContext(ctx).Error("Exit by error", zap.Error(err))
		}

		wg.Wait()
	},
}

func init() {
	// 将 daemon 命令添加到 root 命令中，使其可以被执行
	rootCmd.AddCommand(DaemonCmd)
}
