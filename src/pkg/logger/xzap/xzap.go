package xzap

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ProjectsTask/EasySwapAuction/src/pkg/logger"
)

// Logger 对 zap.Logger 的轻量封装
// 通过 WithContext 获取, 便于后续在上下文中附加 trace 信息
type Logger struct {
	l *zap.Logger
}

var (
	mu     sync.RWMutex
	global = &Logger{l: zap.NewNop()}
)

// SetUp 按配置初始化全局日志实例
// console 模式输出到标准输出, file 模式使用 lumberjack 做日志轮转
func SetUp(c logger.LogConf) (*Logger, error) {
	level := zapcore.InfoLevel
	if c.Level != "" {
		if err := level.UnmarshalText([]byte(c.Level)); err != nil {
			return nil, errors.Wrap(err, "failed on parse log level")
		}
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var ws zapcore.WriteSyncer
	switch c.Mode {
	case "file":
		if c.Path == "" {
			return nil, errors.New("log path is required in file mode")
		}
		ws = zapcore.AddSync(&lumberjack.Logger{
			Filename: filepath.Join(c.Path, c.ServiceName+".log"),
			MaxSize:  c.MaxSize,
			MaxAge:   c.KeepDays,
			Compress: c.Compress,
		})
	default:
		ws = zapcore.AddSync(os.Stdout)
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), ws, level)
	l := zap.New(core, zap.AddCaller())
	if c.ServiceName != "" {
		l = l.With(zap.String("service", c.ServiceName))
	}

	mu.Lock()
	global = &Logger{l: l}
	mu.Unlock()

	return global, nil
}

// WithContext 获取带上下文的日志实例
// 目前上下文仅作为占位, 保留给后续接入链路追踪
func WithContext(ctx context.Context) *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

func (x *Logger) Debug(msg string, fields ...zap.Field) { x.l.Debug(msg, fields...) }
func (x *Logger) Info(msg string, fields ...zap.Field)  { x.l.Info(msg, fields...) }
func (x *Logger) Warn(msg string, fields ...zap.Field)  { x.l.Warn(msg, fields...) }
func (x *Logger) Error(msg string, fields ...zap.Field) { x.l.Error(msg, fields...) }
