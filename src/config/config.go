package config

import (
	"strings"

	"github.com/spf13/viper"

	logging "github.com/ProjectsTask/EasySwapAuction/src/pkg/logger"
	"github.com/ProjectsTask/EasySwapAuction/src/pkg/stores/gdb"
)

// Config 定义了应用程序的全局配置结构
type Config struct {
	Api            ApiCfg          `toml:"api" mapstructure:"api" json:"api"`                                     // HTTP 服务配置
	Monitor        *Monitor        `toml:"monitor" mapstructure:"monitor" json:"monitor"`                         // 监控相关配置
	Log            logging.LogConf `toml:"log" mapstructure:"log" json:"log"`                                     // 日志配置
	Kv             *KvConf         `toml:"kv" mapstructure:"kv" json:"kv"`                                        // KV存储配置 (Redis)
	DB             *gdb.Config     `toml:"db" mapstructure:"db" json:"db"`                                        // 数据库配置 (MySQL)
	ChainCfg       ChainCfg        `toml:"chain_cfg" mapstructure:"chain_cfg" json:"chain_cfg"`                   // 高度来源配置
	MarketplaceCfg MarketplaceCfg  `toml:"marketplace_cfg" mapstructure:"marketplace_cfg" json:"marketplace_cfg"` // 平台参数配置
	ProjectCfg     ProjectCfg      `toml:"project_cfg" mapstructure:"project_cfg" json:"project_cfg"`             // 项目名称配置
}

// ApiCfg 定义 HTTP 服务配置
type ApiCfg struct {
	Port string `toml:"port" mapstructure:"port" json:"port"` // 监听端口 (如 :9000)
}

// ChainCfg 定义账本高度来源
// Mode 为 chain 时通过 RPC 节点轮询高度, 为 local 时使用本地递增高度 (开发联调用)
type ChainCfg struct {
	Name         string `toml:"name" mapstructure:"name" json:"name"`                            // 链名称 (如: eth, sepolia)
	ID           int64  `toml:"id" mapstructure:"id" json:"id"`                                  // Chain ID
	Mode         string `toml:"mode" mapstructure:"mode" json:"mode"`                            // chain / local
	Endpoint     string `toml:"endpoint" mapstructure:"endpoint" json:"endpoint"`                // RPC 节点地址
	PollInterval int64  `toml:"poll_interval" mapstructure:"poll_interval" json:"poll_interval"` // 高度轮询间隔 (秒)
}

// MarketplaceCfg 定义平台参数
type MarketplaceCfg struct {
	EngineAccount        string   `toml:"engine_account" mapstructure:"engine_account" json:"engine_account"`                      // 引擎托管账户地址
	MarketplaceRecipient string   `toml:"marketplace_recipient" mapstructure:"marketplace_recipient" json:"marketplace_recipient"` // 平台费接收地址
	AdminAddresses       []string `toml:"admin_addresses" mapstructure:"admin_addresses" json:"admin_addresses"`                   // 管理员地址列表
	MaxSoldBatch         int      `toml:"max_sold_batch" mapstructure:"max_sold_batch" json:"max_sold_batch"`                      // 批量标记已售上限
}

// Monitor 定义监控配置
type Monitor struct {
	PprofEnable bool  `toml:"pprof_enable" mapstructure:"pprof_enable" json:"pprof_enable"` // 是否开启 Pprof
	PprofPort   int64 `toml:"pprof_port" mapstructure:"pprof_port" json:"pprof_port"`       // Pprof 监听端口
}

// ProjectCfg 定义项目配置
type ProjectCfg struct {
	Name string `toml:"name" mapstructure:"name" json:"name"` // 项目名称
}

// KvConf 定义 Key-Value 存储配置
type KvConf struct {
	Redis []*Redis `toml:"redis" json:"redis"` // Redis 列表（可能支持多实例）
}

// Redis 定义 Redis 连接配置
type Redis struct {
	Host string `toml:"host" json:"host"` // Redis 主机地址
	Type string `toml:"type" json:"type"` // Redis 类型 (node, cluster)
	Pass string `toml:"pass" json:"pass"` // Redis 密码
}

// UnmarshalConfig 加载并解析指定路径的配置文件
// @params configFilePath: 配置文件路径
func UnmarshalConfig(configFilePath string) (*Config, error) {
	viper.SetConfigFile(configFilePath) // 设置配置文件路径
	viper.SetConfigType("toml")         // 设置配置文件类型为 TOML
	viper.AutomaticEnv()                // 自动读取环境变量
	viper.SetEnvPrefix("CNFT")          // 设置环境变量前缀，如 CNFT_DB_HOST
	replacer := strings.NewReplacer(".", "_")
	viper.SetEnvKeyReplacer(replacer) // 替换 key 中的 . 为 _

	if err := viper.ReadInConfig(); err != nil { // 读取配置
		return nil, err
	}

	var c Config
	if err := viper.Unmarshal(&c); err != nil { // 解析到结构体
		return nil, err
	}

	return &c, nil
}

// UnmarshalCmdConfig 加载并解析默认配置文件 (配置路径由 cobra 启动时注入 viper)
func UnmarshalCmdConfig() (*Config, error) {
	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var c Config

	if err := viper.Unmarshal(&c); err != nil {
		return nil, err
	}

	return &c, nil
}
