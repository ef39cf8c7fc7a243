package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd 根命令, 子命令 (daemon) 挂载在其下
var rootCmd = &cobra.Command{
	Use:   "easyswap-auction",
	Short: "auction and settlement engine for tokenized digital art",
	Long:  "auction and settlement engine for tokenized digital art",
}

// Execute 解析命令行参数并执行相应的命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "conf", "./config/config.toml", "conf file path")
}

// initConfig 将配置文件路径注入 viper, 供 config.UnmarshalCmdConfig 读取
func initConfig() {
	viper.SetConfigFile(cfgFile)
	viper.SetConfigType("toml")
}
