// Package cmd 命令行入口
package cmd

import (
	"os"

	"fintrack/config"
	"fintrack/logger"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version 版本号，构建时可通过 -ldflags 覆盖
var Version = "1.0.0"

var configFile string

var rootCmd = &cobra.Command{
	Use:           "fintrack",
	Short:         "个人财务管理服务",
	Long:          "fintrack 记录收入与支出，跟踪储蓄目标和账单提醒，并导出 ITR/GST 报表。",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "外部配置文件路径（可选）")
	rootCmd.AddCommand(serveCmd, exportCmd, versionCmd)
}

// Execute 执行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Errorf("执行失败: %v", err)
		os.Exit(1)
	}
}

// loadConfig 加载配置并初始化日志
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, err
	}
	if err := logger.Setup(cfg.Log); err != nil {
		return nil, err
	}
	return cfg, nil
}
