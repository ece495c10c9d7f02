package cmd

import (
	"context"
	"fmt"
	"strings"

	"fintrack/blob"
	"fintrack/config"
	"fintrack/database"
	"fintrack/middleware"
	"fintrack/router"
	"fintrack/service"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var port string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 HTTP 服务",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("加载配置失败: %w", err)
		}
		if port != "" {
			cfg.Server.Port = normalizePort(port)
			log.Infof("命令行指定端口: %s", cfg.Server.Port)
		}
		config.PrintConfig()
		return serve(cmd.Context(), cfg)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "监听端口，如: 8080 或 :8080")
}

// normalizePort 自动添加冒号前缀
func normalizePort(p string) string {
	if !strings.HasPrefix(p, ":") {
		return ":" + p
	}
	return p
}

func serve(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	middleware.InitJWT(cfg)

	backend, err := database.OpenStore(cfg)
	if err != nil {
		return fmt.Errorf("记录存储初始化失败: %w", err)
	}
	defer backend.Close()

	blobs, err := blob.Open(ctx, cfg.Blob)
	if err != nil {
		return fmt.Errorf("附件存储初始化失败: %w", err)
	}

	r := router.SetupRouter(cfg, router.Deps{
		Store: backend.Store,
		Users: backend.Users,
		Blobs: blobs,
		Email: service.NewEmailService(&cfg.Email),
	})

	log.Info("==========================================")
	log.Info("  💰 FinTrack 已启动")
	if backend.Demo {
		log.Info("  ⚠️  演示模式：无需登录，数据不会持久化")
	}
	log.Info("==========================================")
	log.Infof("  Swagger:  http://localhost%s/swagger/index.html", cfg.Server.Port)
	log.Infof("  API接口:  http://localhost%s/api/v1/", cfg.Server.Port)
	log.Info("==========================================")

	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("服务器启动失败: %w", err)
	}
	return nil
}
