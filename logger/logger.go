// Package logger 基于 logrus 的日志初始化与 gin 请求日志
package logger

import (
	"os"
	"strings"
	"time"

	"fintrack/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Setup 根据配置初始化全局 logrus
func Setup(cfg config.LogConfig) error {
	level := log.InfoLevel
	if cfg.Level != "" {
		lv, err := log.ParseLevel(cfg.Level)
		if err != nil {
			return err
		}
		level = lv
	}
	// LOG_LEVEL 环境变量优先
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		lv, err := log.ParseLevel(env)
		if err != nil {
			return err
		}
		level = lv
	}
	log.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "json":
		log.SetFormatter(&log.JSONFormatter{TimestampFormat: time.RFC3339})
	default:
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"})
	}
	log.SetOutput(os.Stdout)
	return nil
}

// RequestIDHeader 请求 ID 响应头，客户端传入时沿用
const RequestIDHeader = "X-Request-ID"

// GinLogger 使用 logrus 记录每个请求
func GinLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		reqID := c.GetHeader(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header(RequestIDHeader, reqID)
		c.Next()

		entry := log.WithFields(log.Fields{
			"request_id": reqID,
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"ip":         c.ClientIP(),
			"latency":    time.Since(start).String(),
		})
		if uid, ok := c.Get("userID"); ok {
			entry = entry.WithField("user_id", uid)
		}
		if len(c.Errors) > 0 {
			entry.Error(c.Errors.String())
			return
		}
		switch {
		case c.Writer.Status() >= 500:
			entry.Error("request failed")
		case c.Writer.Status() >= 400:
			entry.Warn("request rejected")
		default:
			entry.Info("request")
		}
	}
}
