package main

import (
	"fintrack/cmd"

	"github.com/joho/godotenv"
)

// @title FinTrack API
// @version 1.0
// @description 个人财务管理 API，支持收支记录、储蓄目标、账单提醒与 ITR/GST 报表
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// .env 可选，存在时注入环境变量
	_ = godotenv.Load()
	cmd.Execute()
}
