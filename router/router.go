package router

import (
	"time"

	"fintrack/api"
	"fintrack/blob"
	"fintrack/config"
	_ "fintrack/docs"
	"fintrack/logger"
	"fintrack/middleware"
	"fintrack/service"
	"fintrack/store"
	"fintrack/store/memory"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Deps 路由依赖
type Deps struct {
	Store store.Store
	// Users 为 nil 表示演示模式：不校验 JWT，所有请求以演示用户身份访问
	Users store.UserStore
	Blobs blob.Store
	Email *service.EmailService
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, deps Deps) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery(), logger.GinLogger(), CORSMiddleware())
	r.MaxMultipartMemory = int64(cfg.Blob.MaxUploadMB) << 20

	// 本地附件目录
	if local, ok := deps.Blobs.(*blob.Local); ok {
		r.Static("/uploads", local.Dir())
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"demo":   deps.Users == nil,
		})
	})

	v1 := r.Group("/api/v1")
	{
		authHandler := api.NewAuthHandler(cfg, deps.Users)
		auth := v1.Group("/auth")
		auth.Use(middleware.LoginRateLimit(10, time.Minute))
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		v1.GET("/categories", api.NewCategoryHandler(deps.Store).List)

		authorized := v1.Group("")
		if deps.Users == nil {
			authorized.Use(middleware.DemoSession(memory.DemoUserID))
		} else {
			authorized.Use(middleware.JWTAuth())
		}
		{
			authorized.GET("/auth/profile", authHandler.GetProfile)
			authorized.PUT("/auth/password", authHandler.ChangePassword)

			incomeHandler := api.NewIncomeHandler(deps.Store, deps.Blobs, cfg.Blob.MaxUploadMB)
			incomes := authorized.Group("/incomes")
			{
				incomes.POST("", incomeHandler.Create)
				incomes.GET("", incomeHandler.List)
				incomes.GET("/:id", incomeHandler.Get)
				incomes.PUT("/:id", incomeHandler.Update)
				incomes.DELETE("/:id", incomeHandler.Delete)
				incomes.POST("/:id/invoice", incomeHandler.UploadInvoice)
			}

			expenseHandler := api.NewExpenseHandler(deps.Store, deps.Blobs, cfg.Blob.MaxUploadMB)
			expenses := authorized.Group("/expenses")
			{
				expenses.POST("", expenseHandler.Create)
				expenses.GET("", expenseHandler.List)
				expenses.GET("/:id", expenseHandler.Get)
				expenses.PUT("/:id", expenseHandler.Update)
				expenses.DELETE("/:id", expenseHandler.Delete)
				expenses.POST("/:id/receipt", expenseHandler.UploadReceipt)
			}

			goalHandler := api.NewGoalHandler(deps.Store)
			goals := authorized.Group("/goals")
			{
				goals.POST("", goalHandler.Create)
				goals.GET("", goalHandler.List)
				goals.GET("/:id", goalHandler.Get)
				goals.PUT("/:id", goalHandler.Update)
				goals.DELETE("/:id", goalHandler.Delete)
			}

			reminderHandler := api.NewReminderHandler(deps.Store, deps.Users, deps.Email)
			reminders := authorized.Group("/reminders")
			{
				reminders.POST("", reminderHandler.Create)
				reminders.GET("", reminderHandler.List)
				reminders.POST("/notify", reminderHandler.Notify)
				reminders.GET("/:id", reminderHandler.Get)
				reminders.PUT("/:id", reminderHandler.Update)
				reminders.DELETE("/:id", reminderHandler.Delete)
				reminders.POST("/:id/pay", reminderHandler.Pay)
				reminders.POST("/:id/snooze", reminderHandler.Snooze)
			}

			authorized.GET("/dashboard", api.NewDashboardHandler(deps.Store).Get)

			reportHandler := api.NewReportHandler(deps.Store, deps.Email, cfg.Report.Product)
			reports := authorized.Group("/reports")
			{
				reports.GET("/:kind", reportHandler.Download)
				reports.GET("/:kind/preview", reportHandler.Preview)
				reports.GET("/:kind/csv", reportHandler.CSV)
				reports.GET("/:kind/overview", reportHandler.Overview)
				reports.POST("/:kind/email", reportHandler.Email)
			}

			authorized.GET("/export/json", api.NewExportHandler(deps.Store).ExportJSON)
		}
	}

	return r
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
