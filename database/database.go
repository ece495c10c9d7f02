package database

import (
	"fmt"
	"time"

	"fintrack/config"
	"fintrack/models"
	"fintrack/store"
	"fintrack/store/gormstore"
	"fintrack/store/memory"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Dialector 按 store.driver 构造 gorm 方言
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	db := cfg.Database
	switch cfg.Store.Driver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
			db.Username, db.Password, db.Host, db.Port, db.DBName, db.Charset)
		return mysql.Open(dsn), nil
	case "postgres":
		sslmode := db.SSLMode
		if sslmode == "" {
			sslmode = "disable"
		}
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			db.Host, db.Port, db.Username, db.Password, db.DBName, sslmode)
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("不支持的数据库类型: %s", cfg.Store.Driver)
	}
}

// Init 初始化数据库连接
func Init(cfg *config.Config) error {
	dialector, err := Dialector(cfg)
	if err != nil {
		return err
	}

	level := logger.Info
	if cfg.Server.Mode == "release" {
		level = logger.Warn
	}
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(log.StandardLogger(), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	if err := Migrate(DB); err != nil {
		return err
	}

	log.Info("数据库初始化成功")
	return nil
}

// Migrate 自动迁移并初始化默认类别
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Income{},
		&models.Expense{},
		&models.SavingGoal{},
		&models.Reminder{},
		&models.ExpenseCategory{},
		&models.IncomeCategory{},
	); err != nil {
		return fmt.Errorf("迁移数据表失败: %w", err)
	}

	// 历史数据没有 status 字段时默认 active
	_ = db.Model(&models.User{}).
		Where("status IS NULL OR status = ''").
		Update("status", models.UserStatusActive).Error

	return SeedCategories(db)
}

// SeedCategories 初始化默认类别（仅当表为空时）
func SeedCategories(db *gorm.DB) error {
	var count int64
	db.Model(&models.ExpenseCategory{}).Count(&count)
	if count == 0 {
		cats := models.DefaultExpenseCategories()
		for i := range cats {
			cats[i].ID = 0
		}
		if err := db.Create(&cats).Error; err != nil {
			return fmt.Errorf("初始化消费类别失败: %w", err)
		}
	}

	db.Model(&models.IncomeCategory{}).Count(&count)
	if count == 0 {
		cats := models.DefaultIncomeCategories()
		for i := range cats {
			cats[i].ID = 0
		}
		if err := db.Create(&cats).Error; err != nil {
			return fmt.Errorf("初始化收入类别失败: %w", err)
		}
	}
	return nil
}

// Backend 启动时选定的存储后端
type Backend struct {
	Store store.Store
	// Users 演示模式下为 nil，此时不提供登录注册
	Users store.UserStore
	Demo  bool
}

// Close 关闭数据库连接
func (b *Backend) Close() error {
	if b.Demo || DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// OpenStore 按配置打开记录存储：memory 为演示模式，mysql / postgres 走 gorm
func OpenStore(cfg *config.Config) (*Backend, error) {
	if cfg.IsDemo() {
		mem := memory.New(memory.Config{})
		mem.SeedDemo(time.Now())
		if cfg.Store.SeedFile != "" {
			n, err := mem.LoadSeedFile(cfg.Store.SeedFile)
			if err != nil {
				return nil, err
			}
			log.Infof("已导入 %d 条种子记录: %s", n, cfg.Store.SeedFile)
		}
		log.Warn("未配置数据库，以演示模式运行，数据不会持久化")
		return &Backend{Store: mem, Demo: true}, nil
	}

	if err := Init(cfg); err != nil {
		return nil, err
	}
	gs := gormstore.New(DB)
	return &Backend{Store: gs, Users: gs}, nil
}
