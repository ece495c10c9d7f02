package database

import (
	"context"
	"testing"

	"fintrack/config"
	"fintrack/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestDialector(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database = config.DatabaseConfig{Host: "db", Port: "5432", Username: "u", Password: "p", DBName: "fin"}

	cfg.Store.Driver = "postgres"
	d, err := Dialector(cfg)
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	cfg.Store.Driver = "mysql"
	d, err = Dialector(cfg)
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())

	cfg.Store.Driver = "oracle"
	_, err = Dialector(cfg)
	assert.Error(t, err)
}

func TestOpenStore_Demo(t *testing.T) {
	cfg := &config.Config{}
	cfg.Store.Driver = "memory"

	b, err := OpenStore(cfg)
	require.NoError(t, err)
	assert.True(t, b.Demo)
	assert.Nil(t, b.Users)
	assert.NoError(t, b.Close())

	// 演示数据只读
	err = b.Store.CreateIncome(context.Background(), &models.Income{UserID: 1, Amount: 1, Date: "2024-01-01"})
	assert.Error(t, err)
}

func TestOpenStore_DemoMissingSeed(t *testing.T) {
	cfg := &config.Config{}
	cfg.Store.Driver = "memory"
	cfg.Store.SeedFile = "/nonexistent/seed.json"

	_, err := OpenStore(cfg)
	assert.Error(t, err)
}

func TestSeedCategories_SkipsWhenPresent(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `expense_categories`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `income_categories`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(6))

	require.NoError(t, SeedCategories(db))
	require.NoError(t, mock.ExpectationsWereMet())
}
