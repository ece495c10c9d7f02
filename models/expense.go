package models

import (
	"time"

	"gorm.io/gorm"
)

// Expense 消费记录模型
type Expense struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	UserID     uint           `json:"user_id" gorm:"index;not null"`
	Category   string         `json:"category" gorm:"size:50"`
	Amount     float64        `json:"amount" gorm:"type:decimal(12,2);not null"`
	Date       string         `json:"date" gorm:"size:10;index;not null"`
	Notes      string         `json:"notes" gorm:"size:500"`
	ReceiptURL string         `json:"receipt_url" gorm:"size:1024"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (Expense) TableName() string {
	return "expenses"
}

// Normalize 规整字段
func (e *Expense) Normalize() {
	e.Category = trim(e.Category)
	e.Date = trim(e.Date)
	e.Notes = trim(e.Notes)
	e.ReceiptURL = trim(e.ReceiptURL)
	e.Amount = CoerceAmount(e.Amount)
}

// 默认消费类别
const (
	CategoryHousing   = "Housing"
	CategoryFood      = "Food"
	CategoryTransport = "Transport"
	CategoryShopping  = "Shopping"
	CategoryHealth    = "Health"
	CategoryUtilities = "Utilities"
	CategoryOther     = "Other"
)

// GetCategories 获取默认消费类别
func GetCategories() []string {
	return []string{
		CategoryHousing,
		CategoryFood,
		CategoryTransport,
		CategoryShopping,
		CategoryHealth,
		CategoryUtilities,
		CategoryOther,
	}
}

// GetIncomeSources 获取默认收入来源
func GetIncomeSources() []string {
	return []string{"Job", "Freelancing", "Business", "Interest", "Rental", "Other"}
}
