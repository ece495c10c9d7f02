package models

import (
	"time"

	"gorm.io/gorm"
)

// Income 收入记录模型
type Income struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	UserID     uint           `json:"user_id" gorm:"index;not null"`
	Source     string         `json:"source" gorm:"size:100;not null"`
	Amount     float64        `json:"amount" gorm:"type:decimal(12,2);not null"`
	Date       string         `json:"date" gorm:"size:10;index;not null"` // ISO 日期 YYYY-MM-DD
	Notes      string         `json:"notes" gorm:"size:500"`
	InvoiceURL string         `json:"invoice_url" gorm:"size:1024"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Income) TableName() string {
	return "incomes"
}

// Normalize 规整字段，保证聚合引擎拿到的都是合法数值
func (i *Income) Normalize() {
	i.Source = trim(i.Source)
	i.Date = trim(i.Date)
	i.Notes = trim(i.Notes)
	i.InvoiceURL = trim(i.InvoiceURL)
	i.Amount = CoerceAmount(i.Amount)
}
