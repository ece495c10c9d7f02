package models

import (
	"time"

	"gorm.io/gorm"
)

// ExpenseCategory 消费类别建议（录入时可自由填写）
type ExpenseCategory struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"size:50;not null;uniqueIndex"`
	Sort      int            `json:"sort" gorm:"default:0;index"`
	Color     string         `json:"color" gorm:"size:20;default:#64748b"` // 颜色代码，如 #ef4444
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (ExpenseCategory) TableName() string {
	return "expense_categories"
}

// IncomeCategory 收入来源建议
type IncomeCategory struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"size:50;not null;uniqueIndex"`
	Sort      int            `json:"sort" gorm:"default:0;index"`
	Color     string         `json:"color" gorm:"size:20;default:#64748b"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (IncomeCategory) TableName() string {
	return "income_categories"
}

// CategoryColors 默认类别颜色（与前端图表保持一致）
var CategoryColors = map[string]string{
	CategoryHousing:   "#14b8a6",
	CategoryFood:      "#ef4444",
	CategoryTransport: "#3b82f6",
	CategoryShopping:  "#a855f7",
	CategoryHealth:    "#10b981",
	CategoryUtilities: "#f59e0b",
	CategoryOther:     "#64748b",
}

// DefaultExpenseCategories 默认消费类别，按 GetCategories 的顺序排序
func DefaultExpenseCategories() []ExpenseCategory {
	names := GetCategories()
	list := make([]ExpenseCategory, 0, len(names))
	for i, name := range names {
		color := CategoryColors[name]
		if color == "" {
			color = CategoryColors[CategoryOther]
		}
		list = append(list, ExpenseCategory{ID: uint(i + 1), Name: name, Sort: i + 1, Color: color})
	}
	return list
}

// DefaultIncomeCategories 默认收入来源
func DefaultIncomeCategories() []IncomeCategory {
	names := GetIncomeSources()
	list := make([]IncomeCategory, 0, len(names))
	for i, name := range names {
		list = append(list, IncomeCategory{ID: uint(i + 1), Name: name, Sort: i + 1, Color: CategoryColors[CategoryOther]})
	}
	return list
}
