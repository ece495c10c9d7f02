package models

import (
	"time"

	"gorm.io/gorm"
)

// SavingGoal 储蓄目标
type SavingGoal struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	UserID        uint           `json:"user_id" gorm:"index;not null"`
	GoalName      string         `json:"goal_name" gorm:"size:100;not null"`
	Category      string         `json:"category" gorm:"size:50;default:General"`
	TargetAmount  float64        `json:"target_amount" gorm:"type:decimal(12,2);not null"`
	CurrentAmount float64        `json:"current_amount" gorm:"type:decimal(12,2);default:0"` // 允许超过目标金额
	Notes         string         `json:"notes" gorm:"size:500"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

func (SavingGoal) TableName() string {
	return "saving_goals"
}

// Normalize 规整字段
func (g *SavingGoal) Normalize() {
	g.GoalName = trim(g.GoalName)
	g.Category = trim(g.Category)
	if g.Category == "" {
		g.Category = DefaultGoalCategory
	}
	g.Notes = trim(g.Notes)
	g.TargetAmount = CoerceAmount(g.TargetAmount)
	g.CurrentAmount = CoerceAmount(g.CurrentAmount)
}

// DefaultGoalCategory 储蓄目标默认分类
const DefaultGoalCategory = "General"
