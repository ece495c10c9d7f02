package models

import (
	"time"

	"gorm.io/gorm"
)

// 提醒状态
const (
	ReminderUpcoming = "upcoming"
	ReminderPaid     = "paid"
	ReminderSnoozed  = "snoozed"
)

// 重复方式，仅作展示，不会自动生成下一期提醒
const (
	RecurNone    = "none"
	RecurMonthly = "monthly"
	RecurYearly  = "yearly"
)

// Reminder 账单提醒
type Reminder struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"index;not null"`
	Title     string         `json:"title" gorm:"size:100;not null"`
	DueDate   string         `json:"due_date" gorm:"size:10;index;not null"`
	Amount    *float64       `json:"amount,omitempty" gorm:"type:decimal(12,2)"`
	Recurring string         `json:"recurring" gorm:"size:10;default:none"`
	Status    string         `json:"status" gorm:"size:10;default:upcoming;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Reminder) TableName() string {
	return "reminders"
}

// Normalize 规整字段，未知的状态/重复方式回落为默认值
func (r *Reminder) Normalize() {
	r.Title = trim(r.Title)
	r.DueDate = trim(r.DueDate)
	if r.Amount != nil {
		v := CoerceAmount(*r.Amount)
		r.Amount = &v
	}
	if !ValidRecurring(r.Recurring) {
		r.Recurring = RecurNone
	}
	if !ValidReminderStatus(r.Status) {
		r.Status = ReminderUpcoming
	}
}

// ValidRecurring 是否为合法的重复方式
func ValidRecurring(s string) bool {
	switch s {
	case RecurNone, RecurMonthly, RecurYearly:
		return true
	}
	return false
}

// ValidReminderStatus 是否为合法的提醒状态
func ValidReminderStatus(s string) bool {
	switch s {
	case ReminderUpcoming, ReminderPaid, ReminderSnoozed:
		return true
	}
	return false
}
