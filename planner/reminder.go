// Package planner 提醒状态流转与储蓄目标进度计算。
//
// 提醒不会因到期而自动改变状态：过期的 upcoming 提醒保持 upcoming，直到用户标记已付或延后。
package planner

import (
	"errors"
	"fmt"
	"time"

	"fintrack/models"
)

// DateLayout ISO 日期格式
const DateLayout = "2006-01-02"

// SnoozeDays 延后天数
const SnoozeDays = 7

// ErrAlreadyPaid 已付是终态，不能再延后或改回其他状态
var ErrAlreadyPaid = errors.New("账单已支付，不能再更改状态")

// MarkPaid 标记为已付，到期日不变；重复调用结果相同
func MarkPaid(r models.Reminder) models.Reminder {
	r.Status = models.ReminderPaid
	return r
}

// Snooze 到期日顺延 7 个自然日并标记为 snoozed，不产生新记录。已付的提醒返回 ErrAlreadyPaid。
func Snooze(r models.Reminder) (models.Reminder, error) {
	if r.Status == models.ReminderPaid {
		return r, ErrAlreadyPaid
	}
	due, err := time.Parse(DateLayout, r.DueDate)
	if err != nil {
		return r, fmt.Errorf("无效的到期日 %q: %w", r.DueDate, err)
	}
	r.DueDate = due.AddDate(0, 0, SnoozeDays).Format(DateLayout)
	r.Status = models.ReminderSnoozed
	return r, nil
}

// UpcomingCount 统计状态恰为 upcoming 的提醒数
func UpcomingCount(reminders []models.Reminder) int {
	n := 0
	for _, r := range reminders {
		if r.Status == models.ReminderUpcoming {
			n++
		}
	}
	return n
}

// Overdue 未支付且到期日早于 today。仅用于展示，不改变状态。
func Overdue(r models.Reminder, today time.Time) bool {
	if r.Status == models.ReminderPaid {
		return false
	}
	return r.DueDate != "" && r.DueDate < today.Format(DateLayout)
}

// ReminderView 提醒视图
type ReminderView struct {
	models.Reminder
	Overdue bool `json:"overdue"`
}

// ReminderList 提醒列表视图
type ReminderList struct {
	UpcomingCount int            `json:"upcoming_count"`
	List          []ReminderView `json:"list"`
}

// NewReminderList 构造提醒列表视图
func NewReminderList(reminders []models.Reminder, today time.Time) ReminderList {
	list := make([]ReminderView, 0, len(reminders))
	for _, r := range reminders {
		list = append(list, ReminderView{Reminder: r, Overdue: Overdue(r, today)})
	}
	return ReminderList{UpcomingCount: UpcomingCount(reminders), List: list}
}
