package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// CoerceAmount 非有限数值（NaN/Inf）视为 0，负数原样保留
func CoerceAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParseAmount 把文档中的任意金额字段转换为数值，缺失或无法解析时为 0
func ParseAmount(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return CoerceAmount(n)
	case float32:
		return CoerceAmount(float64(n))
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return CoerceAmount(f)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return CoerceAmount(f)
	default:
		return 0
	}
}

// IncomeFromDoc 将松散的文档记录转换为收入模型
func IncomeFromDoc(doc map[string]any) Income {
	in := Income{
		ID:         parseID(doc["id"]),
		UserID:     parseID(doc["user_id"]),
		Source:     str(doc["source"]),
		Amount:     ParseAmount(doc["amount"]),
		Date:       str(doc["date"]),
		Notes:      str(doc["notes"]),
		InvoiceURL: str(doc["invoice_url"]),
	}
	in.Normalize()
	return in
}

// ExpenseFromDoc 将松散的文档记录转换为支出模型
func ExpenseFromDoc(doc map[string]any) Expense {
	e := Expense{
		ID:         parseID(doc["id"]),
		UserID:     parseID(doc["user_id"]),
		Category:   str(doc["category"]),
		Amount:     ParseAmount(doc["amount"]),
		Date:       str(doc["date"]),
		Notes:      str(doc["notes"]),
		ReceiptURL: str(doc["receipt_url"]),
	}
	e.Normalize()
	return e
}

// GoalFromDoc 将松散的文档记录转换为储蓄目标
func GoalFromDoc(doc map[string]any) SavingGoal {
	g := SavingGoal{
		ID:            parseID(doc["id"]),
		UserID:        parseID(doc["user_id"]),
		GoalName:      str(doc["goal_name"]),
		Category:      str(doc["category"]),
		TargetAmount:  ParseAmount(doc["target_amount"]),
		CurrentAmount: ParseAmount(doc["current_amount"]),
		Notes:         str(doc["notes"]),
	}
	g.Normalize()
	return g
}

// ReminderFromDoc 将松散的文档记录转换为提醒
func ReminderFromDoc(doc map[string]any) Reminder {
	r := Reminder{
		ID:        parseID(doc["id"]),
		UserID:    parseID(doc["user_id"]),
		Title:     str(doc["title"]),
		DueDate:   str(doc["due_date"]),
		Recurring: str(doc["recurring"]),
		Status:    str(doc["status"]),
	}
	if v, ok := doc["amount"]; ok && v != nil {
		amount := ParseAmount(v)
		r.Amount = &amount
	}
	r.Normalize()
	return r
}

func str(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case json.Number:
		return s.String()
	default:
		return ""
	}
}

func parseID(v any) uint {
	f := ParseAmount(v)
	if f <= 0 || f > math.MaxUint32 {
		return 0
	}
	return uint(f)
}

func trim(s string) string {
	return strings.TrimSpace(s)
}
