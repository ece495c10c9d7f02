// Package aggregate 把收入/支出记录汇总为仪表盘所需的月度序列、分类占比与合计。
// 所有函数都是纯函数，不修改入参。
package aggregate

import (
	"math"
	"sort"

	"fintrack/models"
)

// OtherCategory 未填写分类的支出归入此桶
const OtherCategory = "Other"

// MonthlyBucket 某月收入与支出合计
type MonthlyBucket struct {
	Month    string  `json:"month"` // YYYY-MM
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

// Net 当月结余
func (b MonthlyBucket) Net() float64 {
	return b.Income - b.Expenses
}

// CategoryBucket 某分类的支出合计
type CategoryBucket struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// Totals 收入、支出与结余
type Totals struct {
	Income   float64 `json:"total_income"`
	Expenses float64 `json:"total_expenses"`
	Savings  float64 `json:"savings"` // 可能为负
}

// MonthlySeries 按日期前 7 个字符（年-月）分组，按月份升序返回。
// 日期为空的记录不计入。
func MonthlySeries(incomes []models.Income, expenses []models.Expense) []MonthlyBucket {
	byMonth := make(map[string]*MonthlyBucket)
	bucket := func(date string) *MonthlyBucket {
		key := monthKey(date)
		if key == "" {
			return nil
		}
		b, ok := byMonth[key]
		if !ok {
			b = &MonthlyBucket{Month: key}
			byMonth[key] = b
		}
		return b
	}

	for _, in := range incomes {
		if b := bucket(in.Date); b != nil {
			b.Income += finite(in.Amount)
		}
	}
	for _, e := range expenses {
		if b := bucket(e.Date); b != nil {
			b.Expenses += finite(e.Amount)
		}
	}

	series := make([]MonthlyBucket, 0, len(byMonth))
	for _, b := range byMonth {
		series = append(series, *b)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Month < series[j].Month })
	return series
}

// CategoryBreakdown 按分类汇总支出，顺序为分类首次出现的顺序
func CategoryBreakdown(expenses []models.Expense) []CategoryBucket {
	index := make(map[string]int)
	buckets := make([]CategoryBucket, 0)
	for _, e := range expenses {
		name := e.Category
		if name == "" {
			name = OtherCategory
		}
		i, ok := index[name]
		if !ok {
			i = len(buckets)
			index[name] = i
			buckets = append(buckets, CategoryBucket{Name: name})
		}
		buckets[i].Amount += finite(e.Amount)
	}
	return buckets
}

// ComputeTotals 计算收入、支出合计与结余
func ComputeTotals(incomes []models.Income, expenses []models.Expense) Totals {
	var t Totals
	for _, in := range incomes {
		t.Income += finite(in.Amount)
	}
	for _, e := range expenses {
		t.Expenses += finite(e.Amount)
	}
	t.Savings = t.Income - t.Expenses
	return t
}

// FilterRange 保留日期在 [from, to] 内的记录（ISO 日期字符串按字典序比较）。
// from > to 时结果为空。
func FilterRange(incomes []models.Income, expenses []models.Expense, from, to string) ([]models.Income, []models.Expense) {
	inRange := func(date string) bool { return date >= from && date <= to }

	fi := make([]models.Income, 0, len(incomes))
	for _, in := range incomes {
		if inRange(in.Date) {
			fi = append(fi, in)
		}
	}
	fe := make([]models.Expense, 0, len(expenses))
	for _, e := range expenses {
		if inRange(e.Date) {
			fe = append(fe, e)
		}
	}
	return fi, fe
}

func monthKey(date string) string {
	if date == "" {
		return ""
	}
	if len(date) > 7 {
		return date[:7]
	}
	return date
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
