// Package report 把收入/支出记录组装为可导出的多工作表报表（ITR / GST）。
package report

import (
	"fmt"
	"strings"

	"fintrack/aggregate"
	"fintrack/models"
)

// Kind 报表类型
type Kind string

const (
	KindITR Kind = "ITR"
	KindGST Kind = "GST"
)

// ParseKind 解析报表类型，大小写不敏感
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToUpper(strings.TrimSpace(s))) {
	case KindITR:
		return KindITR, nil
	case KindGST:
		return KindGST, nil
	}
	return "", fmt.Errorf("未知的报表类型: %q", s)
}

// Sheet 一张工作表：列名 + 有序行
type Sheet struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// Workbook 可导出的工作簿
type Workbook struct {
	Name   string           `json:"name"`
	Kind   Kind             `json:"kind"`
	From   string           `json:"from,omitempty"`
	To     string           `json:"to,omitempty"`
	Totals aggregate.Totals `json:"totals"`
	Sheets []Sheet          `json:"sheets"`
}

// FileName 导出文件名
func (wb *Workbook) FileName() string {
	return wb.Name + ".xlsx"
}

// Sheet 按名称查找工作表
func (wb *Workbook) Sheet(name string) (*Sheet, bool) {
	for i := range wb.Sheets {
		if strings.EqualFold(wb.Sheets[i].Name, name) {
			return &wb.Sheets[i], true
		}
	}
	return nil, false
}

// Name 报表名: <product>-<kind>-<from>-to-<to>
func Name(product string, kind Kind, from, to string) string {
	return fmt.Sprintf("%s-%s-%s-to-%s", product, strings.ToLower(string(kind)), from, to)
}

// Build 生成指定区间 [from, to] 的 ITR/GST 报表。
// 区间按 ISO 日期字符串字典序过滤，from > to 时各表为空。
func Build(product string, kind Kind, incomes []models.Income, expenses []models.Expense, from, to string) *Workbook {
	fi, fe := aggregate.FilterRange(incomes, expenses, from, to)
	totals := aggregate.ComputeTotals(fi, fe)
	period := fmt.Sprintf("%s to %s", from, to)

	incomeSheet := Sheet{Columns: []string{"Date", "Source", "Amount", "InvoiceURL"}, Rows: make([][]any, 0, len(fi))}
	for _, in := range fi {
		incomeSheet.Rows = append(incomeSheet.Rows, []any{in.Date, in.Source, in.Amount, in.InvoiceURL})
	}
	expenseSheet := Sheet{Columns: []string{"Date", "Category", "Amount", "ReceiptURL"}, Rows: make([][]any, 0, len(fe))}
	for _, e := range fe {
		expenseSheet.Rows = append(expenseSheet.Rows, []any{e.Date, e.Category, e.Amount, e.ReceiptURL})
	}
	summary := Sheet{Name: string(kind) + " Summary", Columns: []string{"Metric", "Value"}}

	switch kind {
	case KindGST:
		incomeSheet.Name, expenseSheet.Name = "Sales", "Purchases"
		summary.Rows = [][]any{
			{"Sales (Income)", totals.Income},
			{"Purchases (Expenses)", totals.Expenses},
			{"Period", period},
		}
	default:
		incomeSheet.Name, expenseSheet.Name = "Income", "Expenses"
		summary.Rows = [][]any{
			{"Total Income", totals.Income},
			{"Total Expenses", totals.Expenses},
			{"Savings", totals.Savings},
			{"Period", period},
		}
	}

	return &Workbook{
		Name:   Name(product, kind, from, to),
		Kind:   kind,
		From:   from,
		To:     to,
		Totals: totals,
		Sheets: []Sheet{incomeSheet, expenseSheet, summary},
	}
}

// BuildOverview 生成仪表盘导出：按月收入、按分类支出、月度结余
func BuildOverview(product string, kind Kind, incomes []models.Income, expenses []models.Expense) *Workbook {
	series := aggregate.MonthlySeries(incomes, expenses)
	categories := aggregate.CategoryBreakdown(expenses)

	incomeSheet := Sheet{Name: "Income", Columns: []string{"Month", "Income"}, Rows: make([][]any, 0, len(series))}
	monthly := Sheet{Name: string(kind) + " Summary", Columns: []string{"Month", "Income", "Expenses", "Net"}, Rows: make([][]any, 0, len(series))}
	for _, b := range series {
		incomeSheet.Rows = append(incomeSheet.Rows, []any{b.Month, b.Income})
		monthly.Rows = append(monthly.Rows, []any{b.Month, b.Income, b.Expenses, b.Net()})
	}
	expenseSheet := Sheet{Name: "Expenses", Columns: []string{"Category", "Amount"}, Rows: make([][]any, 0, len(categories))}
	for _, c := range categories {
		expenseSheet.Rows = append(expenseSheet.Rows, []any{c.Name, c.Amount})
	}

	return &Workbook{
		Name:   fmt.Sprintf("%s-%s-report", product, strings.ToLower(string(kind))),
		Kind:   kind,
		Totals: aggregate.ComputeTotals(incomes, expenses),
		Sheets: []Sheet{incomeSheet, expenseSheet, monthly},
	}
}
