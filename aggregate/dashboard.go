package aggregate

import "fintrack/models"

// Dashboard 仪表盘视图数据
type Dashboard struct {
	Monthly       []MonthlyBucket  `json:"monthly"`
	Categories    []CategoryBucket `json:"categories"`
	Totals        Totals           `json:"totals"`
	UpcomingCount int              `json:"upcoming_count"`
}

// BuildDashboard 汇总仪表盘数据，upcoming 为待处理提醒数
func BuildDashboard(incomes []models.Income, expenses []models.Expense, upcoming int) Dashboard {
	return Dashboard{
		Monthly:       MonthlySeries(incomes, expenses),
		Categories:    CategoryBreakdown(expenses),
		Totals:        ComputeTotals(incomes, expenses),
		UpcomingCount: upcoming,
	}
}
