package planner

import (
	"math"

	"fintrack/models"
)

// Progress 目标完成百分比，结果在 [0,100]。
// target 为 0 时返回 0；超额完成按 100 计；current 为负时按 0 计。
func Progress(current, target float64) int {
	if target == 0 || math.IsNaN(target) || math.IsInf(target, 0) || math.IsNaN(current) {
		return 0
	}
	p := math.Round(current / target * 100)
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return int(p)
}

// Remaining 距离目标还差多少，已达成时为 0
func Remaining(g models.SavingGoal) float64 {
	if g.CurrentAmount >= g.TargetAmount {
		return 0
	}
	return g.TargetAmount - g.CurrentAmount
}

// GoalView 储蓄目标视图
type GoalView struct {
	models.SavingGoal
	ProgressPercent int     `json:"progress_percent"`
	Remaining       float64 `json:"remaining"`
}

// NewGoalViews 构造储蓄目标视图
func NewGoalViews(goals []models.SavingGoal) []GoalView {
	views := make([]GoalView, 0, len(goals))
	for _, g := range goals {
		views = append(views, NewGoalView(g))
	}
	return views
}

// NewGoalView 构造单个目标视图
func NewGoalView(g models.SavingGoal) GoalView {
	return GoalView{
		SavingGoal:      g,
		ProgressPercent: Progress(g.CurrentAmount, g.TargetAmount),
		Remaining:       Remaining(g),
	}
}
