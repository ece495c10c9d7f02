package api

import (
	"context"

	"fintrack/aggregate"
	"fintrack/middleware"
	"fintrack/models"
	"fintrack/planner"
	"fintrack/store"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// LoadLedger 并发读取用户的全部收入与支出
func LoadLedger(ctx context.Context, s store.Store, owner uint) ([]models.Income, []models.Expense, error) {
	var (
		incomes  []models.Income
		expenses []models.Expense
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		incomes, err = s.ListIncome(ctx, owner)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.ListExpense(ctx, owner)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return incomes, expenses, nil
}

// DashboardHandler 仪表盘
type DashboardHandler struct {
	store store.Store
}

func NewDashboardHandler(s store.Store) *DashboardHandler {
	return &DashboardHandler{store: s}
}

// Get 仪表盘数据
// @Summary 仪表盘
// @Description 月度收支序列、支出类别分布、合计及待处理提醒数
// @Tags 仪表盘
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=aggregate.Dashboard} "获取成功"
// @Router /api/v1/dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	uid := middleware.GetCurrentUserID(c)
	ctx := c.Request.Context()

	var (
		incomes   []models.Income
		expenses  []models.Expense
		reminders []models.Reminder
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		incomes, expenses, err = LoadLedger(gctx, h.store, uid)
		return err
	})
	g.Go(func() error {
		var err error
		reminders, err = h.store.ListReminders(gctx, uid)
		return err
	})
	if err := g.Wait(); err != nil {
		StoreError(c, err, "加载仪表盘失败")
		return
	}

	Success(c, aggregate.BuildDashboard(incomes, expenses, planner.UpcomingCount(reminders)))
}
