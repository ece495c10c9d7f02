package api

import (
	"fmt"
	"net/http"
	"time"

	"fintrack/middleware"
	"fintrack/models"
	"fintrack/store"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// ExportHandler 数据备份导出
type ExportHandler struct {
	store store.Store
	now   func() time.Time
}

// NewExportHandler 创建导出处理器
func NewExportHandler(s store.Store) *ExportHandler {
	return &ExportHandler{store: s, now: time.Now}
}

// Backup 当前用户的全部记录，格式与种子文件一致
type Backup struct {
	ExportedAt string              `json:"exported_at"`
	Incomes    []models.Income     `json:"incomes"`
	Expenses   []models.Expense    `json:"expenses"`
	Goals      []models.SavingGoal `json:"goals"`
	Reminders  []models.Reminder   `json:"reminders"`
}

// ExportJSON 导出全部记录为 JSON 附件
// @Summary 导出数据备份
// @Description 导出当前用户的收入、支出、储蓄目标和账单提醒
// @Tags 导出
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Backup "备份文件"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/export/json [get]
func (h *ExportHandler) ExportJSON(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	now := h.now()
	backup := Backup{ExportedAt: now.Format(time.RFC3339)}

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		backup.Incomes, backup.Expenses, err = LoadLedger(ctx, h.store, userID)
		return err
	})
	g.Go(func() error {
		var err error
		backup.Goals, err = h.store.ListGoals(ctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		backup.Reminders, err = h.store.ListReminders(ctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		StoreError(c, err, "导出数据失败")
		return
	}

	filename := fmt.Sprintf("fintrack-backup-%s.json", now.Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.JSON(http.StatusOK, backup)
}
