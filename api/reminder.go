package api

import (
	"errors"
	"time"

	"fintrack/config"
	"fintrack/middleware"
	"fintrack/models"
	"fintrack/planner"
	"fintrack/service"
	"fintrack/store"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// ReminderHandler 账单提醒处理器
type ReminderHandler struct {
	store store.ReminderStore
	users store.UserStore
	email *service.EmailService
	now   func() time.Time
}

// NewReminderHandler users 可为 nil（演示模式），此时发送提醒必须指定邮箱
func NewReminderHandler(s store.ReminderStore, users store.UserStore, email *service.EmailService) *ReminderHandler {
	return &ReminderHandler{store: s, users: users, email: email, now: time.Now}
}

type CreateReminderRequest struct {
	Title     string   `json:"title" binding:"required" example:"Credit Card Bill"`
	DueDate   string   `json:"due_date" binding:"required,datetime=2006-01-02" example:"2024-01-28"`
	Amount    *float64 `json:"amount" example:"4500"`
	Recurring string   `json:"recurring" binding:"omitempty,oneof=none monthly yearly" example:"monthly"`
}

type UpdateReminderRequest struct {
	Title     *string  `json:"title"`
	DueDate   *string  `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	Amount    *float64 `json:"amount"`
	Recurring *string  `json:"recurring" binding:"omitempty,oneof=none monthly yearly"`
}

type NotifyRequest struct {
	Email string `json:"email" binding:"omitempty,email" example:"me@example.com"`
}

// List 提醒列表（按到期日升序），附带 upcoming 数量
// @Summary 提醒列表
// @Tags 账单提醒
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=planner.ReminderList} "获取成功"
// @Router /api/v1/reminders [get]
func (h *ReminderHandler) List(c *gin.Context) {
	reminders, err := h.store.ListReminders(c.Request.Context(), middleware.GetCurrentUserID(c))
	if err != nil {
		StoreError(c, err, "查询失败")
		return
	}
	Success(c, planner.NewReminderList(reminders, h.now()))
}

// Create 创建提醒
// @Summary 创建提醒
// @Tags 账单提醒
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateReminderRequest true "提醒信息"
// @Success 200 {object} Response{data=models.Reminder} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/reminders [post]
func (h *ReminderHandler) Create(c *gin.Context) {
	var req CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	r := models.Reminder{
		UserID:    middleware.GetCurrentUserID(c),
		Title:     req.Title,
		DueDate:   req.DueDate,
		Amount:    req.Amount,
		Recurring: req.Recurring,
		Status:    models.ReminderUpcoming,
	}
	if err := h.store.CreateReminder(c.Request.Context(), &r); err != nil {
		StoreError(c, err, "创建提醒失败")
		return
	}
	SuccessWithMessage(c, "创建成功", r)
}

// Get 获取单个提醒
// @Summary 获取提醒
// @Tags 账单提醒
// @Produce json
// @Security BearerAuth
// @Param id path int true "提醒ID"
// @Success 200 {object} Response{data=planner.ReminderView} "获取成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/reminders/{id} [get]
func (h *ReminderHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	r, err := h.store.GetReminder(c.Request.Context(), middleware.GetCurrentUserID(c), id)
	if err != nil {
		StoreError(c, err, "查询失败")
		return
	}
	Success(c, planner.ReminderView{Reminder: *r, Overdue: planner.Overdue(*r, h.now())})
}

// Update 更新提醒
// @Summary 更新提醒
// @Description 只更新标题、到期日、金额与周期；状态仅通过 pay / snooze 变更
// @Tags 账单提醒
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "提醒ID"
// @Param request body UpdateReminderRequest true "提醒信息"
// @Success 200 {object} Response{data=models.Reminder} "更新成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/reminders/{id} [put]
func (h *ReminderHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req UpdateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	h.apply(c, id, func(r *models.Reminder) error {
		if req.Title != nil {
			r.Title = *req.Title
		}
		if req.DueDate != nil {
			r.DueDate = *req.DueDate
		}
		if req.Amount != nil {
			r.Amount = req.Amount
		}
		if req.Recurring != nil {
			r.Recurring = *req.Recurring
		}
		return nil
	}, "更新成功")
}

// Pay 标记已付
// @Summary 标记提醒已付
// @Description 状态改为 paid，到期日不变；重复调用结果相同
// @Tags 账单提醒
// @Produce json
// @Security BearerAuth
// @Param id path int true "提醒ID"
// @Success 200 {object} Response{data=models.Reminder} "操作成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/reminders/{id}/pay [post]
func (h *ReminderHandler) Pay(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	h.apply(c, id, func(r *models.Reminder) error {
		*r = planner.MarkPaid(*r)
		return nil
	}, "已标记为已付")
}

// Snooze 延后 7 天
// @Summary 延后提醒
// @Description 到期日顺延 7 天，状态改为 snoozed
// @Tags 账单提醒
// @Produce json
// @Security BearerAuth
// @Param id path int true "提醒ID"
// @Success 200 {object} Response{data=models.Reminder} "操作成功"
// @Failure 400 {object} Response "到期日无效"
// @Failure 404 {object} Response "记录不存在"
// @Failure 409 {object} Response "已支付的提醒不能延后"
// @Router /api/v1/reminders/{id}/snooze [post]
func (h *ReminderHandler) Snooze(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	h.apply(c, id, func(r *models.Reminder) error {
		snoozed, err := planner.Snooze(*r)
		if err != nil {
			return err
		}
		*r = snoozed
		return nil
	}, "已延后 7 天")
}

// apply 读取提醒，执行 fn 后写回
func (h *ReminderHandler) apply(c *gin.Context, id uint, fn func(*models.Reminder) error, message string) {
	ctx := c.Request.Context()
	r, err := h.store.GetReminder(ctx, middleware.GetCurrentUserID(c), id)
	if err != nil {
		StoreError(c, err, "查询失败")
		return
	}
	if err := fn(r); err != nil {
		if errors.Is(err, planner.ErrAlreadyPaid) {
			Conflict(c, err.Error())
			return
		}
		BadRequest(c, err.Error())
		return
	}
	if err := h.store.UpdateReminder(ctx, r); err != nil {
		StoreError(c, err, "更新失败")
		return
	}
	SuccessWithMessage(c, message, r)
}

// Delete 删除提醒
// @Summary 删除提醒
// @Tags 账单提醒
// @Produce json
// @Security BearerAuth
// @Param id path int true "提醒ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/reminders/{id} [delete]
func (h *ReminderHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteReminder(c.Request.Context(), middleware.GetCurrentUserID(c), id); err != nil {
		StoreError(c, err, "删除失败")
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}

// Notify 将未支付的提醒汇总发送到邮箱
// @Summary 发送提醒邮件
// @Description 未指定邮箱时发送到账号绑定的邮箱
// @Tags 账单提醒
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body NotifyRequest false "收件邮箱"
// @Success 200 {object} Response "发送成功"
// @Failure 400 {object} Response "无收件邮箱"
// @Failure 503 {object} Response "邮件服务未启用"
// @Router /api/v1/reminders/notify [post]
func (h *ReminderHandler) Notify(c *gin.Context) {
	var req NotifyRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			BadRequest(c, "参数错误: "+err.Error())
			return
		}
	}
	if !h.email.Enabled() {
		ServiceUnavailable(c, service.ErrEmailDisabled.Error())
		return
	}

	ctx := c.Request.Context()
	uid := middleware.GetCurrentUserID(c)
	username := middleware.GetCurrentUsername(c)
	to := req.Email
	if to == "" && h.users != nil {
		if u, err := h.users.GetUser(ctx, uid); err == nil {
			to, username = u.Email, u.Username
		} else if !errors.Is(err, store.ErrNotFound) {
			StoreError(c, err, "查询用户失败")
			return
		}
	}
	if to == "" {
		BadRequest(c, "请指定收件邮箱")
		return
	}

	reminders, err := h.store.ListReminders(ctx, uid)
	if err != nil {
		StoreError(c, err, "查询失败")
		return
	}
	list := planner.NewReminderList(reminders, h.now())
	pending := make([]planner.ReminderView, 0, len(list.List))
	for _, r := range list.List {
		if r.Status != models.ReminderPaid {
			pending = append(pending, r)
		}
	}
	if len(pending) == 0 {
		SuccessWithMessage(c, "没有待付账单", gin.H{"sent": 0})
		return
	}

	if err := h.email.SendReminderDigest(to, username, pending); err != nil {
		log.WithError(err).WithField("user_id", uid).Error("发送提醒邮件失败")
		InternalError(c, config.SafeErrorMessage(err, "邮件发送失败"))
		return
	}
	SuccessWithMessage(c, "提醒邮件已发送", gin.H{"sent": len(pending)})
}
