package api

import (
	"fintrack/middleware"
	"fintrack/models"
	"fintrack/planner"
	"fintrack/store"

	"github.com/gin-gonic/gin"
)

// GoalHandler 储蓄目标处理器
type GoalHandler struct {
	store store.GoalStore
}

func NewGoalHandler(s store.GoalStore) *GoalHandler {
	return &GoalHandler{store: s}
}

type CreateGoalRequest struct {
	GoalName      string  `json:"goal_name" binding:"required" example:"Emergency Fund"`
	Category      string  `json:"category" example:"Safety"`
	TargetAmount  float64 `json:"target_amount" binding:"required" example:"200000"`
	CurrentAmount float64 `json:"current_amount" example:"65000"`
	Notes         string  `json:"notes" example:"6 months runway"`
}

type UpdateGoalRequest struct {
	GoalName      *string  `json:"goal_name"`
	Category      *string  `json:"category"`
	TargetAmount  *float64 `json:"target_amount"`
	CurrentAmount *float64 `json:"current_amount"`
	Notes         *string  `json:"notes"`
}

// List 储蓄目标列表（含完成进度）
// @Summary 储蓄目标列表
// @Tags 储蓄目标
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]planner.GoalView} "获取成功"
// @Router /api/v1/goals [get]
func (h *GoalHandler) List(c *gin.Context) {
	goals, err := h.store.ListGoals(c.Request.Context(), middleware.GetCurrentUserID(c))
	if err != nil {
		StoreError(c, err, "查询失败")
		return
	}
	Success(c, planner.NewGoalViews(goals))
}

// Create 创建储蓄目标
// @Summary 创建储蓄目标
// @Tags 储蓄目标
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateGoalRequest true "目标信息"
// @Success 200 {object} Response{data=planner.GoalView} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/goals [post]
func (h *GoalHandler) Create(c *gin.Context) {
	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	g := models.SavingGoal{
		UserID:        middleware.GetCurrentUserID(c),
		GoalName:      req.GoalName,
		Category:      req.Category,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Notes:         req.Notes,
	}
	if err := h.store.CreateGoal(c.Request.Context(), &g); err != nil {
		StoreError(c, err, "创建目标失败")
		return
	}
	SuccessWithMessage(c, "创建成功", planner.NewGoalView(g))
}

// Get 获取单个储蓄目标
// @Summary 获取储蓄目标
// @Tags 储蓄目标
// @Produce json
// @Security BearerAuth
// @Param id path int true "目标ID"
// @Success 200 {object} Response{data=planner.GoalView} "获取成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/goals/{id} [get]
func (h *GoalHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	g, err := h.store.GetGoal(c.Request.Context(), middleware.GetCurrentUserID(c), id)
	if err != nil {
		StoreError(c, err, "查询失败")
		return
	}
	Success(c, planner.NewGoalView(*g))
}

// Update 更新储蓄目标
// @Summary 更新储蓄目标
// @Tags 储蓄目标
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "目标ID"
// @Param request body UpdateGoalRequest true "目标信息"
// @Success 200 {object} Response{data=planner.GoalView} "更新成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/goals/{id} [put]
func (h *GoalHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	ctx := c.Request.Context()
	g, err := h.store.GetGoal(ctx, middleware.GetCurrentUserID(c), id)
	if err != nil {
		StoreError(c, err, "查询失败")
		return
	}
	if req.GoalName != nil {
		g.GoalName = *req.GoalName
	}
	if req.Category != nil {
		g.Category = *req.Category
	}
	if req.TargetAmount != nil {
		g.TargetAmount = *req.TargetAmount
	}
	if req.CurrentAmount != nil {
		g.CurrentAmount = *req.CurrentAmount
	}
	if req.Notes != nil {
		g.Notes = *req.Notes
	}
	if err := h.store.UpdateGoal(ctx, g); err != nil {
		StoreError(c, err, "更新失败")
		return
	}
	SuccessWithMessage(c, "更新成功", planner.NewGoalView(*g))
}

// Delete 删除储蓄目标
// @Summary 删除储蓄目标
// @Tags 储蓄目标
// @Produce json
// @Security BearerAuth
// @Param id path int true "目标ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/goals/{id} [delete]
func (h *GoalHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteGoal(c.Request.Context(), middleware.GetCurrentUserID(c), id); err != nil {
		StoreError(c, err, "删除失败")
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}
