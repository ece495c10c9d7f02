package api

import (
	"fintrack/aggregate"
	"fintrack/blob"
	"fintrack/middleware"
	"fintrack/models"
	"fintrack/store"

	"github.com/gin-gonic/gin"
)

// ExpenseHandler 支出处理器
type ExpenseHandler struct {
	store       store.ExpenseStore
	blobs       blob.Store
	maxUploadMB int
}

func NewExpenseHandler(s store.ExpenseStore, blobs blob.Store, maxUploadMB int) *ExpenseHandler {
	return &ExpenseHandler{store: s, blobs: blobs, maxUploadMB: maxUploadMB}
}

type CreateExpenseRequest struct {
	Category string   `json:"category" example:"Food"`
	Amount   *float64 `json:"amount" binding:"required" example:"250"`
	Date     string   `json:"date" binding:"required,datetime=2006-01-02" example:"2024-01-15"`
	Notes    string   `json:"notes" example:"Groceries"`
}

type UpdateExpenseRequest struct {
	Category *string  `json:"category"`
	Amount   *float64 `json:"amount"`
	Date     *string  `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Notes    *string  `json:"notes"`
}

// Create 创建支出
// @Summary 创建支出
// @Description 金额与日期必填，类别可自由填写；未连接数据库时返回 503
// @Tags 支出
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateExpenseRequest true "支出信息"
// @Success 200 {object} Response{data=models.Expense} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 503 {object} Response "未配置数据存储"
// @Router /api/v1/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	e := models.Expense{
		UserID:   middleware.GetCurrentUserID(c),
		Category: req.Category,
		Amount:   *req.Amount,
		Date:     req.Date,
		Notes:    req.Notes,
	}
	if err := h.store.CreateExpense(c.Request.Context(), &e); err != nil {
		StoreError(c, err, "创建支出失败")
		return
	}
	SuccessWithMessage(c, "创建成功", e)
}

// List 获取支出列表
// @Summary 获取支出列表
// @Tags 支出
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Param from query string false "开始日期"
// @Param to query string false "结束日期"
// @Success 200 {object} Response{data=PageResponse{list=[]models.Expense}} "获取成功"
// @Router /api/v1/expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	var req LedgerListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	list, err := h.store.ListExpense(c.Request.Context(), middleware.GetCurrentUserID(c))
	if err != nil {
		StoreError(c, err, "查询失败")
		return
	}
	if req.From != "" || req.To != "" {
		_, list = aggregate.FilterRange(nil, list, req.From, openEnd(req.To))
	}
	Success(c, paginate(list, req.Page, req.PageSize))
}

// Get 获取单条支出
// @Summary 获取单条支出
// @Tags 支出
// @Produce json
// @Security BearerAuth
// @Param id path int true "支出ID"
// @Success 200 {object} Response{data=models.Expense} "获取成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/expenses/{id} [get]
func (h *ExpenseHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	e, err := h.store.GetExpense(c.Request.Context(), middleware.GetCurrentUserID(c), id)
	if err != nil {
		StoreError(c, err, "查询失败")
		return
	}
	Success(c, e)
}

// Update 更新支出
// @Summary 更新支出
// @Tags 支出
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "支出ID"
// @Param request body UpdateExpenseRequest true "支出信息"
// @Success 200 {object} Response{data=models.Expense} "更新成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	ctx := c.Request.Context()
	e, err := h.store.GetExpense(ctx, middleware.GetCurrentUserID(c), id)
	if err != nil {
		StoreError(c, err, "查询失败")
		return
	}
	if req.Category != nil {
		e.Category = *req.Category
	}
	if req.Amount != nil {
		e.Amount = *req.Amount
	}
	if req.Date != nil {
		e.Date = *req.Date
	}
	if req.Notes != nil {
		e.Notes = *req.Notes
	}
	if err := h.store.UpdateExpense(ctx, e); err != nil {
		StoreError(c, err, "更新失败")
		return
	}
	SuccessWithMessage(c, "更新成功", e)
}

// Delete 删除支出
// @Summary 删除支出
// @Tags 支出
// @Produce json
// @Security BearerAuth
// @Param id path int true "支出ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteExpense(c.Request.Context(), middleware.GetCurrentUserID(c), id); err != nil {
		StoreError(c, err, "删除失败")
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}

// UploadReceipt 上传收据并关联到支出
// @Summary 上传收据
// @Tags 支出
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "支出ID"
// @Param file formData file true "收据文件"
// @Success 200 {object} Response{data=models.Expense} "上传成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/expenses/{id}/receipt [post]
func (h *ExpenseHandler) UploadReceipt(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	uid := middleware.GetCurrentUserID(c)
	ctx := c.Request.Context()
	e, err := h.store.GetExpense(ctx, uid, id)
	if err != nil {
		StoreError(c, err, "查询失败")
		return
	}
	file, ok := readUpload(c, h.maxUploadMB)
	if !ok {
		return
	}
	name := blob.ObjectPath(blob.PrefixReceipts, uid, id, file.Name)
	url, err := h.blobs.Put(ctx, name, file.Data, file.ContentType)
	if err != nil {
		StoreError(c, err, "上传失败")
		return
	}
	e.ReceiptURL = url
	if err := h.store.UpdateExpense(ctx, e); err != nil {
		// 记录未更新，已写入的附件一并删除
		discardBlob(ctx, h.blobs, name)
		StoreError(c, err, "保存收据地址失败")
		return
	}
	SuccessWithMessage(c, "上传成功", e)
}
