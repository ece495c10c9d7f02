package api

import (
	"fintrack/aggregate"
	"fintrack/blob"
	"fintrack/middleware"
	"fintrack/models"
	"fintrack/store"

	"github.com/gin-gonic/gin"
)

// IncomeHandler 收入处理器
type IncomeHandler struct {
	store       store.IncomeStore
	blobs       blob.Store
	maxUploadMB int
}

func NewIncomeHandler(s store.IncomeStore, blobs blob.Store, maxUploadMB int) *IncomeHandler {
	return &IncomeHandler{store: s, blobs: blobs, maxUploadMB: maxUploadMB}
}

type CreateIncomeRequest struct {
	Source string   `json:"source" example:"Job"`
	Amount *float64 `json:"amount" binding:"required" example:"2500"`
	Date   string   `json:"date" binding:"required,datetime=2006-01-02" example:"2024-01-15"`
	Notes  string   `json:"notes" example:"Salary"`
}

type UpdateIncomeRequest struct {
	Source *string  `json:"source"`
	Amount *float64 `json:"amount"`
	Date   *string  `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Notes  *string  `json:"notes"`
}

// LedgerListRequest 收入/支出列表查询
type LedgerListRequest struct {
	Page     int    `form:"page" example:"1"`
	PageSize int    `form:"page_size" example:"20"`
	From     string `form:"from" example:"2024-01-01"`
	To       string `form:"to" example:"2024-12-31"`
}

// Create 创建收入
// @Summary 创建收入
// @Description 金额与日期必填；未连接数据库时返回 503
// @Tags 收入
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateIncomeRequest true "收入信息"
// @Success 200 {object} Response{data=models.Income} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 503 {object} Response "未配置数据存储"
// @Router /api/v1/incomes [post]
func (h *IncomeHandler) Create(c *gin.Context) {
	var req CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	in := models.Income{
		UserID: middleware.GetCurrentUserID(c),
		Source: req.Source,
		Amount: *req.Amount,
		Date:   req.Date,
		Notes:  req.Notes,
	}
	if err := h.store.CreateIncome(c.Request.Context(), &in); err != nil {
		StoreError(c, err, "创建收入失败")
		return
	}
	SuccessWithMessage(c, "创建成功", in)
}

// List 获取收入列表
// @Summary 获取收入列表
// @Description 按创建时间倒序，可按日期区间筛选
// @Tags 收入
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Param from query string false "开始日期 (2024-01-01)"
// @Param to query string false "结束日期 (2024-12-31)"
// @Success 200 {object} Response{data=PageResponse{list=[]models.Income}} "获取成功"
// @Router /api/v1/incomes [get]
func (h *IncomeHandler) List(c *gin.Context) {
	var req LedgerListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	list, err := h.store.ListIncome(c.Request.Context(), middleware.GetCurrentUserID(c))
	if err != nil {
		StoreError(c, err, "查询失败")
		return
	}
	if req.From != "" || req.To != "" {
		list, _ = aggregate.FilterRange(list, nil, req.From, openEnd(req.To))
	}
	Success(c, paginate(list, req.Page, req.PageSize))
}

// Get 获取单条收入
// @Summary 获取单条收入
// @Tags 收入
// @Produce json
// @Security BearerAuth
// @Param id path int true "收入ID"
// @Success 200 {object} Response{data=models.Income} "获取成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/incomes/{id} [get]
func (h *IncomeHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	in, err := h.store.GetIncome(c.Request.Context(), middleware.GetCurrentUserID(c), id)
	if err != nil {
		StoreError(c, err, "查询失败")
		return
	}
	Success(c, in)
}

// Update 更新收入
// @Summary 更新收入
// @Tags 收入
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "收入ID"
// @Param request body UpdateIncomeRequest true "收入信息"
// @Success 200 {object} Response{data=models.Income} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/incomes/{id} [put]
func (h *IncomeHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req UpdateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	ctx := c.Request.Context()
	in, err := h.store.GetIncome(ctx, middleware.GetCurrentUserID(c), id)
	if err != nil {
		StoreError(c, err, "查询失败")
		return
	}
	if req.Source != nil {
		in.Source = *req.Source
	}
	if req.Amount != nil {
		in.Amount = *req.Amount
	}
	if req.Date != nil {
		in.Date = *req.Date
	}
	if req.Notes != nil {
		in.Notes = *req.Notes
	}
	if err := h.store.UpdateIncome(ctx, in); err != nil {
		StoreError(c, err, "更新失败")
		return
	}
	SuccessWithMessage(c, "更新成功", in)
}

// Delete 删除收入
// @Summary 删除收入
// @Tags 收入
// @Produce json
// @Security BearerAuth
// @Param id path int true "收入ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/incomes/{id} [delete]
func (h *IncomeHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteIncome(c.Request.Context(), middleware.GetCurrentUserID(c), id); err != nil {
		StoreError(c, err, "删除失败")
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}

// UploadInvoice 上传发票并关联到收入
// @Summary 上传发票
// @Tags 收入
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "收入ID"
// @Param file formData file true "发票文件"
// @Success 200 {object} Response{data=models.Income} "上传成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/incomes/{id}/invoice [post]
func (h *IncomeHandler) UploadInvoice(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	uid := middleware.GetCurrentUserID(c)
	ctx := c.Request.Context()
	in, err := h.store.GetIncome(ctx, uid, id)
	if err != nil {
		StoreError(c, err, "查询失败")
		return
	}
	file, ok := readUpload(c, h.maxUploadMB)
	if !ok {
		return
	}
	name := blob.ObjectPath(blob.PrefixInvoices, uid, id, file.Name)
	url, err := h.blobs.Put(ctx, name, file.Data, file.ContentType)
	if err != nil {
		StoreError(c, err, "上传失败")
		return
	}
	in.InvoiceURL = url
	if err := h.store.UpdateIncome(ctx, in); err != nil {
		// 记录未更新，已写入的附件一并删除
		discardBlob(ctx, h.blobs, name)
		StoreError(c, err, "保存发票地址失败")
		return
	}
	SuccessWithMessage(c, "上传成功", in)
}

// openEnd 未指定结束日期时不设上限
func openEnd(to string) string {
	if to == "" {
		return "9999-12-31"
	}
	return to
}
