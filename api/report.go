package api

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"fintrack/middleware"
	"fintrack/report"
	"fintrack/service"
	"fintrack/store"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler ITR/GST 报表
type ReportHandler struct {
	store   store.Store
	email   *service.EmailService
	product string
	now     func() time.Time
}

func NewReportHandler(s store.Store, email *service.EmailService, product string) *ReportHandler {
	return &ReportHandler{store: s, email: email, product: product, now: time.Now}
}

// ReportRangeRequest 报表区间，默认为当年 1 月 1 日至今天
type ReportRangeRequest struct {
	From  string `form:"from" json:"from" binding:"omitempty,datetime=2006-01-02" example:"2024-01-01"`
	To    string `form:"to" json:"to" binding:"omitempty,datetime=2006-01-02" example:"2024-03-31"`
	Sheet string `form:"sheet" json:"-" example:"Income"`
}

type EmailReportRequest struct {
	ReportRangeRequest
	Email string `json:"email" binding:"required,email" example:"me@example.com"`
}

func (r *ReportRangeRequest) defaults(now time.Time) {
	if r.From == "" {
		r.From = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()).Format("2006-01-02")
	}
	if r.To == "" {
		r.To = now.Format("2006-01-02")
	}
}

// build 解析报表类型并生成工作簿
func (h *ReportHandler) build(c *gin.Context, rng ReportRangeRequest) (*report.Workbook, bool) {
	kind, err := report.ParseKind(c.Param("kind"))
	if err != nil {
		BadRequest(c, err.Error())
		return nil, false
	}
	rng.defaults(h.now())
	incomes, expenses, err := LoadLedger(c.Request.Context(), h.store, middleware.GetCurrentUserID(c))
	if err != nil {
		StoreError(c, err, "加载记录失败")
		return nil, false
	}
	return report.Build(h.product, kind, incomes, expenses, rng.From, rng.To), true
}

func (h *ReportHandler) bindRange(c *gin.Context) (ReportRangeRequest, bool) {
	var req ReportRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return req, false
	}
	return req, true
}

func sendXLSX(c *gin.Context, wb *report.Workbook) {
	data, err := report.XLSXBytes(wb)
	if err != nil {
		log.WithError(err).Error("生成 xlsx 失败")
		InternalError(c, "生成报表失败")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(wb.FileName())))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// Download 下载报表
// @Summary 下载 ITR/GST 报表
// @Description 区间 [from, to] 包含首尾，from 晚于 to 时明细为空
// @Tags 报表
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param kind path string true "报表类型 itr | gst"
// @Param from query string false "开始日期，默认当年 1 月 1 日"
// @Param to query string false "结束日期，默认今天"
// @Success 200 {file} file "xlsx 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/reports/{kind} [get]
func (h *ReportHandler) Download(c *gin.Context) {
	rng, ok := h.bindRange(c)
	if !ok {
		return
	}
	wb, ok := h.build(c, rng)
	if !ok {
		return
	}
	sendXLSX(c, wb)
}

// Preview 报表预览
// @Summary 预览 ITR/GST 报表
// @Tags 报表
// @Produce json
// @Security BearerAuth
// @Param kind path string true "报表类型 itr | gst"
// @Param from query string false "开始日期"
// @Param to query string false "结束日期"
// @Success 200 {object} Response{data=report.Workbook} "获取成功"
// @Router /api/v1/reports/{kind}/preview [get]
func (h *ReportHandler) Preview(c *gin.Context) {
	rng, ok := h.bindRange(c)
	if !ok {
		return
	}
	wb, ok := h.build(c, rng)
	if !ok {
		return
	}
	Success(c, wb)
}

// CSV 导出单张工作表
// @Summary 导出报表中的单张工作表为 CSV
// @Tags 报表
// @Produce text/csv
// @Security BearerAuth
// @Param kind path string true "报表类型 itr | gst"
// @Param sheet query string true "工作表名称，如 Income"
// @Param from query string false "开始日期"
// @Param to query string false "结束日期"
// @Success 200 {file} file "CSV 文件"
// @Failure 404 {object} Response "工作表不存在"
// @Router /api/v1/reports/{kind}/csv [get]
func (h *ReportHandler) CSV(c *gin.Context) {
	rng, ok := h.bindRange(c)
	if !ok {
		return
	}
	if rng.Sheet == "" {
		BadRequest(c, "请指定工作表")
		return
	}
	wb, ok := h.build(c, rng)
	if !ok {
		return
	}
	sheet, found := wb.Sheet(rng.Sheet)
	if !found {
		NotFound(c, "工作表不存在: "+rng.Sheet)
		return
	}

	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, *sheet); err != nil {
		InternalError(c, "生成 CSV 失败")
		return
	}
	filename := fmt.Sprintf("%s-%s.csv", wb.Name, sheet.Name)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(filename)))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// Overview 导出仪表盘概览
// @Summary 导出收支概览
// @Description 月度收入、支出类别与月度汇总三张表
// @Tags 报表
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param kind path string true "报表类型 itr | gst"
// @Success 200 {file} file "xlsx 文件"
// @Router /api/v1/reports/{kind}/overview [get]
func (h *ReportHandler) Overview(c *gin.Context) {
	kind, err := report.ParseKind(c.Param("kind"))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	incomes, expenses, err := LoadLedger(c.Request.Context(), h.store, middleware.GetCurrentUserID(c))
	if err != nil {
		StoreError(c, err, "加载记录失败")
		return
	}
	sendXLSX(c, report.BuildOverview(h.product, kind, incomes, expenses))
}

// Email 以邮件附件发送报表
// @Summary 邮件发送报表
// @Tags 报表
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param kind path string true "报表类型 itr | gst"
// @Param request body EmailReportRequest true "收件邮箱与区间"
// @Success 200 {object} Response "发送成功"
// @Failure 503 {object} Response "邮件服务未启用"
// @Router /api/v1/reports/{kind}/email [post]
func (h *ReportHandler) Email(c *gin.Context) {
	var req EmailReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	if !h.email.Enabled() {
		ServiceUnavailable(c, service.ErrEmailDisabled.Error())
		return
	}
	wb, ok := h.build(c, req.ReportRangeRequest)
	if !ok {
		return
	}
	data, err := report.XLSXBytes(wb)
	if err != nil {
		InternalError(c, "生成报表失败")
		return
	}
	if err := h.email.SendReport(req.Email, wb, data); err != nil {
		log.WithError(err).WithField("report", wb.Name).Error("发送报表邮件失败")
		InternalError(c, "邮件发送失败")
		return
	}
	SuccessWithMessage(c, "报表已发送", gin.H{"file": wb.FileName()})
}
