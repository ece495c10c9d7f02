package api

import (
	"bytes"
	"context"
	"testing"
	"time"

	"fintrack/config"
	"fintrack/models"
	"fintrack/report"
	"fintrack/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newReportRouter(t *testing.T, email *service.EmailService) *gin.Engine {
	s := newLedgerStore()
	ctx := context.Background()
	require.NoError(t, s.CreateIncome(ctx, &models.Income{UserID: 1, Source: "Job", Amount: 2500, Date: "2024-01-15"}))
	require.NoError(t, s.CreateIncome(ctx, &models.Income{UserID: 1, Source: "Freelancing", Amount: 900, Date: "2024-04-02"}))
	require.NoError(t, s.CreateExpense(ctx, &models.Expense{UserID: 1, Category: "Housing", Amount: 900, Date: "2024-01-01"}))
	require.NoError(t, s.CreateExpense(ctx, &models.Expense{UserID: 1, Category: "Food", Amount: 220, Date: "2024-03-31", ReceiptURL: "https://x/r.png"}))

	h := NewReportHandler(s, email, "fintrack")
	h.now = func() time.Time { return time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC) }

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/reports/:kind", h.Download)
	router.GET("/reports/:kind/preview", h.Preview)
	router.GET("/reports/:kind/csv", h.CSV)
	router.GET("/reports/:kind/overview", h.Overview)
	router.POST("/reports/:kind/email", h.Email)
	return router
}

func TestReportHandler_Preview(t *testing.T) {
	router := newReportRouter(t, nil)

	w := doJSON(router, "GET", "/reports/itr/preview?from=2024-01-01&to=2024-03-31", "")
	require.Equal(t, 200, w.Code)
	var wb report.Workbook
	decode(t, w, &wb)
	assert.Equal(t, "fintrack-itr-2024-01-01-to-2024-03-31", wb.Name)
	assert.Equal(t, 2500.0, wb.Totals.Income)
	assert.Equal(t, 1120.0, wb.Totals.Expenses)
	assert.Equal(t, 1380.0, wb.Totals.Savings)

	// 默认区间：当年 1 月 1 日至今天
	decode(t, doJSON(router, "GET", "/reports/gst/preview", ""), &wb)
	assert.Equal(t, "fintrack-gst-2024-01-01-to-2024-06-30", wb.Name)
	assert.Equal(t, 3400.0, wb.Totals.Income)

	// 区间倒置：空表，不报错
	w = doJSON(router, "GET", "/reports/itr/preview?from=2024-12-31&to=2024-01-01", "")
	require.Equal(t, 200, w.Code)
	decode(t, w, &wb)
	assert.Equal(t, 0.0, wb.Totals.Income)
}

func TestReportHandler_BadRequest(t *testing.T) {
	router := newReportRouter(t, nil)
	assert.Equal(t, 400, doJSON(router, "GET", "/reports/vat", "").Code)
	assert.Equal(t, 400, doJSON(router, "GET", "/reports/itr?from=01-01-2024", "").Code)
	assert.Equal(t, 400, doJSON(router, "GET", "/reports/itr/csv", "").Code)
	assert.Equal(t, 404, doJSON(router, "GET", "/reports/itr/csv?sheet=Nope", "").Code)
}

func TestReportHandler_Download(t *testing.T) {
	router := newReportRouter(t, nil)

	w := doJSON(router, "GET", "/reports/gst?from=2024-01-01&to=2024-03-31", "")
	require.Equal(t, 200, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "fintrack-gst-2024-01-01-to-2024-03-31.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Sales", "Purchases", "GST Summary"}, f.GetSheetList())
	rows, err := f.GetRows("Purchases")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestReportHandler_CSV(t *testing.T) {
	router := newReportRouter(t, nil)

	w := doJSON(router, "GET", "/reports/itr/csv?sheet=expenses&from=2024-01-01&to=2024-12-31", "")
	require.Equal(t, 200, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Date,Category,Amount,ReceiptURL")
	assert.Contains(t, body, "2024-03-31,Food,220.00,https://x/r.png")
}

func TestReportHandler_Overview(t *testing.T) {
	router := newReportRouter(t, nil)

	w := doJSON(router, "GET", "/reports/itr/overview", "")
	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "fintrack-itr-report.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Income", "Expenses", "ITR Summary"}, f.GetSheetList())
}

func TestReportHandler_Email_Disabled(t *testing.T) {
	router := newReportRouter(t, service.NewEmailService(&config.EmailConfig{}))

	w := doJSON(router, "POST", "/reports/itr/email", `{"email":"a@example.com","from":"2024-01-01","to":"2024-03-31"}`)
	assert.Equal(t, 503, w.Code)
	assert.Equal(t, 400, doJSON(router, "POST", "/reports/itr/email", `{"from":"2024-01-01"}`).Code)
}
