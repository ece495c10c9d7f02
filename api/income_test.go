package api

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fintrack/blob"
	"fintrack/models"
	"fintrack/store/memory"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIncomeRouter(h *IncomeHandler, uid uint) *gin.Engine {
	router := gin.New()
	router.Use(setUserIDMiddleware(uid))
	router.POST("/incomes", h.Create)
	router.GET("/incomes", h.List)
	router.GET("/incomes/:id", h.Get)
	router.PUT("/incomes/:id", h.Update)
	router.DELETE("/incomes/:id", h.Delete)
	router.POST("/incomes/:id/invoice", h.UploadInvoice)
	return router
}

func TestIncomeHandler_Create(t *testing.T) {
	s := newLedgerStore()
	router := newIncomeRouter(NewIncomeHandler(s, nil, 1), 1)

	w := doJSON(router, "POST", "/incomes", `{"source":"Job","amount":2500,"date":"2024-01-15","notes":"Salary"}`)
	assert.Equal(t, 200, w.Code)
	var in models.Income
	resp := decode(t, w, &in)
	assert.Equal(t, "创建成功", resp.Message)
	assert.Equal(t, uint(1), in.UserID)
	assert.Equal(t, 2500.0, in.Amount)
}

func TestIncomeHandler_Create_Validation(t *testing.T) {
	s := newLedgerStore()
	router := newIncomeRouter(NewIncomeHandler(s, nil, 1), 1)

	cases := []string{
		`{"source":"Job","date":"2024-01-15"}`,
		`{"source":"Job","amount":100}`,
		`{"source":"Job","amount":100,"date":"15/01/2024"}`,
	}
	for _, body := range cases {
		w := doJSON(router, "POST", "/incomes", body)
		assert.Equal(t, 400, w.Code, body)
	}

	// 校验失败时不写入
	list, err := s.ListIncome(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestIncomeHandler_Create_Demo(t *testing.T) {
	s := memory.New(memory.Config{})
	router := newIncomeRouter(NewIncomeHandler(s, nil, 1), memory.DemoUserID)

	w := doJSON(router, "POST", "/incomes", `{"source":"Job","amount":2500,"date":"2024-01-15"}`)
	assert.Equal(t, 503, w.Code)
	assert.Contains(t, w.Body.String(), "未配置数据存储")
}

func TestIncomeHandler_ListWithRange(t *testing.T) {
	s := newLedgerStore()
	ctx := context.Background()
	for _, d := range []string{"2024-01-05", "2024-02-10", "2024-03-20"} {
		require.NoError(t, s.CreateIncome(ctx, &models.Income{UserID: 1, Source: "Job", Amount: 100, Date: d}))
	}
	router := newIncomeRouter(NewIncomeHandler(s, nil, 1), 1)

	w := doJSON(router, "GET", "/incomes?from=2024-02-01", "")
	require.Equal(t, 200, w.Code)
	var page struct {
		Total int64           `json:"total"`
		List  []models.Income `json:"list"`
	}
	decode(t, w, &page)
	assert.Equal(t, int64(2), page.Total)

	w = doJSON(router, "GET", "/incomes?page=2&page_size=2", "")
	decode(t, w, &page)
	assert.Equal(t, int64(3), page.Total)
	assert.Len(t, page.List, 1)

	// 超出范围的页码返回空页
	w = doJSON(router, "GET", "/incomes?page=922337203685477581&page_size=100", "")
	require.Equal(t, 200, w.Code)
	var far struct {
		Total int64           `json:"total"`
		List  []models.Income `json:"list"`
	}
	decode(t, w, &far)
	assert.Equal(t, int64(3), far.Total)
	assert.Empty(t, far.List)
}

func TestIncomeHandler_UpdateDelete(t *testing.T) {
	s := newLedgerStore()
	ctx := context.Background()
	in := &models.Income{UserID: 1, Source: "Job", Amount: 100, Date: "2024-01-05"}
	require.NoError(t, s.CreateIncome(ctx, in))

	router := newIncomeRouter(NewIncomeHandler(s, nil, 1), 1)
	w := doJSON(router, "PUT", "/incomes/1", `{"amount":150,"notes":"raise"}`)
	require.Equal(t, 200, w.Code)
	got, err := s.GetIncome(ctx, 1, in.ID)
	require.NoError(t, err)
	assert.Equal(t, 150.0, got.Amount)
	assert.Equal(t, "Job", got.Source)

	// 其他用户不可见
	other := newIncomeRouter(NewIncomeHandler(s, nil, 1), 2)
	assert.Equal(t, 404, doJSON(other, "DELETE", "/incomes/1", "").Code)
	assert.Equal(t, 400, doJSON(router, "GET", "/incomes/abc", "").Code)

	assert.Equal(t, 200, doJSON(router, "DELETE", "/incomes/1", "").Code)
	assert.Equal(t, 404, doJSON(router, "GET", "/incomes/1", "").Code)
}

func multipartFile(t *testing.T, name string, data []byte) (*bytes.Buffer, string) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func TestIncomeHandler_UploadInvoice(t *testing.T) {
	s := newLedgerStore()
	ctx := context.Background()
	require.NoError(t, s.CreateIncome(ctx, &models.Income{UserID: 1, Source: "Job", Amount: 100, Date: "2024-01-05"}))

	dir := t.TempDir()
	router := newIncomeRouter(NewIncomeHandler(s, blob.NewLocal(dir, "http://localhost/uploads"), 1), 1)

	body, contentType := multipartFile(t, "invoice.pdf", []byte("%PDF-1.4"))
	req := httptest.NewRequest("POST", "/incomes/1/invoice", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code, w.Body.String())

	got, err := s.GetIncome(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost/uploads/invoices/1/1/invoice.pdf", got.InvoiceURL)
	_, err = os.Stat(filepath.Join(dir, "invoices", "1", "1", "invoice.pdf"))
	assert.NoError(t, err)
}

func TestIncomeHandler_UploadInvoice_DemoRemovesFile(t *testing.T) {
	mem := memory.New(memory.Config{})
	mem.SeedDemo(time.Now())
	in, err := mem.GetIncome(context.Background(), memory.DemoUserID, 1)
	require.NoError(t, err)

	dir := t.TempDir()
	router := newIncomeRouter(NewIncomeHandler(mem, blob.NewLocal(dir, ""), 1), memory.DemoUserID)

	body, contentType := multipartFile(t, "invoice.pdf", []byte("%PDF-1.4"))
	req := httptest.NewRequest("POST", "/incomes/1/invoice", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, 503, w.Code)

	// 记录未更新时不留下附件
	_, err = os.Stat(filepath.Join(dir, "invoices", "1", "1", "invoice.pdf"))
	assert.True(t, os.IsNotExist(err))
	got, err := mem.GetIncome(context.Background(), memory.DemoUserID, 1)
	require.NoError(t, err)
	assert.Equal(t, in.InvoiceURL, got.InvoiceURL)
}

func TestIncomeHandler_UploadInvoice_TooLarge(t *testing.T) {
	s := newLedgerStore()
	require.NoError(t, s.CreateIncome(context.Background(), &models.Income{UserID: 1, Amount: 1, Date: "2024-01-05"}))
	router := newIncomeRouter(NewIncomeHandler(s, blob.NewLocal(t.TempDir(), ""), 1), 1)

	body, contentType := multipartFile(t, "big.bin", bytes.Repeat([]byte("x"), 1<<20+10))
	req := httptest.NewRequest("POST", "/incomes/1/invoice", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, 400, w.Code)
}
