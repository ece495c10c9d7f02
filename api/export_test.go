package api

import (
	"encoding/json"
	"testing"
	"time"

	"fintrack/store/memory"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportHandler_ExportJSON(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	mem := memory.New(memory.Config{})
	mem.SeedDemo(now)

	h := NewExportHandler(mem)
	h.now = func() time.Time { return now }

	router := gin.New()
	router.Use(setUserIDMiddleware(memory.DemoUserID))
	router.GET("/export/json", h.ExportJSON)

	w := doJSON(router, "GET", "/export/json", "")
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "attachment; filename=fintrack-backup-20240315.json", w.Header().Get("Content-Disposition"))

	var backup Backup
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &backup))
	assert.Equal(t, "2024-03-15T09:00:00Z", backup.ExportedAt)
	assert.Len(t, backup.Incomes, 2)
	assert.Len(t, backup.Expenses, 2)
	assert.Len(t, backup.Goals, 2)
	assert.Len(t, backup.Reminders, 2)
	assert.Equal(t, "Job", backup.Incomes[0].Source)

	// 其他用户无数据
	router = gin.New()
	router.Use(setUserIDMiddleware(99))
	router.GET("/export/json", h.ExportJSON)
	w = doJSON(router, "GET", "/export/json", "")
	var empty Backup
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &empty))
	assert.Empty(t, empty.Incomes)
	assert.Empty(t, empty.Reminders)
}
