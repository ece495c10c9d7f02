package api

import (
	"testing"
	"time"

	"fintrack/aggregate"
	"fintrack/store/memory"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardHandler_Get(t *testing.T) {
	s := memory.New(memory.Config{})
	s.SeedDemo(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))

	router := gin.New()
	router.Use(setUserIDMiddleware(memory.DemoUserID))
	router.GET("/dashboard", NewDashboardHandler(s).Get)

	w := doJSON(router, "GET", "/dashboard", "")
	require.Equal(t, 200, w.Code)
	var d aggregate.Dashboard
	decode(t, w, &d)

	assert.Equal(t, 3400.0, d.Totals.Income)
	assert.Equal(t, 1120.0, d.Totals.Expenses)
	assert.Equal(t, 2280.0, d.Totals.Savings)
	assert.Equal(t, 2, d.UpcomingCount)
	require.Len(t, d.Monthly, 2)
	assert.Equal(t, "2024-02", d.Monthly[0].Month)
	assert.Equal(t, 900.0, d.Monthly[0].Income)
	assert.Equal(t, 0.0, d.Monthly[0].Expenses)
	require.Len(t, d.Categories, 2)
	assert.Equal(t, "Housing", d.Categories[0].Name)
}

func TestDashboardHandler_Empty(t *testing.T) {
	router := gin.New()
	router.Use(setUserIDMiddleware(42))
	router.GET("/dashboard", NewDashboardHandler(newLedgerStore()).Get)

	var d aggregate.Dashboard
	decode(t, doJSON(router, "GET", "/dashboard", ""), &d)
	assert.Empty(t, d.Monthly)
	assert.Empty(t, d.Categories)
	assert.Equal(t, aggregate.Totals{}, d.Totals)
}
