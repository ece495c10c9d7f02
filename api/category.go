package api

import (
	"fintrack/models"
	"fintrack/store"

	"github.com/gin-gonic/gin"
)

// CategoryHandler 类别建议
type CategoryHandler struct {
	store store.CategoryStore
}

func NewCategoryHandler(s store.CategoryStore) *CategoryHandler {
	return &CategoryHandler{store: s}
}

// CategoryList 类别建议列表，录入时也可自由填写
type CategoryList struct {
	Expense []models.ExpenseCategory `json:"expense"`
	Income  []models.IncomeCategory  `json:"income"`
}

// List 获取支出类别与收入来源建议
// @Summary 获取类别列表
// @Tags 类别
// @Produce json
// @Success 200 {object} Response{data=CategoryList} "获取成功"
// @Router /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	expense, err := h.store.ExpenseCategories(ctx)
	if err != nil {
		StoreError(c, err, "查询失败")
		return
	}
	income, err := h.store.IncomeCategories(ctx)
	if err != nil {
		StoreError(c, err, "查询失败")
		return
	}
	Success(c, CategoryList{Expense: expense, Income: income})
}
