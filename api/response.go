package api

import (
	"errors"
	"net/http"
	"strconv"

	"fintrack/config"
	"fintrack/store"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Response 通用响应结构
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// PageResponse 分页响应结构
type PageResponse struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	List     any   `json:"list"`
}

// Success 成功响应
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Code:    200,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithMessage 带消息的成功响应
func SuccessWithMessage(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Response{
		Code:    200,
		Message: message,
		Data:    data,
	})
}

// Error 错误响应
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest 400 错误响应
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized 401 错误响应
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// InternalError 500 错误响应
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// NotFound 404 错误响应
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// Forbidden 403 错误响应
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

// Conflict 409 错误响应
func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

// ServiceUnavailable 503 错误响应（演示模式下的写操作等）
func ServiceUnavailable(c *gin.Context, message string) {
	Error(c, http.StatusServiceUnavailable, message)
}

// StoreError 将存储层错误映射为响应
func StoreError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		NotFound(c, store.ErrNotFound.Error())
	case errors.Is(err, store.ErrNotConfigured):
		ServiceUnavailable(c, store.ErrNotConfigured.Error())
	default:
		log.WithError(err).WithField("path", c.FullPath()).Error(fallback)
		InternalError(c, config.SafeErrorMessage(err, fallback))
	}
}

// paramID 解析路径参数 :id
func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		BadRequest(c, "无效的ID")
		return 0, false
	}
	return uint(id), true
}

// paginate 内存分页，page 从 1 开始
func paginate[T any](list []T, page, pageSize int) PageResponse {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	// 先比较页码再相乘，避免超大 page 溢出
	start := len(list)
	if page-1 < len(list)/pageSize+1 {
		start = min((page-1)*pageSize, len(list))
	}
	end := min(start+pageSize, len(list))
	return PageResponse{Total: int64(len(list)), Page: page, PageSize: pageSize, List: list[start:end]}
}
