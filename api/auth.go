package api

import (
	"errors"
	"net/http"

	"fintrack/config"
	"fintrack/middleware"
	"fintrack/models"
	"fintrack/store"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	cfg   *config.Config
	users store.UserStore
}

// NewAuthHandler 创建认证处理器；users 为 nil 时（演示模式）所有认证接口返回 503
func NewAuthHandler(cfg *config.Config, users store.UserStore) *AuthHandler {
	return &AuthHandler{cfg: cfg, users: users}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50" example:"testuser"`
	Password string `json:"password" binding:"required,min=6,max=50" example:"password123"`
	Email    string `json:"email" binding:"omitempty,email" example:"test@example.com"`
}

// LoginRequest 登录请求（支持用户名或邮箱）
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"testuser"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token    string      `json:"token"`
	UserInfo models.User `json:"user_info"`
}

func (h *AuthHandler) available(c *gin.Context) bool {
	if h.users == nil {
		ServiceUnavailable(c, "演示模式不支持登录，请先连接数据库")
		return false
	}
	return true
}

// Register 用户注册
// @Summary 用户注册
// @Description 创建新用户账号
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "注册信息"
// @Success 200 {object} Response{data=models.User} "注册成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 503 {object} Response "演示模式"
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	if !h.available(c) {
		return
	}
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	ctx := c.Request.Context()
	exists, err := h.users.UsernameExists(ctx, req.Username)
	if err != nil {
		StoreError(c, err, "查询用户失败")
		return
	}
	if exists {
		BadRequest(c, "用户名已存在")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		InternalError(c, "密码加密失败")
		return
	}

	user := models.User{
		Username: req.Username,
		Password: string(hashedPassword),
		Email:    req.Email,
		Status:   models.UserStatusActive,
	}
	if err := h.users.CreateUser(ctx, &user); err != nil {
		StoreError(c, err, "创建用户失败")
		return
	}

	SuccessWithMessage(c, "注册成功", user)
}

// Login 用户登录
// @Summary 用户登录
// @Description 用户登录获取 JWT token
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body LoginRequest true "登录信息"
// @Success 200 {object} Response{data=LoginResponse} "登录成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "用户名或密码错误"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	if !h.available(c) {
		return
	}
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	user, err := h.users.FindUserByLogin(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			Unauthorized(c, "用户名或密码错误")
			return
		}
		StoreError(c, err, "查询用户失败")
		return
	}

	if user.Status != models.UserStatusActive {
		Error(c, http.StatusForbidden, "账号已锁定")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		Unauthorized(c, "用户名或密码错误")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Username, h.cfg.JWT.ExpireTime)
	if err != nil {
		InternalError(c, "生成 token 失败")
		return
	}

	Success(c, LoginResponse{Token: token, UserInfo: *user})
}

// GetProfile 获取用户信息
// @Summary 获取当前用户信息
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=models.User} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/auth/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	if !h.available(c) {
		return
	}
	user, err := h.users.GetUser(c.Request.Context(), middleware.GetCurrentUserID(c))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFound(c, "用户不存在")
			return
		}
		StoreError(c, err, "查询用户失败")
		return
	}
	Success(c, user)
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required" example:"oldpassword123"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=50" example:"newpassword123"`
}

// ChangePassword 修改密码
// @Summary 修改密码
// @Tags 认证
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "密码信息"
// @Success 200 {object} Response "修改成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "原密码错误"
// @Router /api/v1/auth/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	if !h.available(c) {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	ctx := c.Request.Context()
	user, err := h.users.GetUser(ctx, middleware.GetCurrentUserID(c))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFound(c, "用户不存在")
			return
		}
		StoreError(c, err, "查询用户失败")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		Unauthorized(c, "原密码错误")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		InternalError(c, "密码加密失败")
		return
	}
	if err := h.users.UpdatePassword(ctx, user.ID, string(hashedPassword)); err != nil {
		StoreError(c, err, "更新密码失败")
		return
	}

	SuccessWithMessage(c, "密码修改成功", nil)
}
