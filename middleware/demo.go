package middleware

import "github.com/gin-gonic/gin"

// DemoSession 演示模式下所有请求都以演示用户身份访问
func DemoSession(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextUserID, userID)
		c.Set(ContextUsername, "demo")
		c.Set(ContextDemo, true)
		c.Next()
	}
}

// IsDemo 当前请求是否处于演示会话
func IsDemo(c *gin.Context) bool {
	return c.GetBool(ContextDemo)
}
