// Package middleware 提供了处理 HTTP 请求的中间件。
package middleware

import (
	"book-admin-go/internal/auth"
	"book-admin-go/internal/model"
	"book-admin-go/pkg/log"
	"book-admin-go/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthChain 创建一个 Gin 中间件，用认证链解析请求身份。
// 某个校验器拒绝时请求直接终止；全部弃权时请求以未认证身份继续，
// 是否放行由后续的 LoginRequired 决定。
func AuthChain(chain *auth.Chain) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := chain.Authenticate(c)
		if err != nil {
			log.Infof("认证被拒绝 path:%s error:%v", c.Request.URL.Path, err)
			response.JSON(c, response.CodeOf(err), err.Error(), nil)
			c.Abort()
			return
		}
		if user != nil {
			c.Set("user", user)
		}
		c.Next()
	}
}

// LoginRequired 拒绝未认证的请求。必须在 AuthChain 之后使用。
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("user"); !exists {
			response.JSON(c, response.CodeAuthErr, "", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser 从上下文中取出认证链解析的身份，未认证时返回 nil。
func CurrentUser(c *gin.Context) *model.User {
	if v, exists := c.Get("user"); exists {
		if user, ok := v.(*model.User); ok {
			return user
		}
	}
	return nil
}

// CurrentUsername 返回当前登录身份的用户名，未认证时返回空串。
func CurrentUsername(c *gin.Context) string {
	if user := CurrentUser(c); user != nil {
		return user.Username
	}
	return ""
}
