package handler

import (
	"book-admin-go/internal/service"
	"book-admin-go/pkg/log"
	"book-admin-go/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthHandler 负责处理登录和 token 相关的 API 请求。
type AuthHandler struct {
	userService service.UserService
}

// NewAuthHandler 创建一个新的 AuthHandler 实例。
func NewAuthHandler(userService service.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// LoginRequest 定义了登录 API 的请求体结构。
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 处理用户名密码登录，成功时返回 access/refresh token 对。
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Login: 无效的请求负载 error:%v", err)
		response.JSON(c, response.CodeParamErr, "用户名和密码不能为空", nil)
		return
	}

	accessToken, refreshToken, err := h.userService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		log.Warnf("Login: 用户认证失败 username:%s error:%v", req.Username, err)
		response.JSON(c, response.CodeOf(err), err.Error(), nil)
		return
	}

	log.Infof("用户登录成功 username:%s", req.Username)
	response.JSON(c, response.CodeOK, "登录成功", gin.H{
		"token":         accessToken,
		"refresh_token": refreshToken,
	})
}

// RefreshTokenRequest 定义了刷新 token API 的请求体结构。
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshToken 用仍然有效的 refresh token 换发新的 token 对。
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("RefreshToken: 无效的请求负载 error:%v", err)
		response.JSON(c, response.CodeParamErr, "refresh_token 不能为空", nil)
		return
	}

	accessToken, refreshToken, err := h.userService.RefreshToken(req.RefreshToken)
	if err != nil {
		log.Warnf("RefreshToken: 刷新失败 error:%v", err)
		response.JSON(c, response.CodeOf(err), err.Error(), nil)
		return
	}

	response.JSON(c, response.CodeOK, "刷新成功", gin.H{
		"token":         accessToken,
		"refresh_token": refreshToken,
	})
}

// Logout 处理登出。token 本身无状态，这里只返回成功。
func (h *AuthHandler) Logout(c *gin.Context) {
	response.JSON(c, response.CodeOK, "登出成功", nil)
}
