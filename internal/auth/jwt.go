package auth

import (
	"strings"

	"book-admin-go/internal/model"
	"book-admin-go/internal/repository"
	"book-admin-go/pkg/log"
	"book-admin-go/pkg/response"
	"book-admin-go/pkg/token"

	"github.com/gin-gonic/gin"
)

// JWTChecker 校验 "Bearer <token>" 形式的会话凭证，
// 即登录接口签发的 access token。
type JWTChecker struct {
	jwtManager *token.JWTManager
	users      repository.UserRepository
}

// NewJWTChecker 创建一个 JWTChecker。
func NewJWTChecker(jwtManager *token.JWTManager, users repository.UserRepository) *JWTChecker {
	return &JWTChecker{jwtManager: jwtManager, users: users}
}

// Name 返回校验器名称。
func (j *JWTChecker) Name() string {
	return "bearer"
}

// Authenticate 验证 token 并加载对应的本地身份。
func (j *JWTChecker) Authenticate(c *gin.Context) (*model.User, error) {
	const bearerPrefix = "Bearer "
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return nil, nil
	}

	claims, err := j.jwtManager.VerifyToken(strings.TrimPrefix(header, bearerPrefix))
	if err != nil {
		return nil, response.AuthError("无效或已过期的 token")
	}

	// token 有效但用户已被删除时同样拒绝
	user, err := j.users.FindByUsername(claims.Username)
	if err != nil {
		log.Infof("bearer认证失败 username:%s error:%v", claims.Username, err)
		return nil, response.AuthError("用户不存在")
	}
	if !user.IsActive {
		return nil, response.AuthError("用户未激活或已删除")
	}

	return user, nil
}
