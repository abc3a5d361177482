package auth

import (
	"strings"

	"book-admin-go/internal/model"
	"book-admin-go/internal/repository"
	"book-admin-go/pkg/hash"
	"book-admin-go/pkg/log"
	"book-admin-go/pkg/response"

	"github.com/gin-gonic/gin"
)

// APIKeyChecker 校验 "api <username> <password>" 形式的授权头，
// 供其他系统调用接口使用。凭证固定对应 api_user 系统账号。
type APIKeyChecker struct {
	users repository.UserRepository
}

// NewAPIKeyChecker 创建一个 APIKeyChecker。
func NewAPIKeyChecker(users repository.UserRepository) *APIKeyChecker {
	return &APIKeyChecker{users: users}
}

// Name 返回校验器名称。
func (a *APIKeyChecker) Name() string {
	return "api"
}

// Authenticate 解析授权头。scheme 不是 api 时弃权；
// 格式必须恰好为三段，否则拒绝。
func (a *APIKeyChecker) Authenticate(c *gin.Context) (*model.User, error) {
	parts := strings.Fields(c.GetHeader("Authorization"))
	if len(parts) == 0 || !strings.EqualFold(parts[0], a.Name()) {
		return nil, nil
	}
	if len(parts) < 3 {
		return nil, response.AuthError("无效的授权头，未提供凭证")
	}
	if len(parts) > 3 {
		return nil, response.AuthError("无效的授权头，凭证中不能包含空格")
	}

	username, password := parts[1], parts[2]
	user, err := a.users.FindByUsername(model.APIUsername)
	if err != nil || !hash.CheckPasswordHash(password, user.Password) {
		log.Infof("api认证失败 username:%s error:用户名密码错误", username)
		return nil, response.AuthError("用户名密码错误")
	}
	if !user.IsActive {
		return nil, response.AuthError("用户未激活或已删除")
	}

	log.Infof("api认证成功 username:%s", username)
	return user, nil
}
