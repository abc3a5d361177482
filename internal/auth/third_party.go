package auth

import (
	"errors"
	"strings"
	"time"

	"book-admin-go/internal/model"
	"book-admin-go/internal/repository"
	"book-admin-go/pkg/authority"
	"book-admin-go/pkg/log"
	"book-admin-go/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ThirdPartyChecker 校验 "third <token>" 形式的凭证，
// 凭证可以出现在授权头或同名 Cookie 中。token 的有效性委托给
// 外部认证中心；校验通过后按返回的用户名查找本地身份，
// 不存在则惰性创建，并刷新最后登录时间。
type ThirdPartyChecker struct {
	users     repository.UserRepository
	authority authority.Client
}

// NewThirdPartyChecker 创建一个 ThirdPartyChecker。
func NewThirdPartyChecker(users repository.UserRepository, client authority.Client) *ThirdPartyChecker {
	return &ThirdPartyChecker{users: users, authority: client}
}

// Name 返回校验器名称。
func (t *ThirdPartyChecker) Name() string {
	return "third"
}

// Authenticate 解析凭证并委托认证中心校验。
func (t *ThirdPartyChecker) Authenticate(c *gin.Context) (*model.User, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		header, _ = c.Cookie("Authorization")
	}

	parts := strings.Fields(header)
	if len(parts) == 0 || !strings.EqualFold(parts[0], t.Name()) {
		return nil, nil
	}
	if len(parts) < 2 {
		return nil, response.AuthError("无效的授权头，未提供凭证")
	}
	if len(parts) > 2 {
		return nil, response.AuthError("无效的授权头，凭证中不能包含空格")
	}

	token := parts[1]
	res, err := t.authority.CheckToken(c.Request.Context(), token)
	if err != nil {
		log.Infof("third认证失败 error:%v", err)
		return nil, response.AuthError("token 校验失败")
	}

	user, err := t.users.FindByUsername(res.Username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = &model.User{Username: res.Username, IsActive: true}
		if err := t.users.Create(user); err != nil {
			log.Errorf("third认证失败 username:%s error:%v", res.Username, err)
			return nil, response.AuthError("本地用户创建失败")
		}
	} else if err != nil {
		log.Errorf("third认证失败 username:%s error:%v", res.Username, err)
		return nil, response.AuthError(err.Error())
	}

	now := time.Now()
	user.LastLogin = &now
	if err := t.users.Update(user); err != nil {
		log.Warnf("third认证刷新最后登录时间失败 username:%s error:%v", res.Username, err)
	}

	c.Set("auth_token", token)
	log.Infof("third认证成功 username:%s", res.Username)
	return user, nil
}
