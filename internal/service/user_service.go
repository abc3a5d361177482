package service

import (
	"context"
	"errors"
	"time"

	"book-admin-go/internal/model"
	"book-admin-go/internal/repository"
	"book-admin-go/pkg/authority"
	"book-admin-go/pkg/hash"
	"book-admin-go/pkg/log"
	"book-admin-go/pkg/response"
	"book-admin-go/pkg/token"

	"gorm.io/gorm"
)

// UserService 接口定义了登录和会话相关的业务操作。
type UserService interface {
	Login(ctx context.Context, username, password string) (accessToken, refreshToken string, err error)
	RefreshToken(refreshTokenString string) (newAccessToken, newRefreshToken string, err error)
	EnsureSystemAccounts(adminPassword, apiPassword string) error
}

// userService 是 UserService 接口的实现。
type userService struct {
	userRepo   repository.UserRepository
	authority  authority.Client
	jwtManager *token.JWTManager
}

// NewUserService 创建一个新的 UserService 实例。
func NewUserService(userRepo repository.UserRepository, client authority.Client, jwtManager *token.JWTManager) UserService {
	return &userService{
		userRepo:   userRepo,
		authority:  client,
		jwtManager: jwtManager,
	}
}

// Login 处理用户名密码登录。admin 账号只做本地密码校验，
// 其余用户名委托第三方认证中心，通过后按需创建本地身份。
// 登录成功后刷新最后登录时间并签发 access/refresh token 对。
func (s *userService) Login(ctx context.Context, username, password string) (string, string, error) {
	var user *model.User
	var err error

	if username == model.AdminUsername {
		user, err = s.userRepo.FindByUsername(username)
		if err != nil || !hash.CheckPasswordHash(password, user.Password) {
			return "", "", response.AuthError("用户名密码错误")
		}
	} else {
		ok, err := s.authority.CheckUser(ctx, username, password)
		if err != nil {
			// 认证中心不可用时按认证失败处理
			log.Errorf("第三方认证失败 username:%s error:%v", username, err)
			return "", "", response.AuthError("第三方认证失败")
		}
		if !ok {
			return "", "", response.AuthError("用户名密码错误")
		}

		user, err = s.userRepo.FindByUsername(username)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user = &model.User{Username: username, IsActive: true}
			if err := s.userRepo.Create(user); err != nil {
				return "", "", err
			}
		} else if err != nil {
			return "", "", err
		}
	}

	if !user.IsActive {
		return "", "", response.AuthError("用户未激活或已删除")
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.userRepo.Update(user); err != nil {
		log.Warnf("刷新最后登录时间失败 username:%s error:%v", username, err)
	}

	accessToken, err := s.jwtManager.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID, user.Username, user.Role)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// RefreshToken 用仍然有效的 refresh token 换发新的 token 对。
func (s *userService) RefreshToken(refreshTokenString string) (string, string, error) {
	claims, err := s.jwtManager.VerifyToken(refreshTokenString)
	if err != nil {
		return "", "", response.AuthError("无效或已过期的 refresh token")
	}

	user, err := s.userRepo.FindByUsername(claims.Username)
	if err != nil || !user.IsActive {
		return "", "", response.AuthError("用户不存在或已禁用")
	}

	accessToken, err := s.jwtManager.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID, user.Username, user.Role)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// EnsureSystemAccounts 幂等地创建内置的 admin 和 api_user 账号。
func (s *userService) EnsureSystemAccounts(adminPassword, apiPassword string) error {
	accounts := []struct {
		username string
		password string
		role     string
	}{
		{model.AdminUsername, adminPassword, "ADMIN"},
		{model.APIUsername, apiPassword, "API"},
	}

	for _, acc := range accounts {
		_, err := s.userRepo.FindByUsername(acc.username)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := hash.HashPassword(acc.password)
		if err != nil {
			return err
		}
		user := &model.User{
			Username: acc.username,
			Password: hashed,
			Role:     acc.role,
			IsActive: true,
		}
		if err := s.userRepo.Create(user); err != nil {
			return err
		}
		log.Infof("内置账号已创建 username:%s", acc.username)
	}
	return nil
}
