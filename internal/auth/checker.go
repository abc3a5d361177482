// Package auth 实现了多策略的凭证校验链。
//
// 每个 Checker 对一次请求给出三种结果之一：
// 弃权（返回 nil, nil，交给下一个校验器）、解析出身份（返回用户）、
// 拒绝（返回错误，整条链终止）。链按配置顺序迭代，第一个不弃权的
// 校验器决定结果；全部弃权则请求以未认证身份继续，由权限层把关。
package auth

import (
	"book-admin-go/internal/model"

	"github.com/gin-gonic/gin"
)

// Checker 是认证链中的单个凭证校验策略。
type Checker interface {
	Name() string
	Authenticate(c *gin.Context) (*model.User, error)
}

// Chain 按顺序迭代一组校验器。
type Chain struct {
	checkers []Checker
}

// NewChain 创建一条认证链，顺序即优先级。
func NewChain(checkers ...Checker) *Chain {
	return &Chain{checkers: checkers}
}

// Authenticate 返回第一个不弃权的校验器的结果。
// 全部弃权时返回 (nil, nil)，表示请求未认证。
func (ch *Chain) Authenticate(c *gin.Context) (*model.User, error) {
	for _, checker := range ch.checkers {
		user, err := checker.Authenticate(c)
		if err != nil {
			return nil, err
		}
		if user != nil {
			return user, nil
		}
	}
	return nil, nil
}
