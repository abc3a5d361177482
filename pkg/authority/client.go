// Package authority 提供了调用第三方认证中心的客户端。
package authority

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"book-admin-go/pkg/log"
)

// TokenResult 是第三方 token 校验的返回结果。
type TokenResult struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// Client 抽象了外部认证中心。实现必须对瞬时故障至少重试一次，
// 重试耗尽后按认证失败处理（fail closed）。
type Client interface {
	CheckToken(ctx context.Context, token string) (*TokenResult, error)
	CheckUser(ctx context.Context, username, password string) (bool, error)
}

type httpClient struct {
	baseURL string
	client  *http.Client
	retries int
}

// NewClient 创建一个基于 HTTP 的认证中心客户端。
// retries 为失败后的额外重试次数，最少为 1。
func NewClient(baseURL string, timeout time.Duration, retries int) Client {
	if retries < 1 {
		retries = 1
	}
	return &httpClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		retries: retries,
	}
}

type checkTokenResp struct {
	OK      bool         `json:"ok"`
	Message string       `json:"message"`
	Data    *TokenResult `json:"data"`
}

// CheckToken 调用认证中心校验第三方 token，成功时返回对应的用户信息。
func (c *httpClient) CheckToken(ctx context.Context, token string) (*TokenResult, error) {
	payload := map[string]string{"token": token}

	var out checkTokenResp
	if err := c.postJSON(ctx, "/api/v1/token/check", payload, &out); err != nil {
		return nil, err
	}
	if !out.OK {
		return nil, fmt.Errorf("token 校验失败: %s", out.Message)
	}
	if out.Data == nil {
		return nil, fmt.Errorf("token 校验响应缺少用户数据")
	}
	return out.Data, nil
}

type checkUserResp struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// CheckUser 调用认证中心校验用户名密码。
func (c *httpClient) CheckUser(ctx context.Context, username, password string) (bool, error) {
	payload := map[string]string{"username": username, "password": password}

	var out checkUserResp
	if err := c.postJSON(ctx, "/api/v1/user/check", payload, &out); err != nil {
		return false, err
	}
	return out.OK, nil
}

// postJSON 发送 POST 请求并解析 JSON 响应，失败时重试。
func (c *httpClient) postJSON(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		lastErr = c.doOnce(ctx, path, body, out)
		if lastErr == nil {
			return nil
		}
		log.Warnf("认证中心请求失败 path:%s attempt:%d error:%v", path, attempt+1, lastErr)
	}
	return lastErr
}

func (c *httpClient) doOnce(ctx context.Context, path string, body []byte, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("认证中心返回错误 [%d]: %s", resp.StatusCode, string(raw))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
