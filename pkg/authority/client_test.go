package authority

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckTokenSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/token/check", r.URL.Path)

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "tok-123", payload["token"])

		json.NewEncoder(w).Encode(checkTokenResp{
			OK:   true,
			Data: &TokenResult{UserID: 7, Username: "zhangsan"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, 1)
	res, err := client.CheckToken(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.Equal(t, int64(7), res.UserID)
	assert.Equal(t, "zhangsan", res.Username)
}

func TestCheckTokenRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(checkTokenResp{OK: false, Message: "token 已失效"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, 1)
	_, err := client.CheckToken(context.Background(), "tok-123")
	assert.Error(t, err)
}

func TestCheckTokenRetriesTransientFailure(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 第一次返回 500，第二次成功
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(checkTokenResp{
			OK:   true,
			Data: &TokenResult{Username: "zhangsan"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, 1)
	res, err := client.CheckToken(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.Equal(t, "zhangsan", res.Username)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestCheckTokenFailsClosedAfterRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, 2)
	_, err := client.CheckToken(context.Background(), "tok-123")
	require.Error(t, err)
	// 首次请求加两次重试
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestCheckUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/user/check", r.URL.Path)

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))

		json.NewEncoder(w).Encode(checkUserResp{OK: payload["password"] == "right"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, 1)

	ok, err := client.CheckUser(context.Background(), "zhangsan", "right")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = client.CheckUser(context.Background(), "zhangsan", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRetriesFloorIsOne(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	// retries 传 0 时至少重试一次
	client := NewClient(srv.URL, time.Second, 0)
	_, err := client.CheckToken(context.Background(), "tok-123")
	require.Error(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
