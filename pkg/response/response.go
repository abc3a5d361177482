// Package response 定义了统一的 JSON 响应信封和错误码表。
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// 错误码表。0 表示成功，非 0 的取值固定。
const (
	CodeOK        = 0
	CodeDBErr     = 4001 // 数据库操作失败
	CodeNoData    = 4002 // 按 id 查询不到记录
	CodeAuthErr   = 4101 // 身份认证失败
	CodeParamErr  = 4103 // 参数缺失或不合法
	CodeServerErr = 4500 // 兜底的服务器内部错误
)

var codeMessage = map[int]string{
	CodeOK:        "成功",
	CodeDBErr:     "数据库错误",
	CodeNoData:    "无数据",
	CodeAuthErr:   "用户身份认证失败",
	CodeParamErr:  "参数错误",
	CodeServerErr: "服务器内部错误",
}

// Envelope 是所有接口的统一响应结构。
type Envelope struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Total   *int        `json:"total,omitempty"`
}

// Error 是携带错误码的业务错误，控制器边界按其 Code 组装信封。
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewError 创建一个带错误码的业务错误。
func NewError(code int, message string) *Error {
	if message == "" {
		message = codeMessage[code]
	}
	return &Error{Code: code, Message: message}
}

// ParamError 创建一个参数错误。
func ParamError(message string) *Error {
	return NewError(CodeParamErr, message)
}

// AuthError 创建一个认证错误。
func AuthError(message string) *Error {
	return NewError(CodeAuthErr, message)
}

// CodeOf 将任意错误映射为错误码：带码的业务错误使用自身的码，
// 记录不存在映射为无数据，其余一律归入服务器内部错误。
func CodeOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return CodeNoData
	}
	return CodeServerErr
}

// JSON 写出统一信封。所有业务状态通过 code 表达，HTTP 状态码恒为 200。
func JSON(c *gin.Context, code int, message string, data interface{}) {
	if message == "" {
		message = codeMessage[code]
	}
	c.JSON(http.StatusOK, Envelope{Code: code, Message: message, Data: data})
}

// JSONTotal 写出携带 total 的统一信封，用于列表查询。
func JSONTotal(c *gin.Context, code int, message string, data interface{}, total int) {
	if message == "" {
		message = codeMessage[code]
	}
	c.JSON(http.StatusOK, Envelope{Code: code, Message: message, Data: data, Total: &total})
}
