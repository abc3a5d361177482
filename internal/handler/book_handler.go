package handler

import (
	"fmt"

	"book-admin-go/internal/middleware"
	"book-admin-go/internal/model"
	"book-admin-go/internal/service"
	"book-admin-go/pkg/log"
	"book-admin-go/pkg/response"

	"github.com/gin-gonic/gin"
)

// BookHandler 在通用资源接口之上提供书籍特有的接口。
type BookHandler struct {
	*ResourceHandler[model.Book]
	bookService service.BookService
}

// NewBookHandler 创建一个新的 BookHandler 实例。
func NewBookHandler(res *ResourceHandler[model.Book], bookService service.BookService) *BookHandler {
	return &BookHandler{ResourceHandler: res, bookService: bookService}
}

// MenuOption 返回枚举字段的取值字典。
func (h *BookHandler) MenuOption(c *gin.Context) {
	response.JSON(c, response.CodeOK, "书籍菜单选项查询成功", h.bookService.MenuOption())
}

// QueryAttachLabel 查询书籍并为每本书附加其标签信息。
func (h *BookHandler) QueryAttachLabel(c *gin.Context) {
	payload, ok := bodyParams(c, "书籍")
	if !ok {
		return
	}
	log.Infof("书籍查询 user:%s params:%v", middleware.CurrentUsername(c), payload)

	data, total, err := h.bookService.QueryAttachLabel(c.Request.Context(), payload)
	if err != nil {
		log.Errorf("书籍查询错误 params:%v error:%v", payload, err)
		response.JSON(c, response.CodeOf(err), fmt.Sprintf("书籍查询错误 error:%v", err), nil)
		return
	}
	response.JSONTotal(c, response.CodeOK, "书籍查询成功", data, total)
}
