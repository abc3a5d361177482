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

// LabelHandler 在通用资源接口之上提供标签特有的接口。
type LabelHandler struct {
	*ResourceHandler[model.Label]
	labelService service.LabelService
}

// NewLabelHandler 创建一个新的 LabelHandler 实例。
func NewLabelHandler(res *ResourceHandler[model.Label], labelService service.LabelService) *LabelHandler {
	return &LabelHandler{ResourceHandler: res, labelService: labelService}
}

// QueryAttachBook 查询标签并为每个标签附加其关联的在用书籍。
func (h *LabelHandler) QueryAttachBook(c *gin.Context) {
	payload, ok := bodyParams(c, "标签")
	if !ok {
		return
	}
	log.Infof("标签查询 user:%s params:%v", middleware.CurrentUsername(c), payload)

	data, total, err := h.labelService.QueryAttachBook(c.Request.Context(), payload)
	if err != nil {
		log.Errorf("标签查询错误 params:%v error:%v", payload, err)
		response.JSON(c, response.CodeOf(err), fmt.Sprintf("标签查询错误 error:%v", err), nil)
		return
	}
	response.JSONTotal(c, response.CodeOK, "标签查询成功", data, total)
}
