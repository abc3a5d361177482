// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"fmt"
	"io"

	"book-admin-go/internal/middleware"
	"book-admin-go/internal/service"
	"book-admin-go/pkg/log"
	"book-admin-go/pkg/response"

	"github.com/gin-gonic/gin"
)

// ResourceHandler 把通用资源控制器的五个操作暴露为 HTTP 接口。
// 所有错误在这里收口并转成统一信封，不会有异常穿透到路由层。
type ResourceHandler[T any] struct {
	svc *service.Resource[T]
}

// NewResourceHandler 创建一个新的 ResourceHandler 实例。
func NewResourceHandler[T any](svc *service.Resource[T]) *ResourceHandler[T] {
	return &ResourceHandler[T]{svc: svc}
}

// GetQuery 处理查询列表请求，条件来自查询串。
func (h *ResourceHandler[T]) GetQuery(c *gin.Context) {
	h.doQuery(c, queryParams(c))
}

// PostQuery 处理查询列表请求，条件来自 JSON 请求体。
func (h *ResourceHandler[T]) PostQuery(c *gin.Context) {
	payload, ok := bodyParams(c, h.svc.Name())
	if !ok {
		return
	}
	h.doQuery(c, payload)
}

func (h *ResourceHandler[T]) doQuery(c *gin.Context, params map[string]interface{}) {
	name := h.svc.Name()
	log.Infof("%s查询 user:%s params:%v", name, middleware.CurrentUsername(c), params)

	items, total, err := h.svc.Query(params)
	if err != nil {
		log.Errorf("%s查询错误 params:%v error:%v", name, params, err)
		response.JSON(c, response.CodeOf(err), fmt.Sprintf("%s查询错误 error:%v", name, err), nil)
		return
	}
	response.JSONTotal(c, response.CodeOK, name+"查询成功", items, total)
}

// Create 处理创建请求。
func (h *ResourceHandler[T]) Create(c *gin.Context) {
	name := h.svc.Name()
	payload, ok := bodyParams(c, name)
	if !ok {
		return
	}
	editor := middleware.CurrentUsername(c)
	log.Infof("%s创建 user:%s params:%v", name, editor, payload)

	obj, err := h.svc.Create(payload, editor)
	if err != nil {
		log.Errorf("%s创建错误 params:%v error:%v", name, payload, err)
		response.JSON(c, response.CodeOf(err), fmt.Sprintf("%s创建错误 error:%v", name, err), nil)
		return
	}
	response.JSON(c, response.CodeOK, name+"创建成功", obj)
}

// Update 处理按 id 的部分更新请求。
func (h *ResourceHandler[T]) Update(c *gin.Context) {
	name := h.svc.Name()
	payload, ok := bodyParams(c, name)
	if !ok {
		return
	}
	editor := middleware.CurrentUsername(c)
	log.Infof("%s更新 user:%s params:%v", name, editor, payload)

	obj, err := h.svc.Update(payload, editor)
	if err != nil {
		log.Errorf("%s更新错误 params:%v error:%v", name, payload, err)
		response.JSON(c, response.CodeOf(err), fmt.Sprintf("%s更新错误 error:%v", name, err), nil)
		return
	}
	response.JSON(c, response.CodeOK, name+"更新成功", obj)
}

// Delete 处理软删除请求，行保留在表中。
func (h *ResourceHandler[T]) Delete(c *gin.Context) {
	name := h.svc.Name()
	payload, ok := bodyParams(c, name)
	if !ok {
		return
	}
	editor := middleware.CurrentUsername(c)
	log.Infof("%s删除 user:%s params:%v", name, editor, payload)

	id, err := h.svc.Delete(payload, editor)
	if err != nil {
		log.Errorf("%s删除错误 params:%v error:%v", name, payload, err)
		response.JSON(c, response.CodeOf(err), fmt.Sprintf("%s删除错误 error:%v", name, err), nil)
		return
	}
	response.JSON(c, response.CodeOK, name+"删除成功", id)
}

// AbsDelete 处理物理删除请求。
func (h *ResourceHandler[T]) AbsDelete(c *gin.Context) {
	name := h.svc.Name()
	payload, ok := bodyParams(c, name)
	if !ok {
		return
	}
	log.Infof("%s删除 user:%s params:%v", name, middleware.CurrentUsername(c), payload)

	id, err := h.svc.AbsDelete(payload)
	if err != nil {
		log.Errorf("%s删除错误 params:%v error:%v", name, payload, err)
		response.JSON(c, response.CodeOf(err), fmt.Sprintf("%s删除错误 error:%v", name, err), nil)
		return
	}
	response.JSON(c, response.CodeOK, name+"删除成功", id)
}

// queryParams 把 URL 查询串展平成参数映射，同名参数取第一个值。
func queryParams(c *gin.Context) map[string]interface{} {
	params := map[string]interface{}{}
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}

// bodyParams 解析 JSON 请求体，空请求体视为空参数。
// 解析失败时直接写出参数错误信封并返回 false。
func bodyParams(c *gin.Context, resource string) (map[string]interface{}, bool) {
	params := map[string]interface{}{}
	if err := c.ShouldBindJSON(&params); err != nil && !errors.Is(err, io.EOF) {
		log.Warnf("%s请求体解析失败 error:%v", resource, err)
		response.JSON(c, response.CodeParamErr, fmt.Sprintf("%s参数错误 error:%v", resource, err), nil)
		return nil, false
	}
	return params, true
}
