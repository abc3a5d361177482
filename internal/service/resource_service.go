// Package service 包含了应用的业务逻辑层。
package service

import (
	"encoding/json"
	"strconv"

	"book-admin-go/internal/repository"
	"book-admin-go/pkg/pager"
	"book-admin-go/pkg/response"
)

// ResourceConfig 描述一个资源的字段白名单和必填字段。
// 调用方传入的字段只有在对应操作的白名单内才会生效。
type ResourceConfig struct {
	Resource            string // 资源的展示名，用于日志和响应消息
	QueryField          []string
	CreateField         []string
	UpdateField         []string
	CreateRequiredField []string
	UpdateRequiredField []string // 为空时默认只要求 id
}

// Validator 由需要在持久化前做取值校验的实体实现。
type Validator interface {
	Validate() error
}

// Resource 是参数化的通用资源控制器，实现查询、创建、部分更新、
// 软删除和物理删除。每次写操作都会用当前登录身份覆盖 editor 字段。
type Resource[T any] struct {
	store      repository.ResourceStore[T]
	cfg        ResourceConfig
	afterWrite func()
}

// ResourceOption 配置一个 Resource。
type ResourceOption[T any] func(*Resource[T])

// WithWriteHook 注册一个在每次成功写入后触发的回调，
// 例如失效该资源的派生缓存。
func WithWriteHook[T any](fn func()) ResourceOption[T] {
	return func(r *Resource[T]) { r.afterWrite = fn }
}

// NewResource 创建一个通用资源控制器。
func NewResource[T any](store repository.ResourceStore[T], cfg ResourceConfig, opts ...ResourceOption[T]) *Resource[T] {
	if len(cfg.UpdateRequiredField) == 0 {
		cfg.UpdateRequiredField = []string{"id"}
	}
	r := &Resource[T]{store: store, cfg: cfg}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name 返回资源的展示名。
func (r *Resource[T]) Name() string {
	return r.cfg.Resource
}

// Query 按白名单过滤查询条件并检索记录。
// offset 和 limit 同时给出时走分页，total 为分页前的记录总数；
// 否则返回全集，total 等于结果长度。
func (r *Resource[T]) Query(params map[string]interface{}) ([]T, int, error) {
	criteria := map[string]interface{}{}
	for _, f := range r.cfg.QueryField {
		v, ok := params[f]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && s == "" {
			continue
		}
		criteria[f] = v
	}

	items, err := r.store.Filter(criteria)
	if err != nil {
		return nil, 0, err
	}

	offset := asString(params["offset"])
	limit := asString(params["limit"])
	if offset != "" && limit != "" {
		size, err := strconv.Atoi(limit)
		if err != nil || size <= 0 {
			return nil, 0, response.ParamError("limit 参数不合法")
		}
		p := pager.New(items, size)
		return p.Page(offset), p.Total, nil
	}
	return items, len(items), nil
}

// Create 按白名单过滤创建参数，校验必填字段后持久化。
// editor 由调用方身份决定，调用方提交的同名字段会被覆盖。
func (r *Resource[T]) Create(payload map[string]interface{}, editor string) (*T, error) {
	params := pick(payload, r.cfg.CreateField)
	for _, f := range r.cfg.CreateRequiredField {
		if _, ok := params[f]; !ok {
			return nil, response.ParamError("缺少必填参数")
		}
	}
	params["editor"] = editor

	obj, err := bind[T](params)
	if err != nil {
		return nil, err
	}
	if v, ok := any(obj).(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, response.ParamError(err.Error())
		}
	}

	if err := r.store.Insert(obj); err != nil {
		return nil, err
	}
	r.fireWrite()
	return obj, nil
}

// Update 按白名单过滤更新参数，按 id 从更新范围加载目标行，
// 把非空字段作为部分补丁合并后持久化。
func (r *Resource[T]) Update(payload map[string]interface{}, editor string) (*T, error) {
	params := pick(payload, r.cfg.UpdateField)
	for _, f := range r.cfg.UpdateRequiredField {
		if _, ok := params[f]; !ok {
			return nil, response.ParamError("缺少必填参数")
		}
	}

	id, err := asInt64(params["id"])
	if err != nil {
		return nil, response.ParamError("id 参数不合法")
	}
	delete(params, "id")

	obj, err := r.store.GetForUpdate(id)
	if err != nil {
		return nil, err
	}

	// 先在合并结果上做取值校验，再落库
	merged, err := mergeInto(obj, params)
	if err != nil {
		return nil, err
	}
	if v, ok := any(merged).(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, response.ParamError(err.Error())
		}
	}

	params["editor"] = editor
	if err := r.store.Patch(obj, params); err != nil {
		return nil, err
	}
	r.fireWrite()

	return r.store.GetForUpdate(id)
}

// Delete 对目标行做软删除：is_deleted 写入行自身的 id，行保留在表中。
// payload 里 is_deleted 取假值时表示恢复（写回 0）。
func (r *Resource[T]) Delete(payload map[string]interface{}, editor string) (int64, error) {
	idv, ok := payload["id"]
	if !ok || idv == nil {
		return 0, response.ParamError("缺少id参数")
	}
	id, err := asInt64(idv)
	if err != nil {
		return 0, response.ParamError("id 参数不合法")
	}

	deleted := true
	if v, ok := payload["is_deleted"]; ok {
		deleted = truthy(v)
	}

	obj, err := r.store.GetForDelete(id)
	if err != nil {
		return 0, err
	}

	var marker int64
	if deleted {
		marker = id
	}
	if err := r.store.Patch(obj, map[string]interface{}{"is_deleted": marker, "editor": editor}); err != nil {
		return 0, err
	}
	r.fireWrite()
	return id, nil
}

// AbsDelete 从删除范围内物理移除目标行。
func (r *Resource[T]) AbsDelete(payload map[string]interface{}) (int64, error) {
	idv, ok := payload["id"]
	if !ok || idv == nil {
		return 0, response.ParamError("缺少id参数")
	}
	id, err := asInt64(idv)
	if err != nil {
		return 0, response.ParamError("id 参数不合法")
	}

	obj, err := r.store.GetForDelete(id)
	if err != nil {
		return 0, err
	}
	if err := r.store.Remove(obj); err != nil {
		return 0, err
	}
	r.fireWrite()
	return id, nil
}

func (r *Resource[T]) fireWrite() {
	if r.afterWrite != nil {
		r.afterWrite()
	}
}

// pick 保留白名单内且取值非空的键。
func pick(payload map[string]interface{}, fields []string) map[string]interface{} {
	params := map[string]interface{}{}
	for _, f := range fields {
		if v, ok := payload[f]; ok && v != nil {
			params[f] = v
		}
	}
	return params
}

// bind 通过 JSON 往返把参数映射绑定到实体上，类型不匹配按参数错误处理。
func bind[T any](params map[string]interface{}) (*T, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, response.ParamError("参数序列化失败: " + err.Error())
	}
	obj := new(T)
	if err := json.Unmarshal(raw, obj); err != nil {
		return nil, response.ParamError("参数类型不合法: " + err.Error())
	}
	return obj, nil
}

// mergeInto 把部分补丁叠加到已有实体的序列化结果上，返回合并后的实体。
func mergeInto[T any](obj *T, params map[string]interface{}) (*T, error) {
	base, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(base, &m); err != nil {
		return nil, err
	}
	for k, v := range params {
		m[k] = v
	}
	return bind[T](m)
}

// asString 把查询参数的取值统一转成字符串形式。
func asString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}

// asInt64 解析 JSON 或查询串中的 id 取值。
func asInt64(v interface{}) (int64, error) {
	switch t := v.(type) {
	case float64:
		return int64(t), nil
	case int:
		return int64(t), nil
	case int64:
		return t, nil
	case json.Number:
		return t.Int64()
	case string:
		return strconv.ParseInt(t, 10, 64)
	}
	return 0, strconv.ErrSyntax
}

// truthy 按宽松语义判断布尔取值：false、0、空串、"0"、"false" 为假。
func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	case string:
		return t != "" && t != "0" && t != "false" && t != "False"
	}
	return true
}
