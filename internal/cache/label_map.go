// Package cache 维护标签表在外部缓存中的反规范化映射。
package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"book-admin-go/internal/model"
	pkgcache "book-admin-go/pkg/cache"
	"book-admin-go/pkg/log"
)

// LabelMapKey 是标签映射在缓存中的固定键。
const LabelMapKey = "book_label_map"

const labelMapTTL = 7 * 24 * time.Hour

// LabelLoader 从存储层加载全部在用标签。
type LabelLoader func() ([]model.Label, error)

// LabelMap 是 id 到标签序列化结果的缓存映射。
// 缓存未命中时惰性重建；任何标签写操作必须先使之失效，
// 保证下一次读取从存储层重建。
type LabelMap struct {
	store  pkgcache.Store
	loader LabelLoader
}

// NewLabelMap 创建一个 LabelMap。store 应当是包装过错误吞咽的缓存。
func NewLabelMap(store pkgcache.Store, loader LabelLoader) *LabelMap {
	return &LabelMap{store: store, loader: loader}
}

// GetMap 返回标签 id（字符串形式）到标签序列化结果的映射。
// 缓存读写失败等价于缓存为空，透明回落到从存储层重建。
func (m *LabelMap) GetMap(ctx context.Context) (map[string]json.RawMessage, error) {
	raw, _ := m.store.Get(ctx, LabelMapKey)
	if raw != "" {
		var cached map[string]json.RawMessage
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return cached, nil
		}
		log.Warnf("标签映射缓存内容损坏，重建 key:%s", LabelMapKey)
	}

	labels, err := m.loader()
	if err != nil {
		return nil, err
	}

	data := make(map[string]json.RawMessage, len(labels))
	for i := range labels {
		body, err := json.Marshal(&labels[i])
		if err != nil {
			return nil, err
		}
		data[strconv.FormatUint(uint64(labels[i].ID), 10)] = body
	}

	if encoded, err := json.Marshal(data); err == nil {
		_ = m.store.Set(ctx, LabelMapKey, string(encoded), labelMapTTL)
	}
	return data, nil
}

// Invalidate 删除缓存键，下一次读取将从存储层重建。
func (m *LabelMap) Invalidate(ctx context.Context) {
	_ = m.store.Del(ctx, LabelMapKey)
}
