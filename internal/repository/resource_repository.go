// Package repository 包含了所有与数据库交互的逻辑。
package repository

import (
	"gorm.io/gorm"
)

// 批量写入的默认批大小。
const DefaultBatchSize = 500

// Scope 在基础查询上追加约束，用于收窄某类操作可见的行。
type Scope func(*gorm.DB) *gorm.DB

// ResourceStore 是实体存储的通用契约。
// 查询默认按 updated_at 倒序；更新和删除各自走可被收窄的查询范围。
// 一致性保证完全交给底层存储引擎，这里不做显式事务。
type ResourceStore[T any] interface {
	Filter(criteria map[string]interface{}) ([]T, error)
	GetForUpdate(id int64) (*T, error)
	GetForDelete(id int64) (*T, error)
	Insert(obj *T) error
	Patch(obj *T, fields map[string]interface{}) error
	Remove(obj *T) error
	InsertBatch(objs []T, batchSize int) error
	UpdateBatch(objs []T, batchSize int) error
}

type resourceStore[T any] struct {
	db          *gorm.DB
	scope       Scope
	updateScope Scope
	deleteScope Scope
	order       string
}

// StoreOption 配置一个 resourceStore。
type StoreOption[T any] func(*resourceStore[T])

// WithScope 设置查询的基础范围（例如只看未软删除的行）。
func WithScope[T any](s Scope) StoreOption[T] {
	return func(r *resourceStore[T]) { r.scope = s }
}

// WithUpdateScope 单独收窄更新操作可见的行。
func WithUpdateScope[T any](s Scope) StoreOption[T] {
	return func(r *resourceStore[T]) { r.updateScope = s }
}

// WithDeleteScope 单独收窄删除操作可见的行。
func WithDeleteScope[T any](s Scope) StoreOption[T] {
	return func(r *resourceStore[T]) { r.deleteScope = s }
}

// WithOrder 覆盖默认排序。
func WithOrder[T any](order string) StoreOption[T] {
	return func(r *resourceStore[T]) { r.order = order }
}

// NewResourceStore 创建一个基于 GORM 的通用实体存储。
// 未指定时，更新和删除沿用基础查询范围。
func NewResourceStore[T any](db *gorm.DB, opts ...StoreOption[T]) ResourceStore[T] {
	r := &resourceStore[T]{
		db:    db,
		scope: func(tx *gorm.DB) *gorm.DB { return tx },
		order: "updated_at DESC",
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.updateScope == nil {
		r.updateScope = r.scope
	}
	if r.deleteScope == nil {
		r.deleteScope = r.scope
	}
	return r
}

// Filter 按等值条件检索基础范围内的记录，结果按默认排序返回。
func (r *resourceStore[T]) Filter(criteria map[string]interface{}) ([]T, error) {
	tx := r.scope(r.db.Model(new(T)))
	if len(criteria) > 0 {
		tx = tx.Where(criteria)
	}
	var items []T
	err := tx.Order(r.order).Find(&items).Error
	return items, err
}

// GetForUpdate 在更新范围内按 id 加载一条记录。
func (r *resourceStore[T]) GetForUpdate(id int64) (*T, error) {
	var obj T
	err := r.updateScope(r.db.Model(new(T))).First(&obj, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &obj, nil
}

// GetForDelete 在删除范围内按 id 加载一条记录。
func (r *resourceStore[T]) GetForDelete(id int64) (*T, error) {
	var obj T
	err := r.deleteScope(r.db.Model(new(T))).First(&obj, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &obj, nil
}

// Insert 插入一条新记录，id 和审计时间由存储层填充。
func (r *resourceStore[T]) Insert(obj *T) error {
	return r.db.Create(obj).Error
}

// Patch 将部分字段合并到已加载的记录上，updated_at 随之刷新。
func (r *resourceStore[T]) Patch(obj *T, fields map[string]interface{}) error {
	return r.db.Model(obj).Updates(fields).Error
}

// Remove 物理删除一条记录。
func (r *resourceStore[T]) Remove(obj *T) error {
	return r.db.Delete(obj).Error
}

// InsertBatch 分批插入记录。
func (r *resourceStore[T]) InsertBatch(objs []T, batchSize int) error {
	if len(objs) == 0 {
		return nil
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return r.db.CreateInBatches(objs, batchSize).Error
}

// UpdateBatch 在单个事务中分批保存整行记录。
func (r *resourceStore[T]) UpdateBatch(objs []T, batchSize int) error {
	if len(objs) == 0 {
		return nil
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range objs {
			if err := tx.Save(&objs[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
