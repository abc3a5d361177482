// Package model 定义了与数据库表对应的 Go 结构体。
package model

import (
	"gorm.io/gorm"
)

// BaseModel 是所有实体的公共字段：自增主键、审计时间和编辑人。
// Editor 在每次写操作时由控制器用当前登录身份覆盖。
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt LocalTime `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt LocalTime `gorm:"autoUpdateTime" json:"updated_at"`
	Editor    string    `gorm:"type:varchar(191)" json:"editor"`
}

// RichModel 在 BaseModel 之上附加备注、使用标识和软删除标识。
// IsDeleted 为 0 表示在用；软删除时写入行自身的 id，
// 这样 (name, is_deleted) 组合唯一键允许同名记录被反复删除再重建。
type RichModel struct {
	BaseModel
	Comment   string `gorm:"type:varchar(191)" json:"comment"`
	IsUsed    bool   `gorm:"default:false" json:"is_used"`
	IsDeleted int    `gorm:"default:0;uniqueIndex:uk_name_deleted" json:"-"`
}

// ActiveScope 只保留未软删除的记录。
func ActiveScope(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = 0")
}
