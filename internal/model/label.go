package model

import "gorm.io/gorm"

// Label 对应数据库中的 'labels' 表。
type Label struct {
	RichModel
	Name        string `gorm:"type:varchar(191);not null;uniqueIndex:uk_name_deleted" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Label) TableName() string {
	return "labels"
}

// LabelDeletableScope 只保留允许删除的标签：未软删除且未被使用。
func LabelDeletableScope(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = 0 AND is_used = ?", false)
}
