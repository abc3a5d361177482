package model

// BookLabel 对应数据库中的 'book_labels' 关联表。
// 关联关系没有软删除，只支持物理删除；删除书或标签不会级联删除关联行。
type BookLabel struct {
	BaseModel
	BookID  int64 `gorm:"not null;uniqueIndex:uk_book_label" json:"book_id"`
	LabelID int64 `gorm:"not null;uniqueIndex:uk_book_label" json:"label_id"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (BookLabel) TableName() string {
	return "book_labels"
}
