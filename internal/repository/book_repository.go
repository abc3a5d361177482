package repository

import (
	"book-admin-go/internal/model"

	"gorm.io/gorm"
)

// BookRepository 提供了通用存储之外的书籍专用查询。
type BookRepository interface {
	FindActiveByIDs(ids []int64) ([]model.Book, error)
}

type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建一个新的 BookRepository 实例。
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

// FindActiveByIDs 按 id 集合查找未软删除的书籍。
func (r *bookRepository) FindActiveByIDs(ids []int64) ([]model.Book, error) {
	var books []model.Book
	if len(ids) == 0 {
		return books, nil
	}
	err := r.db.Where("id IN ? AND is_deleted = 0", ids).Find(&books).Error
	return books, err
}
