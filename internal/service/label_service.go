package service

import (
	"context"

	"book-admin-go/internal/model"
	"book-admin-go/internal/repository"
)

// LabelService 提供通用 CRUD 之外的标签业务操作。
type LabelService interface {
	QueryAttachBook(ctx context.Context, params map[string]interface{}) ([]map[string]interface{}, int, error)
}

type labelService struct {
	labels    *Resource[model.Label]
	relations repository.ResourceStore[model.BookLabel]
	books     repository.BookRepository
}

// NewLabelService 创建一个新的 LabelService 实例。
func NewLabelService(labels *Resource[model.Label], relations repository.ResourceStore[model.BookLabel], books repository.BookRepository) LabelService {
	return &labelService{labels: labels, relations: relations, books: books}
}

// QueryAttachBook 在标准查询结果上为每个标签附加 book_info：
// 经由关联表命中的全部在用书籍。
func (s *labelService) QueryAttachBook(ctx context.Context, params map[string]interface{}) ([]map[string]interface{}, int, error) {
	labels, total, err := s.labels.Query(params)
	if err != nil {
		return nil, 0, err
	}

	data := make([]map[string]interface{}, 0, len(labels))
	for i := range labels {
		rels, err := s.relations.Filter(map[string]interface{}{"label_id": labels[i].ID})
		if err != nil {
			return nil, 0, err
		}

		bookIDs := make([]int64, 0, len(rels))
		for _, rel := range rels {
			bookIDs = append(bookIDs, rel.BookID)
		}
		books, err := s.books.FindActiveByIDs(bookIDs)
		if err != nil {
			return nil, 0, err
		}

		row, err := toMap(&labels[i])
		if err != nil {
			return nil, 0, err
		}
		row["book_info"] = books
		data = append(data, row)
	}
	return data, total, nil
}
