package service

import (
	"context"
	"encoding/json"
	"strconv"

	"book-admin-go/internal/cache"
	"book-admin-go/internal/model"
	"book-admin-go/internal/repository"
)

// BookService 提供通用 CRUD 之外的书籍业务操作。
type BookService interface {
	MenuOption() map[string]interface{}
	QueryAttachLabel(ctx context.Context, params map[string]interface{}) ([]map[string]interface{}, int, error)
}

type bookService struct {
	books     *Resource[model.Book]
	relations repository.ResourceStore[model.BookLabel]
	labelMap  *cache.LabelMap
}

// NewBookService 创建一个新的 BookService 实例。
func NewBookService(books *Resource[model.Book], relations repository.ResourceStore[model.BookLabel], labelMap *cache.LabelMap) BookService {
	return &bookService{books: books, relations: relations, labelMap: labelMap}
}

// MenuOption 返回枚举字段的取值字典，供前端按存储值渲染展示名。
func (s *bookService) MenuOption() map[string]interface{} {
	return map[string]interface{}{
		"kind":       model.BookKindChoices,
		"publishing": model.PublishingChoices,
	}
}

// QueryAttachLabel 在标准查询结果上为每本书附加 label_info：
// 经由关联表命中的在用标签的序列化结果，标签数据来自缓存映射。
func (s *bookService) QueryAttachLabel(ctx context.Context, params map[string]interface{}) ([]map[string]interface{}, int, error) {
	books, total, err := s.books.Query(params)
	if err != nil {
		return nil, 0, err
	}

	labelMap, err := s.labelMap.GetMap(ctx)
	if err != nil {
		return nil, 0, err
	}

	data := make([]map[string]interface{}, 0, len(books))
	for i := range books {
		rels, err := s.relations.Filter(map[string]interface{}{"book_id": books[i].ID})
		if err != nil {
			return nil, 0, err
		}

		labelInfo := make([]json.RawMessage, 0, len(rels))
		for _, rel := range rels {
			// 指向已软删除标签的关联行直接跳过
			if body, ok := labelMap[strconv.FormatInt(rel.LabelID, 10)]; ok {
				labelInfo = append(labelInfo, body)
			}
		}

		row, err := toMap(&books[i])
		if err != nil {
			return nil, 0, err
		}
		row["label_info"] = labelInfo
		data = append(data, row)
	}
	return data, total, nil
}

// toMap 把实体序列化为通用映射，便于在标准表示上追加字段。
func toMap(obj interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
