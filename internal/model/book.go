package model

import (
	"encoding/json"
	"fmt"
)

// 书籍类型的存储值。入库和接口传输一律使用英文标签，
// 中文展示名只通过 kind_display 和菜单选项接口下发，两者不可混用。
const (
	KindClassical     = "classical"
	KindStory         = "story"
	KindKnowledge     = "knowledge"
	KindEmotion       = "emotion"
	KindMiscellaneous = "miscellaneous"
)

// BookKindChoices 是书籍类型存储值到展示名的映射。
var BookKindChoices = map[string]string{
	KindClassical:     "古典",
	KindStory:         "小说",
	KindKnowledge:     "科学知识类",
	KindEmotion:       "故事情感",
	KindMiscellaneous: "杂项",
}

// 出版标识。
const (
	Unpublished = 0
	Published   = 1
)

// PublishingChoices 是出版标识到展示名的映射。
var PublishingChoices = map[int]string{
	Unpublished: "未出版",
	Published:   "已出版",
}

// Book 对应数据库中的 'books' 表。
type Book struct {
	RichModel
	Name            string     `gorm:"type:varchar(191);not null;uniqueIndex:uk_name_deleted" json:"name"`
	Writer          string     `gorm:"type:varchar(191)" json:"writer"`
	Kind            string     `gorm:"type:varchar(191);default:story" json:"kind"`
	Link            string     `gorm:"type:varchar(191)" json:"link"`
	Directory       string     `gorm:"type:varchar(191)" json:"directory"`
	Publishing      int        `gorm:"default:0" json:"publishing"`
	PublicationDate *LocalDate `gorm:"type:date" json:"publication_date"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Book) TableName() string {
	return "books"
}

// Validate 校验枚举字段的取值。
func (b *Book) Validate() error {
	if b.Kind != "" {
		if _, ok := BookKindChoices[b.Kind]; !ok {
			return fmt.Errorf("无效的书籍类型: %s", b.Kind)
		}
	}
	if _, ok := PublishingChoices[b.Publishing]; !ok {
		return fmt.Errorf("无效的出版标识: %d", b.Publishing)
	}
	return nil
}

// MarshalJSON 在标准序列化结果上附加枚举字段的展示名。
func (b Book) MarshalJSON() ([]byte, error) {
	type alias Book
	return json.Marshal(struct {
		alias
		KindDisplay       string `json:"kind_display"`
		PublishingDisplay string `json:"publishing_display"`
	}{
		alias:             alias(b),
		KindDisplay:       BookKindChoices[b.Kind],
		PublishingDisplay: PublishingChoices[b.Publishing],
	})
}
