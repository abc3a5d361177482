// Package pager 将一段有序结果切成固定大小的页。
//
// 分页从不向调用方返回错误：页码无法解析、越界或为负时，
// 一律退化为返回第一页。
package pager

import "strconv"

// Pager 持有完整的有序结果集和页大小。
type Pager[T any] struct {
	items []T
	limit int
	Total int
}

// New 创建一个 Pager。limit 必须为正整数，由调用方先行校验。
func New[T any](items []T, limit int) *Pager[T] {
	return &Pager[T]{items: items, limit: limit, Total: len(items)}
}

// Page 返回第 offset 页（页码从 1 开始）。
// offset 解析失败按 1 处理；结果集为空返回空切片；
// 计算出的下界为负时返回第一页。
func (p *Pager[T]) Page(offset string) []T {
	idx, err := strconv.Atoi(offset)
	if err != nil {
		idx = 1
	}

	bottom := (idx - 1) * p.limit
	top := bottom + p.limit

	if p.Total == 0 {
		return []T{}
	}
	if bottom < 0 {
		return p.firstPage()
	}
	if bottom > p.Total {
		return []T{}
	}
	if top > p.Total {
		top = p.Total
	}
	return p.items[bottom:top]
}

func (p *Pager[T]) firstPage() []T {
	top := p.limit
	if top > p.Total {
		top = p.Total
	}
	return p.items[0:top]
}
