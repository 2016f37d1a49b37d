package dto

import "github.com/thereayou/colabnow/internal/services"

// Page - страница выдачи; next_page и prev_page равны null на краях
type Page[T any] struct {
	Items    []T   `json:"items"`
	Page     int   `json:"page"`
	NextPage *int  `json:"next_page"`
	PrevPage *int  `json:"prev_page"`
	Total    int64 `json:"total"`
}

func NewPage[T any, R any](p services.PageResult[T], convert func(T) R) Page[R] {
	items := make([]R, len(p.Items))
	for i, item := range p.Items {
		items[i] = convert(item)
	}

	page := Page[R]{Items: items, Page: p.Number, Total: p.Total}
	if p.HasNext() {
		next := p.Number + 1
		page.NextPage = &next
	}
	if p.HasPrev() {
		prev := p.Number - 1
		page.PrevPage = &prev
	}
	return page
}
