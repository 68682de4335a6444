package service

import "gorm.io/gorm"

// Page is one page of a larger result set.
type Page[T any] struct {
	Items []T
	Total int64
	Page  int
	Limit int
}

// Paginate counts the rows matched by query and loads the requested page.
// page and limit are clamped to sane values.
func Paginate[T any](query *gorm.DB, page, limit int) (*Page[T], error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	items := []T{}
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}

	return &Page[T]{Items: items, Total: total, Page: page, Limit: limit}, nil
}
