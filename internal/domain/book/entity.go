package book

import (
	"time"
)

// Book 图书实体(聚合根)
// 设计说明:
// 1. Book是图书目录聚合的根实体
// 2. ISBN作为业务唯一标识(数据库层保证唯一性)
// 3. 借阅记录不在Book聚合内,Book不持有Loan的引用(避免跨聚合引用)
type Book struct {
	ID        uint
	Title     string // 书名
	Author    string // 作者
	ISBN      string // ISBN号(国际标准书号)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBook 创建新图书(工厂方法)
func NewBook(title, author, isbn string) *Book {
	now := time.Now()
	return &Book{
		Title:     title,
		Author:    author,
		ISBN:      isbn,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpdateInfo 更新图书基本信息
// 业务规则:ISBN创建后不可修改,只允许更新书名和作者
func (b *Book) UpdateInfo(title, author string) {
	if title != "" {
		b.Title = title
	}
	if author != "" {
		b.Author = author
	}
	b.UpdatedAt = time.Now()
}
