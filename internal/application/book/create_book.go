package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// CreateBookUseCase 图书创建用例
// 设计说明:
// 1. 应用层负责用例编排,业务规则校验(ISBN唯一性)由领域服务负责
// 2. 输入输出使用DTO,与HTTP层解耦
type CreateBookUseCase struct {
	bookService book.Service
}

// NewCreateBookUseCase 创建图书创建用例
func NewCreateBookUseCase(bookService book.Service) *CreateBookUseCase {
	return &CreateBookUseCase{
		bookService: bookService,
	}
}

// CreateBookRequest 创建请求DTO
type CreateBookRequest struct {
	Title  string // 书名
	Author string // 作者
	ISBN   string // ISBN号
}

// BookResponse 图书响应DTO(创建/查询/更新共用)
type BookResponse struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	ISBN      string `json:"isbn"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Execute 执行图书创建用例
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (*BookResponse, error) {
	b, err := uc.bookService.CreateBook(ctx, req.Title, req.Author, req.ISBN)
	if err != nil {
		return nil, err
	}

	return toBookResponse(b), nil
}

// toBookResponse 领域实体 → 响应DTO
func toBookResponse(b *book.Book) *BookResponse {
	return &BookResponse{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		ISBN:      b.ISBN,
		CreatedAt: b.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: b.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
