package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// ListBooksUseCase 图书列表查询用例
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建图书列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService}
}

// ListBooksRequest 图书列表查询请求
type ListBooksRequest struct {
	Title    string `form:"title"`
	Author   string `form:"author"`
	ISBN     string `form:"isbn"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// ListBooksResponse 图书列表查询响应
type ListBooksResponse struct {
	Books []*BookResponse `json:"books"`
	Total int64           `json:"total"`
}

// Execute 执行图书列表查询用例
func (uc *ListBooksUseCase) Execute(ctx context.Context, req *ListBooksRequest) (*ListBooksResponse, error) {
	// 分页参数兜底
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	params := book.FilterParams{
		Title:    req.Title,
		Author:   req.Author,
		ISBN:     req.ISBN,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	books, total, err := uc.bookService.FindBooks(ctx, params)
	if err != nil {
		return nil, err
	}

	resp := &ListBooksResponse{
		Books: make([]*BookResponse, 0, len(books)),
		Total: total,
	}
	for _, b := range books {
		resp.Books = append(resp.Books, toBookResponse(b))
	}
	return resp, nil
}
