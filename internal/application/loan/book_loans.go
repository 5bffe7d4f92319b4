package loan

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
)

// BookLoansUseCase 单本图书借阅历史查询用例
type BookLoansUseCase struct {
	loanService loan.Service
	bookService book.Service
}

// NewBookLoansUseCase 创建单本图书借阅历史查询用例
func NewBookLoansUseCase(loanService loan.Service, bookService book.Service) *BookLoansUseCase {
	return &BookLoansUseCase{
		loanService: loanService,
		bookService: bookService,
	}
}

// BookLoansRequest 单本图书借阅历史查询请求
type BookLoansRequest struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// Execute 执行单本图书借阅历史查询用例
// 借阅按借出日期倒序返回,最近一次借阅在最前
func (uc *BookLoansUseCase) Execute(ctx context.Context, bookID uint, req *BookLoansRequest) (*ListLoansResponse, error) {
	// 先确认图书存在:图书不存在时返回NotFound,而非空的借阅列表
	if _, err := uc.bookService.GetBookByID(ctx, bookID); err != nil {
		return nil, err
	}

	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	loans, total, err := uc.loanService.GetLoansByBook(ctx, bookID, loan.PageParams{
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		return nil, err
	}

	resp := &ListLoansResponse{
		Loans: make([]*LoanResponse, 0, len(loans)),
		Total: total,
	}
	for _, l := range loans {
		resp.Loans = append(resp.Loans, toLoanResponse(l))
	}
	return resp, nil
}
