package loan

import (
	"context"
	"errors"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/metrics"
)

// CreateLoanUseCase 借阅创建用例
// 设计说明:
// 1. 接口层传入ISBN,此处先解析为图书再创建借阅(图书不存在直接失败)
// 2. 借出日期取当天,由用例层确定后传入领域服务
type CreateLoanUseCase struct {
	loanService loan.Service
	bookService book.Service
}

// NewCreateLoanUseCase 创建借阅创建用例
func NewCreateLoanUseCase(loanService loan.Service, bookService book.Service) *CreateLoanUseCase {
	return &CreateLoanUseCase{
		loanService: loanService,
		bookService: bookService,
	}
}

// CreateLoanRequest 借阅创建请求
type CreateLoanRequest struct {
	ISBN          string `json:"isbn"`
	Customer      string `json:"customer"`
	CustomerEmail string `json:"customer_email"`
}

// LoanResponse 借阅响应DTO(创建/归还/查询共用)
type LoanResponse struct {
	ID            uint      `json:"id"`
	BookID        uint      `json:"book_id"`
	Book          *BookInfo `json:"book,omitempty"`
	Customer      string    `json:"customer"`
	CustomerEmail string    `json:"customer_email"`
	LoanDate      string    `json:"loan_date"`
	Returned      bool      `json:"returned"`
}

// BookInfo 借阅响应中内嵌的图书信息
type BookInfo struct {
	ID     uint   `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn"`
}

// Execute 执行借阅创建用例
func (uc *CreateLoanUseCase) Execute(ctx context.Context, req CreateLoanRequest) (*LoanResponse, error) {
	// 1. 按ISBN解析图书
	b, err := uc.bookService.GetBookByISBN(ctx, req.ISBN)
	if err != nil {
		if book.IsNotFound(err) {
			return nil, apperrors.New(apperrors.ErrCodeBookNotFound, "所传ISBN未找到对应图书")
		}
		return nil, err
	}

	// 2. 创建借阅(借出日期取当天)
	l, err := uc.loanService.CreateLoan(ctx, b.ID, req.Customer, req.CustomerEmail, time.Now())
	if err != nil {
		if errors.Is(err, loan.ErrBookAlreadyLoaned) {
			metrics.IncCounter(metrics.LoansRejectedTotal)
		}
		return nil, err
	}

	metrics.IncCounter(metrics.LoansCreatedTotal)

	resp := toLoanResponse(l)
	resp.Book = &BookInfo{ID: b.ID, Title: b.Title, Author: b.Author, ISBN: b.ISBN}
	return resp, nil
}

// toLoanResponse 领域实体 → 响应DTO
func toLoanResponse(l *loan.Loan) *LoanResponse {
	resp := &LoanResponse{
		ID:            l.ID,
		BookID:        l.BookID,
		Customer:      l.Customer,
		CustomerEmail: l.CustomerEmail,
		LoanDate:      l.LoanDate.Format("2006-01-02"),
		Returned:      !l.IsOpen(),
	}
	if l.Book != nil {
		resp.Book = &BookInfo{
			ID:     l.Book.ID,
			Title:  l.Book.Title,
			Author: l.Book.Author,
			ISBN:   l.Book.ISBN,
		}
	}
	return resp
}
