package loan

import (
	"context"

	"github.com/xiebiao/library/internal/domain/loan"
)

// ListLoansUseCase 借阅列表查询用例
type ListLoansUseCase struct {
	loanService loan.Service
}

// NewListLoansUseCase 创建借阅列表查询用例
func NewListLoansUseCase(loanService loan.Service) *ListLoansUseCase {
	return &ListLoansUseCase{loanService: loanService}
}

// ListLoansRequest 借阅列表查询请求
// isbn与customer为OR过滤:匹配任一条件的借阅都返回
type ListLoansRequest struct {
	ISBN     string `form:"isbn"`
	Customer string `form:"customer"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// ListLoansResponse 借阅列表查询响应
type ListLoansResponse struct {
	Loans []*LoanResponse `json:"loans"`
	Total int64           `json:"total"`
}

// Execute 执行借阅列表查询用例
func (uc *ListLoansUseCase) Execute(ctx context.Context, req *ListLoansRequest) (*ListLoansResponse, error) {
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

	params := loan.FilterParams{
		ISBN:     req.ISBN,
		Customer: req.Customer,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	loans, total, err := uc.loanService.FindLoans(ctx, params)
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
