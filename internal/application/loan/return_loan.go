package loan

import (
	"context"

	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/pkg/metrics"
)

// ReturnLoanUseCase 图书归还用例
type ReturnLoanUseCase struct {
	loanService loan.Service
}

// NewReturnLoanUseCase 创建图书归还用例
func NewReturnLoanUseCase(loanService loan.Service) *ReturnLoanUseCase {
	return &ReturnLoanUseCase{loanService: loanService}
}

// ReturnLoanRequest 图书归还请求
type ReturnLoanRequest struct {
	Returned bool `json:"returned"`
}

// Execute 执行图书归还用例
func (uc *ReturnLoanUseCase) Execute(ctx context.Context, id uint, req ReturnLoanRequest) (*LoanResponse, error) {
	l, err := uc.loanService.ReturnLoan(ctx, id, req.Returned)
	if err != nil {
		return nil, err
	}

	if req.Returned {
		metrics.IncCounter(metrics.LoansReturnedTotal)
	}

	return toLoanResponse(l), nil
}
