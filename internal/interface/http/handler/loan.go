package handler

import (
	"github.com/gin-gonic/gin"

	apploan "github.com/xiebiao/library/internal/application/loan"
	"github.com/xiebiao/library/internal/interface/http/dto"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// LoanHandler 借阅HTTP处理器
type LoanHandler struct {
	createLoanUseCase *apploan.CreateLoanUseCase
	returnLoanUseCase *apploan.ReturnLoanUseCase
	listLoansUseCase  *apploan.ListLoansUseCase
	bookLoansUseCase  *apploan.BookLoansUseCase
}

// NewLoanHandler 创建借阅处理器
func NewLoanHandler(
	createLoanUseCase *apploan.CreateLoanUseCase,
	returnLoanUseCase *apploan.ReturnLoanUseCase,
	listLoansUseCase *apploan.ListLoansUseCase,
	bookLoansUseCase *apploan.BookLoansUseCase,
) *LoanHandler {
	return &LoanHandler{
		createLoanUseCase: createLoanUseCase,
		returnLoanUseCase: returnLoanUseCase,
		listLoansUseCase:  listLoansUseCase,
		bookLoansUseCase:  bookLoansUseCase,
	}
}

// CreateLoan 创建借阅
// @Summary      创建借阅
// @Description  按ISBN借出图书;同一本书存在未归还借阅时拒绝
// @Tags         借阅
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateLoanRequest true "借阅信息"
// @Success      200 {object} response.Response{data=dto.LoanResponse}
// @Failure      200 {object} response.Response "图书不存在(40401)、图书已借出(40001)"
// @Router       /api/v1/loans [post]
func (h *LoanHandler) CreateLoan(c *gin.Context) {
	// 1. 参数绑定与验证
	var req dto.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	// 2. 调用应用层用例
	result, err := h.createLoanUseCase.Execute(c.Request.Context(), apploan.CreateLoanRequest{
		ISBN:          req.ISBN,
		Customer:      req.Customer,
		CustomerEmail: req.CustomerEmail,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	// 3. 构建HTTP响应
	response.Success(c, toLoanResponse(result))
}

// ReturnLoan 归还图书
// @Summary      归还图书
// @Description  设置借阅的归还标记;对已归还借阅重复操作按幂等处理
// @Tags         借阅
// @Accept       json
// @Produce      json
// @Param        id path int true "借阅ID"
// @Param        request body dto.ReturnLoanRequest true "归还标记"
// @Success      200 {object} response.Response{data=dto.LoanResponse}
// @Failure      200 {object} response.Response "借阅记录不存在(40402)"
// @Router       /api/v1/loans/{id} [patch]
func (h *LoanHandler) ReturnLoan(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.ReturnLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.returnLoanUseCase.Execute(c.Request.Context(), id, apploan.ReturnLoanRequest{
		Returned: *req.Returned,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toLoanResponse(result))
}

// ListLoans 查询借阅列表
// @Summary      查询借阅列表
// @Description  按图书ISBN或借阅人过滤(OR组合),分页返回
// @Tags         借阅
// @Produce      json
// @Param        isbn query string false "图书ISBN"
// @Param        customer query string false "借阅人姓名"
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页大小" default(20)
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/loans [get]
func (h *LoanHandler) ListLoans(c *gin.Context) {
	var req dto.ListLoansRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	appReq := &apploan.ListLoansRequest{
		ISBN:     req.ISBN,
		Customer: req.Customer,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	result, err := h.listLoansUseCase.Execute(c.Request.Context(), appReq)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, toLoanResponseList(result.Loans), result.Total, appReq.Page, appReq.PageSize)
}

// GetBookLoans 查询单本图书的借阅历史
// @Summary      查询图书借阅历史
// @Description  按借出日期倒序分页返回指定图书的借阅记录
// @Tags         借阅
// @Produce      json
// @Param        id path int true "图书ID"
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页大小" default(20)
// @Success      200 {object} response.Response{data=response.PageData}
// @Failure      200 {object} response.Response "图书不存在(40401)"
// @Router       /api/v1/books/{id}/loans [get]
func (h *LoanHandler) GetBookLoans(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.BookLoansRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	appReq := &apploan.BookLoansRequest{
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	result, err := h.bookLoansUseCase.Execute(c.Request.Context(), id, appReq)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, toLoanResponseList(result.Loans), result.Total, appReq.Page, appReq.PageSize)
}

// toLoanResponse 应用层DTO → HTTP DTO
func toLoanResponse(l *apploan.LoanResponse) *dto.LoanResponse {
	resp := &dto.LoanResponse{
		ID:            l.ID,
		BookID:        l.BookID,
		Customer:      l.Customer,
		CustomerEmail: l.CustomerEmail,
		LoanDate:      l.LoanDate,
		Returned:      l.Returned,
	}
	if l.Book != nil {
		resp.Book = &dto.LoanBookInfo{
			ID:     l.Book.ID,
			Title:  l.Book.Title,
			Author: l.Book.Author,
			ISBN:   l.Book.ISBN,
		}
	}
	return resp
}

func toLoanResponseList(loans []*apploan.LoanResponse) []*dto.LoanResponse {
	list := make([]*dto.LoanResponse, 0, len(loans))
	for _, l := range loans {
		list = append(list, toLoanResponse(l))
	}
	return list
}
