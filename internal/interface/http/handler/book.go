package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/library/internal/application/book"
	"github.com/xiebiao/library/internal/interface/http/dto"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	createBookUseCase *appbook.CreateBookUseCase
	getBookUseCase    *appbook.GetBookUseCase
	updateBookUseCase *appbook.UpdateBookUseCase
	deleteBookUseCase *appbook.DeleteBookUseCase
	listBooksUseCase  *appbook.ListBooksUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	createBookUseCase *appbook.CreateBookUseCase,
	getBookUseCase *appbook.GetBookUseCase,
	updateBookUseCase *appbook.UpdateBookUseCase,
	deleteBookUseCase *appbook.DeleteBookUseCase,
	listBooksUseCase *appbook.ListBooksUseCase,
) *BookHandler {
	return &BookHandler{
		createBookUseCase: createBookUseCase,
		getBookUseCase:    getBookUseCase,
		updateBookUseCase: updateBookUseCase,
		deleteBookUseCase: deleteBookUseCase,
		listBooksUseCase:  listBooksUseCase,
	}
}

// CreateBook 创建图书
// @Summary      创建图书
// @Description  登记新图书,ISBN必须唯一
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      200 {object} response.Response "参数错误(40901)、ISBN已存在(40002)"
// @Router       /api/v1/books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	// 1. 参数绑定与验证
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	// 2. 调用应用层用例
	result, err := h.createBookUseCase.Execute(c.Request.Context(), appbook.CreateBookRequest{
		Title:  req.Title,
		Author: req.Author,
		ISBN:   req.ISBN,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	// 3. 构建HTTP响应
	response.Success(c, toBookResponse(result))
}

// GetBook 获取图书详情
// @Summary      获取图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      200 {object} response.Response "图书不存在(40401)"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.getBookUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookResponse(result))
}

// UpdateBook 更新图书
// @Summary      更新图书
// @Description  更新书名和作者,ISBN不可修改
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        id path int true "图书ID"
// @Param        request body dto.UpdateBookRequest true "图书信息"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      200 {object} response.Response "参数错误(40901)、图书不存在(40401)"
// @Router       /api/v1/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.updateBookUseCase.Execute(c.Request.Context(), appbook.UpdateBookRequest{
		ID:     id,
		Title:  req.Title,
		Author: req.Author,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookResponse(result))
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Description  软删除,借阅历史保留
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Failure      200 {object} response.Response "图书不存在(40401)"
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.deleteBookUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// ListBooks 查询图书列表
// @Summary      查询图书列表
// @Description  按书名、作者、ISBN模糊过滤(AND组合),分页返回
// @Tags         图书
// @Produce      json
// @Param        title query string false "书名(模糊匹配)"
// @Param        author query string false "作者(模糊匹配)"
// @Param        isbn query string false "ISBN(模糊匹配)"
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页大小" default(20)
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var req dto.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	appReq := &appbook.ListBooksRequest{
		Title:    req.Title,
		Author:   req.Author,
		ISBN:     req.ISBN,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	result, err := h.listBooksUseCase.Execute(c.Request.Context(), appReq)
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]*dto.BookResponse, 0, len(result.Books))
	for _, b := range result.Books {
		list = append(list, toBookResponse(b))
	}

	response.SuccessWithPage(c, list, result.Total, appReq.Page, appReq.PageSize)
}

// parseIDParam 解析路径中的ID参数
// 解析失败时已写入错误响应,调用方直接return即可
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "ID必须为正整数")
		return 0, false
	}
	return uint(id), true
}

// toBookResponse 应用层DTO → HTTP DTO
func toBookResponse(b *appbook.BookResponse) *dto.BookResponse {
	return &dto.BookResponse{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		ISBN:      b.ISBN,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
