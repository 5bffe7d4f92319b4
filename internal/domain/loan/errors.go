package loan

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 借阅领域错误定义
var (
	// ErrLoanNotFound 借阅记录不存在
	ErrLoanNotFound = apperrors.New(apperrors.ErrCodeLoanNotFound, "借阅记录不存在")

	// ErrBookAlreadyLoaned 图书已借出(存在未归还的借阅)
	ErrBookAlreadyLoaned = apperrors.New(apperrors.ErrCodeBookLoaned, "图书已借出")

	// ErrInvalidLoan 借阅信息不完整
	ErrInvalidLoan = apperrors.New(apperrors.ErrCodeInvalidParams, "借阅人姓名和邮箱不能为空")

	// ErrMissingBook 缺少图书引用
	ErrMissingBook = apperrors.New(apperrors.ErrCodeInvalidParams, "图书ID不能为空")
)
