package book

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrISBNDuplicate ISBN已存在
	ErrISBNDuplicate = apperrors.New(apperrors.ErrCodeISBNDuplicate, "ISBN号已存在")

	// ErrMissingID 缺少图书ID(更新、删除时必须提供)
	ErrMissingID = apperrors.New(apperrors.ErrCodeInvalidParams, "图书ID不能为空")

	// ErrInvalidBook 图书信息不完整
	ErrInvalidBook = apperrors.New(apperrors.ErrCodeInvalidParams, "书名、作者、ISBN不能为空")
)
