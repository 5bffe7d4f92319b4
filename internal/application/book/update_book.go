package book

import (
	"context"
	"log"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
)

// UpdateBookUseCase 图书更新用例
// 只允许更新书名和作者,ISBN创建后不可修改
type UpdateBookUseCase struct {
	bookService book.Service
	cache       *redis.BookCache
}

// NewUpdateBookUseCase 创建图书更新用例
func NewUpdateBookUseCase(bookService book.Service, cache *redis.BookCache) *UpdateBookUseCase {
	return &UpdateBookUseCase{
		bookService: bookService,
		cache:       cache,
	}
}

// UpdateBookRequest 更新请求DTO
type UpdateBookRequest struct {
	ID     uint   // 图书ID
	Title  string // 书名
	Author string // 作者
}

// Execute 执行图书更新用例
func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) (*BookResponse, error) {
	b, err := uc.bookService.UpdateBook(ctx, req.ID, req.Title, req.Author)
	if err != nil {
		return nil, err
	}

	// 更新成功后删除缓存(下次读取回源最新数据)
	if err := uc.cache.Invalidate(ctx, req.ID); err != nil {
		log.Printf("图书缓存删除失败: %v", err)
	}

	return toBookResponse(b), nil
}
