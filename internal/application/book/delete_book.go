package book

import (
	"context"
	"log"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
)

// DeleteBookUseCase 图书删除用例
// 软删除:图书行保留,借阅历史仍可引用
type DeleteBookUseCase struct {
	bookService book.Service
	cache       *redis.BookCache
}

// NewDeleteBookUseCase 创建图书删除用例
func NewDeleteBookUseCase(bookService book.Service, cache *redis.BookCache) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookService: bookService,
		cache:       cache,
	}
}

// Execute 执行图书删除用例
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) error {
	if err := uc.bookService.DeleteBook(ctx, id); err != nil {
		return err
	}

	if err := uc.cache.Invalidate(ctx, id); err != nil {
		log.Printf("图书缓存删除失败: %v", err)
	}

	return nil
}
