package book

import (
	"context"
	"log"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
)

// GetBookUseCase 图书详情查询用例
// 设计说明:
// 1. Cache-Aside:先查Redis缓存,未命中回源数据库并回填
// 2. 缓存读写失败降级为直接查库(缓存故障不影响可用性),只记日志
type GetBookUseCase struct {
	bookService book.Service
	cache       *redis.BookCache
}

// NewGetBookUseCase 创建图书详情查询用例
func NewGetBookUseCase(bookService book.Service, cache *redis.BookCache) *GetBookUseCase {
	return &GetBookUseCase{
		bookService: bookService,
		cache:       cache,
	}
}

// Execute 执行图书详情查询用例
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (*BookResponse, error) {
	// 1. 查缓存
	if cached, err := uc.cache.Get(ctx, id); err != nil {
		log.Printf("图书缓存读取失败(降级查库): %v", err)
	} else if cached != nil {
		return toBookResponse(cached), nil
	}

	// 2. 缓存未命中,回源数据库
	b, err := uc.bookService.GetBookByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3. 回填缓存
	if err := uc.cache.Set(ctx, b); err != nil {
		log.Printf("图书缓存写入失败: %v", err)
	}

	return toBookResponse(b), nil
}
