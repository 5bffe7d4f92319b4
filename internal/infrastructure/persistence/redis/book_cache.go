package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/library/internal/domain/book"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// BookCache 图书详情缓存
// 设计说明:
// 1. Cache-Aside(旁路缓存):先查缓存,未命中再查数据库并回填
// 2. 一致性策略:更新/删除图书后删除缓存(而非更新缓存,避免并发写序问题)
// 3. Key设计:book:detail:{id}
// 4. 缓存只服务读路径,借阅创建等写路径始终直达数据库
type BookCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBookCache 创建图书缓存
func NewBookCache(client *redis.Client, ttl time.Duration) *BookCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &BookCache{client: client, ttl: ttl}
}

// Get 获取图书详情缓存
// 未命中返回(nil, nil),调用方需要回源数据库
func (c *BookCache) Get(ctx context.Context, bookID uint) (*book.Book, error) {
	key := c.detailKey(bookID)

	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			// 缓存未命中
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "读取图书缓存失败")
	}

	var b book.Book
	if err := json.Unmarshal([]byte(val), &b); err != nil {
		return nil, apperrors.Wrap(err, "反序列化图书缓存失败")
	}

	return &b, nil
}

// Set 写入图书详情缓存
func (c *BookCache) Set(ctx context.Context, b *book.Book) error {
	key := c.detailKey(b.ID)

	val, err := json.Marshal(b)
	if err != nil {
		return apperrors.Wrap(err, "序列化图书失败")
	}

	if err := c.client.Set(ctx, key, val, c.ttl).Err(); err != nil {
		return apperrors.Wrap(err, "写入图书缓存失败")
	}

	return nil
}

// Invalidate 删除图书详情缓存
// 图书更新、删除后调用,保证下次读取回源最新数据
func (c *BookCache) Invalidate(ctx context.Context, bookID uint) error {
	if err := c.client.Del(ctx, c.detailKey(bookID)).Err(); err != nil {
		return apperrors.Wrap(err, "删除图书缓存失败")
	}
	return nil
}

// detailKey 图书详情缓存Key
func (c *BookCache) detailKey(bookID uint) string {
	return fmt.Sprintf("book:detail:%d", bookID)
}
