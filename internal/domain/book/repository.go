package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
type Repository interface {
	// Create 创建图书
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByISBN 根据ISBN查找图书
	FindByISBN(ctx context.Context, isbn string) (*Book, error)

	// ExistsByISBN 判断ISBN是否已存在
	ExistsByISBN(ctx context.Context, isbn string) (bool, error)

	// Update 更新图书信息
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书(软删除)
	Delete(ctx context.Context, id uint) error

	// Find 分页查询图书(按样例过滤)
	// 非空字段按"不区分大小写的子串匹配"过滤,空字段忽略,多个条件取AND
	Find(ctx context.Context, params FilterParams) ([]*Book, int64, error)

	// LockByID 悲观锁查询图书(SELECT FOR UPDATE)
	// 借阅创建时锁定图书行,序列化对同一本书的并发借阅请求
	LockByID(ctx context.Context, id uint) (*Book, error)
}

// FilterParams 图书查询过滤条件
// 部分填充:空字段不参与过滤
type FilterParams struct {
	Title    string // 书名(子串匹配)
	Author   string // 作者(子串匹配)
	ISBN     string // ISBN(子串匹配)
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
}
