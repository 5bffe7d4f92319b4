package loan

import (
	"context"
	"time"
)

// Repository 借阅仓储接口(依赖倒置原则)
// 由domain层定义接口,infrastructure层实现
type Repository interface {
	// Create 创建借阅记录
	Create(ctx context.Context, loan *Loan) error

	// FindByID 根据ID查找借阅记录(含关联图书)
	FindByID(ctx context.Context, id uint) (*Loan, error)

	// Update 更新借阅记录
	Update(ctx context.Context, loan *Loan) error

	// ExistsOpenByBookID 判断图书是否存在未归还的借阅
	// 未归还判定:returned IS NULL OR returned = false
	ExistsOpenByBookID(ctx context.Context, bookID uint) (bool, error)

	// FindByBookID 分页查询某本图书的全部借阅记录
	FindByBookID(ctx context.Context, bookID uint, page PageParams) ([]*Loan, int64, error)

	// Find 分页查询借阅记录
	// 匹配规则:图书ISBN等于filter.ISBN 或 借阅人等于filter.Customer(OR语义)
	Find(ctx context.Context, params FilterParams) ([]*Loan, int64, error)

	// FindOpenOlderThan 查询借出日期在cutoff当天或更早、且未归还的全部借阅
	// 逾期检查专用,全量返回不分页(图书馆规模下可接受)
	FindOpenOlderThan(ctx context.Context, cutoff time.Time) ([]*Loan, error)
}

// PageParams 分页参数
type PageParams struct {
	Page     int // 页码(从1开始)
	PageSize int // 每页数量
}

// FilterParams 借阅查询过滤条件
type FilterParams struct {
	ISBN     string // 图书ISBN
	Customer string // 借阅人姓名
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
}
