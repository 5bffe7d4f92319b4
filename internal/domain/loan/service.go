package loan

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
)

// DefaultGraceDays 默认借阅宽限天数
// 借出超过该天数仍未归还即视为逾期
const DefaultGraceDays = 4

// Clock 时钟接口(注入以便测试逾期判定)
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// TxManager 事务管理接口
// fn内的所有仓储操作在同一事务中执行,fn返回error时回滚
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service 借阅领域服务接口
// 设计说明:
// 1. 借阅状态的唯一修改入口,保证"同一本书最多一条未归还借阅"的不变量
// 2. 创建借阅的存在性检查与插入在同一事务内完成,并对图书行加锁,
//    防止两个并发请求同时通过检查造成重复借出(check-then-act竞态)
type Service interface {
	// CreateLoan 创建借阅
	// 业务规则:
	// - 图书ID、借阅人姓名、邮箱必填
	// - 图书必须存在
	// - 图书不能存在未归还的借阅,否则拒绝("图书已借出")
	// loanDate由调用方传入(通常为当天),保证操作可确定、可测试
	CreateLoan(ctx context.Context, bookID uint, customer, customerEmail string, loanDate time.Time) (*Loan, error)

	// ReturnLoan 归还图书(设置归还标记)
	// 归还操作总是允许:
	// - returned=false是自环迁移,不违反不变量
	// - 对已归还借阅重复设置true按幂等处理,不报错
	ReturnLoan(ctx context.Context, id uint, returned bool) (*Loan, error)

	// GetLoanByID 根据ID获取借阅记录
	GetLoanByID(ctx context.Context, id uint) (*Loan, error)

	// FindLoans 分页查询借阅(按图书ISBN或借阅人过滤,OR语义)
	FindLoans(ctx context.Context, params FilterParams) ([]*Loan, int64, error)

	// GetLoansByBook 分页查询某本图书的借阅记录
	GetLoansByBook(ctx context.Context, bookID uint, page PageParams) ([]*Loan, int64, error)

	// GetOverdueLoans 查询全部逾期借阅
	// 规则:未归还 且 loanDate <= today - graceDays
	// graceDays<=0时使用DefaultGraceDays
	GetOverdueLoans(ctx context.Context, graceDays int) ([]*Loan, error)
}

// service 领域服务实现
type service struct {
	repo     Repository
	bookRepo book.Repository
	tx       TxManager
	clock    Clock
}

// NewService 创建借阅领域服务
func NewService(repo Repository, bookRepo book.Repository, tx TxManager) Service {
	return &service{
		repo:     repo,
		bookRepo: bookRepo,
		tx:       tx,
		clock:    realClock{},
	}
}

// NewServiceWithClock 创建借阅领域服务(指定时钟,测试用)
func NewServiceWithClock(repo Repository, bookRepo book.Repository, tx TxManager, clock Clock) Service {
	return &service{
		repo:     repo,
		bookRepo: bookRepo,
		tx:       tx,
		clock:    clock,
	}
}

// CreateLoan 创建借阅
//
// 并发控制:
// "检查是否已借出"和"插入借阅记录"是两个存储操作,不加控制时两个并发请求
// 可能同时通过检查,造成同一本书出现两条未归还借阅。处理方式:
//  1. 整个流程放入一个事务
//  2. 先对图书行执行SELECT FOR UPDATE(LockByID),同一本书的并发借阅请求
//     在行锁上排队,后到者在前者COMMIT后才能执行检查,必然看到新插入的借阅
func (s *service) CreateLoan(ctx context.Context, bookID uint, customer, customerEmail string, loanDate time.Time) (*Loan, error) {
	// 1. 参数校验
	if bookID == 0 {
		return nil, ErrMissingBook
	}
	if customer == "" || customerEmail == "" {
		return nil, ErrInvalidLoan
	}
	if loanDate.IsZero() {
		loanDate = s.clock.Now()
	}

	// 2. 事务内:锁图书行 → 检查未归还借阅 → 插入
	var created *Loan
	err := s.tx.Transaction(ctx, func(txCtx context.Context) error {
		// 锁定图书行,序列化同一本书的并发借阅
		// 图书不存在时返回ErrBookNotFound
		if _, err := s.bookRepo.LockByID(txCtx, bookID); err != nil {
			return err
		}

		// 检查该图书是否存在未归还的借阅
		open, err := s.repo.ExistsOpenByBookID(txCtx, bookID)
		if err != nil {
			return err
		}
		if open {
			return ErrBookAlreadyLoaned
		}

		// 插入借阅记录(returned保持NULL,即"未归还")
		l := NewLoan(bookID, customer, customerEmail, loanDate)
		if err := s.repo.Create(txCtx, l); err != nil {
			return err
		}

		created = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// ReturnLoan 归还图书
func (s *service) ReturnLoan(ctx context.Context, id uint, returned bool) (*Loan, error) {
	// 1. 查询借阅记录(不存在时返回ErrLoanNotFound,由调用层转为404)
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. 设置归还标记并持久化
	// 不重新校验"一书一借"不变量:归还只会减少未归还借阅,不会违反不变量
	l.MarkReturned(returned)
	if err := s.repo.Update(ctx, l); err != nil {
		return nil, err
	}

	return l, nil
}

// GetLoanByID 根据ID获取借阅记录
func (s *service) GetLoanByID(ctx context.Context, id uint) (*Loan, error) {
	return s.repo.FindByID(ctx, id)
}

// FindLoans 分页查询借阅
func (s *service) FindLoans(ctx context.Context, params FilterParams) ([]*Loan, int64, error) {
	return s.repo.Find(ctx, params)
}

// GetLoansByBook 分页查询某本图书的借阅记录
func (s *service) GetLoansByBook(ctx context.Context, bookID uint, page PageParams) ([]*Loan, int64, error) {
	if bookID == 0 {
		return nil, 0, ErrMissingBook
	}
	return s.repo.FindByBookID(ctx, bookID, page)
}

// GetOverdueLoans 查询全部逾期借阅
// 全表谓词扫描由存储层完成,图书馆规模下数据量有限
func (s *service) GetOverdueLoans(ctx context.Context, graceDays int) ([]*Loan, error) {
	if graceDays <= 0 {
		graceDays = DefaultGraceDays
	}

	today := s.clock.Now()
	cutoff := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location()).
		AddDate(0, 0, -graceDays)

	return s.repo.FindOpenOlderThan(ctx, cutoff)
}
