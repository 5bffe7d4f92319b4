package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/loan"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// loanRepository 借阅仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/loan/repository.go定义的接口
// 2. "未归还"的SQL谓词统一为 returned IS NULL OR returned = false
//    (历史数据returned列可能为NULL,与false等价)
// 3. 所有方法通过dbFromContext参与TxManager开启的事务
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository 创建借阅仓储
func NewLoanRepository(db *gorm.DB) loan.Repository {
	return &loanRepository{db: db}
}

// Create 创建借阅记录
func (r *loanRepository) Create(ctx context.Context, l *loan.Loan) error {
	model := &LoanModel{
		BookID:        l.BookID,
		Customer:      l.Customer,
		CustomerEmail: l.CustomerEmail,
		LoanDate:      l.LoanDate,
		Returned:      l.Returned,
	}

	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建借阅记录失败")
	}

	// 回填自增ID
	l.ID = model.ID
	l.CreatedAt = model.CreatedAt
	l.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找借阅记录(含关联图书)
func (r *loanRepository) FindByID(ctx context.Context, id uint) (*loan.Loan, error) {
	var model LoanModel
	err := dbFromContext(ctx, r.db).Preload("Book").First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrLoanNotFound
		}
		return nil, apperrors.Wrap(err, "查询借阅记录失败")
	}

	return toLoanEntity(&model), nil
}

// Update 更新借阅记录
func (r *loanRepository) Update(ctx context.Context, l *loan.Loan) error {
	model := &LoanModel{
		ID:            l.ID,
		BookID:        l.BookID,
		Customer:      l.Customer,
		CustomerEmail: l.CustomerEmail,
		LoanDate:      l.LoanDate,
		Returned:      l.Returned,
	}

	// Save更新所有字段;Returned为指针,nil→NULL、false/true原样写入
	if err := dbFromContext(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新借阅记录失败")
	}

	l.UpdatedAt = model.UpdatedAt
	return nil
}

// ExistsOpenByBookID 判断图书是否存在未归还的借阅
func (r *loanRepository) ExistsOpenByBookID(ctx context.Context, bookID uint) (bool, error) {
	var count int64
	err := dbFromContext(ctx, r.db).Model(&LoanModel{}).
		Where("book_id = ?", bookID).
		Where("returned IS NULL OR returned = ?", false).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(err, "查询借阅状态失败")
	}
	return count > 0, nil
}

// FindByBookID 分页查询某本图书的全部借阅记录
func (r *loanRepository) FindByBookID(ctx context.Context, bookID uint, page loan.PageParams) ([]*loan.Loan, int64, error) {
	var models []LoanModel
	var total int64

	query := dbFromContext(ctx, r.db).Model(&LoanModel{}).Where("book_id = ?", bookID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询借阅总数失败")
	}

	offset := (page.Page - 1) * page.PageSize
	err := query.Preload("Book").
		Order("loan_date DESC, id DESC").
		Limit(page.PageSize).Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询借阅列表失败")
	}

	return toLoanEntities(models), total, nil
}

// Find 分页查询借阅记录
// 匹配规则:图书ISBN等于filter.ISBN 或 借阅人等于filter.Customer(OR语义)
// 需要连接books表取ISBN,Preload装载图书用于响应展示
func (r *loanRepository) Find(ctx context.Context, params loan.FilterParams) ([]*loan.Loan, int64, error) {
	var models []LoanModel
	var total int64

	query := dbFromContext(ctx, r.db).Model(&LoanModel{}).
		Joins("JOIN books ON books.id = loans.book_id").
		Where("books.isbn = ? OR loans.customer = ?", params.ISBN, params.Customer)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询借阅总数失败")
	}

	offset := (params.Page - 1) * params.PageSize
	err := query.Preload("Book").
		Order("loans.loan_date DESC, loans.id DESC").
		Limit(params.PageSize).Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询借阅列表失败")
	}

	return toLoanEntities(models), total, nil
}

// FindOpenOlderThan 查询借出日期在cutoff当天或更早、且未归还的全部借阅
// 逾期检查专用:全量谓词扫描,不分页(loan_date有索引,图书馆规模下可接受)
func (r *loanRepository) FindOpenOlderThan(ctx context.Context, cutoff time.Time) ([]*loan.Loan, error) {
	var models []LoanModel
	err := dbFromContext(ctx, r.db).
		Where("loan_date <= ?", cutoff).
		Where("returned IS NULL OR returned = ?", false).
		Preload("Book").
		Order("loan_date ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询逾期借阅失败")
	}

	return toLoanEntities(models), nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toLoanEntity GORM模型 → 领域实体
func toLoanEntity(model *LoanModel) *loan.Loan {
	l := &loan.Loan{
		ID:            model.ID,
		BookID:        model.BookID,
		Customer:      model.Customer,
		CustomerEmail: model.CustomerEmail,
		LoanDate:      model.LoanDate,
		Returned:      model.Returned,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
	// Preload命中时装载关联图书(零值ID表示未Preload)
	if model.Book.ID != 0 {
		l.Book = toBookEntity(&model.Book)
	}
	return l
}

func toLoanEntities(models []LoanModel) []*loan.Loan {
	loans := make([]*loan.Loan, len(models))
	for i := range models {
		loans[i] = toLoanEntity(&models[i])
	}
	return loans
}
