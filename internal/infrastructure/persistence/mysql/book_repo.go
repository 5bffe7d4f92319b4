package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/library/internal/domain/book"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误(如ISBN重复),转换为业务错误
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	// 1. 领域实体 → GORM模型
	model := &BookModel{
		Title:  b.Title,
		Author: b.Author,
		ISBN:   b.ISBN,
	}

	// 2. 插入数据库
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		// 唯一索引兜底:并发创建相同ISBN时服务层检查可能都通过
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "创建图书失败")
	}

	// 3. 回填自增ID
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := dbFromContext(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// FindByISBN 根据ISBN查找图书
func (r *bookRepository) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	var model BookModel
	err := dbFromContext(ctx, r.db).Where("isbn = ?", isbn).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// ExistsByISBN 判断ISBN是否已存在
func (r *bookRepository) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	var count int64
	err := dbFromContext(ctx, r.db).Model(&BookModel{}).
		Where("isbn = ?", isbn).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(err, "查询图书失败")
	}
	return count > 0, nil
}

// Update 更新图书信息
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	model := &BookModel{
		ID:     b.ID,
		Title:  b.Title,
		Author: b.Author,
		ISBN:   b.ISBN,
	}

	// 使用Save更新所有字段
	if err := dbFromContext(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新图书失败")
	}

	b.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除图书(软删除)
// 软删除保留图书行,借阅历史对图书的引用不受影响
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := dbFromContext(ctx, r.db).Delete(&BookModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书失败")
	}

	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}

	return nil
}

// Find 分页查询图书(按样例过滤)
// 非空字段按不区分大小写的子串匹配(LIKE),多条件AND,空字段忽略
// MySQL默认collation下LIKE即不区分大小写
func (r *bookRepository) Find(ctx context.Context, params book.FilterParams) ([]*book.Book, int64, error) {
	var models []BookModel
	var total int64

	// 构建查询:逐字段追加过滤条件
	query := dbFromContext(ctx, r.db).Model(&BookModel{})

	if params.Title != "" {
		query = query.Where("title LIKE ?", "%"+params.Title+"%")
	}
	if params.Author != "" {
		query = query.Where("author LIKE ?", "%"+params.Author+"%")
	}
	if params.ISBN != "" {
		query = query.Where("isbn LIKE ?", "%"+params.ISBN+"%")
	}

	// 查询总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}

	// 分页
	offset := (params.Page - 1) * params.PageSize
	query = query.Order("created_at DESC").Limit(params.PageSize).Offset(offset)

	// 查询数据
	if err := query.Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}

	// 转换为领域实体
	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}

	return books, total, nil
}

// LockByID 悲观锁查询图书
// SELECT FOR UPDATE锁定图书行,借阅创建流程用它序列化同一本书的并发请求
// 必须在TxManager.Transaction内调用,否则锁随语句立即释放
func (r *bookRepository) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	db := dbFromContext(ctx, r.db)
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "锁定图书失败")
	}

	return toBookEntity(&model), nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:        model.ID,
		Title:     model.Title,
		Author:    model.Author,
		ISBN:      model.ISBN,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
