package book

import (
	"context"
	"errors"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装跨实体的业务规则校验(如ISBN唯一性)
// 2. 不依赖具体的Repository实现(依赖倒置)
type Service interface {
	// CreateBook 创建图书
	// 业务规则:
	// - 书名、作者、ISBN均不能为空
	// - ISBN不能重复
	CreateBook(ctx context.Context, title, author, isbn string) (*Book, error)

	// GetBookByID 根据ID获取图书
	GetBookByID(ctx context.Context, id uint) (*Book, error)

	// GetBookByISBN 根据ISBN获取图书
	GetBookByISBN(ctx context.Context, isbn string) (*Book, error)

	// UpdateBook 更新图书信息(书名、作者)
	// 业务规则:必须提供图书ID,ISBN不可修改
	UpdateBook(ctx context.Context, id uint, title, author string) (*Book, error)

	// DeleteBook 删除图书
	// 业务规则:必须提供图书ID;软删除,借阅历史保留对图书的引用
	DeleteBook(ctx context.Context, id uint) error

	// FindBooks 分页查询图书(按样例过滤)
	FindBooks(ctx context.Context, params FilterParams) ([]*Book, int64, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateBook 创建图书
func (s *service) CreateBook(ctx context.Context, title, author, isbn string) (*Book, error) {
	// 1. 必填字段校验
	if title == "" || author == "" || isbn == "" {
		return nil, ErrInvalidBook
	}

	// 2. ISBN唯一性校验
	// 数据库唯一索引兜底,提前检查可以返回更友好的业务错误
	exists, err := s.repo.ExistsByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrISBNDuplicate
	}

	// 3. 创建并持久化
	b := NewBook(title, author, isbn)
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// GetBookByID 根据ID获取图书
func (s *service) GetBookByID(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// GetBookByISBN 根据ISBN获取图书
func (s *service) GetBookByISBN(ctx context.Context, isbn string) (*Book, error) {
	return s.repo.FindByISBN(ctx, isbn)
}

// UpdateBook 更新图书信息
func (s *service) UpdateBook(ctx context.Context, id uint, title, author string) (*Book, error) {
	// 1. 更新必须指定ID
	if id == 0 {
		return nil, ErrMissingID
	}

	// 2. 查询图书
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3. 更新并持久化
	b.UpdateInfo(title, author)
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// DeleteBook 删除图书
func (s *service) DeleteBook(ctx context.Context, id uint) error {
	// 删除必须指定ID
	if id == 0 {
		return ErrMissingID
	}

	// 确认图书存在(不存在时返回NotFound而非静默成功)
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

// FindBooks 分页查询图书
func (s *service) FindBooks(ctx context.Context, params FilterParams) ([]*Book, int64, error) {
	return s.repo.Find(ctx, params)
}

// IsNotFound 判断是否为"图书不存在"错误
// 供调用层区分NotFound与其他错误
func IsNotFound(err error) bool {
	return errors.Is(err, ErrBookNotFound)
}
