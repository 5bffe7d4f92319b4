package mysql

import (
	"context"

	"gorm.io/gorm"
)

// txKey 事务DB在context中的key(非导出类型,避免外部碰撞)
type txKey struct{}

// TxManager 事务管理器
// 设计说明:
// 1. 封装GORM的Transaction方法
// 2. 通过context传递事务DB(避免全局变量)
// 3. 实现domain/loan.TxManager接口,领域层不感知GORM
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction 执行事务
// fn函数内的所有Repository操作都会在同一事务中执行,
// fn返回error时自动ROLLBACK,返回nil时自动COMMIT
//
// 使用示例(借阅创建):
//
//	err := txManager.Transaction(ctx, func(ctx context.Context) error {
//	    // 1. 锁定图书行
//	    if _, err := bookRepo.LockByID(ctx, bookID); err != nil {
//	        return err
//	    }
//	    // 2. 检查未归还借阅
//	    open, err := loanRepo.ExistsOpenByBookID(ctx, bookID)
//	    if err != nil {
//	        return err
//	    }
//	    if open {
//	        return loan.ErrBookAlreadyLoaned // 自动回滚
//	    }
//	    // 3. 插入借阅
//	    return loanRepo.Create(ctx, newLoan) // nil则提交
//	})
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 将事务DB注入到Context中
		// Repository的getDB方法会从context提取事务DB
		txCtx := context.WithValue(ctx, txKey{}, tx)
		return fn(txCtx)
	})
}

// dbFromContext 从context提取事务DB,没有事务时返回默认DB
func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}
