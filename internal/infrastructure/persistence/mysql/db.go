package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/library/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 构建DSN连接字符串
	dsn := cfg.Database.DSN()

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 3. 连接数据库
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 6. 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// AutoMigrate只会创建表、添加字段,不会删除或修改现有字段
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&BookModel{},
		&LoanModel{},
	)
}

// BookModel GORM图书模型
// 设计说明:
// 1. 这是infrastructure层的数据模型,包含GORM tag
// 2. domain/book/entity.go是领域实体,不依赖GORM,Repository负责两者转换
// 3. ISBN有唯一索引,数据库层兜底保证唯一性
// 4. 软删除:删除图书后借阅历史仍能引用到图书行
type BookModel struct {
	ID        uint           `gorm:"primaryKey"`
	Title     string         `gorm:"index:idx_search;size:200;not null;comment:书名"`
	Author    string         `gorm:"index:idx_search;size:100;not null;comment:作者"`
	ISBN      string         `gorm:"uniqueIndex;size:20;not null;comment:ISBN号"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// LoanModel GORM借阅模型
// 设计说明:
// 1. BookID外键引用books表,带索引(按书查借阅、未归还检查都走该索引)
// 2. Returned使用*bool映射可空列:NULL/false=未归还,true=已归还
// 3. LoanDate使用date类型,逾期判定按自然日比较
// 4. 借阅记录只增不删,无软删除字段
type LoanModel struct {
	ID            uint       `gorm:"primaryKey"`
	BookID        uint       `gorm:"index;not null;comment:图书ID"`
	Book          BookModel  `gorm:"foreignKey:BookID"` // 关联图书(Preload用)
	Customer      string     `gorm:"size:100;not null;comment:借阅人姓名"`
	CustomerEmail string     `gorm:"size:100;not null;comment:借阅人邮箱"`
	LoanDate      time.Time  `gorm:"type:date;index;not null;comment:借出日期"`
	Returned      *bool      `gorm:"comment:归还标记(NULL或false=未归还,true=已归还)"`
	CreatedAt     time.Time  `gorm:"comment:创建时间"`
	UpdatedAt     time.Time  `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (LoanModel) TableName() string {
	return "loans"
}
