//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// Wire在编译期生成依赖组装代码：
// Step 1: 编写wire.go（本文件），定义Providers和Injector
// Step 2: 运行 `wire gen ./cmd/api`
// Step 3: Wire生成wire_gen.go，包含完整的依赖创建代码
//
// main.go中保留了等价的手动组装，便于对照依赖链。

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	appbook "github.com/xiebiao/library/internal/application/book"
	apploan "github.com/xiebiao/library/internal/application/loan"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/mail"
	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/response"
)

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	config.Load,        // 加载配置文件
	mysql.NewDB,        // 创建MySQL连接
	redis.NewClient,    // 创建Redis连接
	mail.NewSender,     // SMTP邮件发送器
	provideBookCache,   // 图书详情缓存（TTL来自配置）
	wire.Bind(new(apploan.Mailer), new(*mail.Sender)),
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewBookRepository, // 图书仓储
	mysql.NewLoanRepository, // 借阅仓储
	mysql.NewTxManager,      // 事务管理器
	wire.Bind(new(loan.TxManager), new(*mysql.TxManager)),
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	book.NewService, // 图书领域服务
	loan.NewService, // 借阅领域服务
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appbook.NewCreateBookUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	appbook.NewListBooksUseCase,
	apploan.NewCreateLoanUseCase,
	apploan.NewReturnLoanUseCase,
	apploan.NewListLoansUseCase,
	apploan.NewBookLoansUseCase,
	provideNotifyOverdueUseCase, // 逾期提醒用例（主题、正文、宽限天数来自配置）
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewBookHandler,
	handler.NewLoanHandler,
)

// provideBookCache 从配置创建图书详情缓存
// redis.NewBookCache需要TTL参数，Wire无法从Config自动提取
func provideBookCache(client *goredis.Client, cfg *config.Config) *redis.BookCache {
	return redis.NewBookCache(client, cfg.Redis.BookDetailTTL)
}

// provideNotifyOverdueUseCase 从配置创建逾期提醒用例
func provideNotifyOverdueUseCase(loanService loan.Service, mailer apploan.Mailer, cfg *config.Config) *apploan.NotifyOverdueUseCase {
	return apploan.NewNotifyOverdueUseCase(
		loanService,
		mailer,
		cfg.Mail.Subject,
		cfg.Mail.Message,
		cfg.Scheduler.GraceDays,
	)
}

// provideGinEngine 创建并配置Gin引擎
func provideGinEngine(
	cfg *config.Config,
	bookHandler *handler.BookHandler,
	loanHandler *handler.LoanHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics())

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Swagger文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API路由组
	v1 := r.Group("/api/v1")
	{
		books := v1.Group("/books")
		{
			books.POST("", bookHandler.CreateBook)
			books.GET("", bookHandler.ListBooks)
			books.GET("/:id", bookHandler.GetBook)
			books.PUT("/:id", bookHandler.UpdateBook)
			books.DELETE("/:id", bookHandler.DeleteBook)
			books.GET("/:id/loans", loanHandler.GetBookLoans)
		}

		loans := v1.Group("/loans")
		{
			loans.POST("", loanHandler.CreateLoan)
			loans.GET("", loanHandler.ListLoans)
			loans.PATCH("/:id", loanHandler.ReturnLoan)
		}
	}

	return r
}

// InitializeApp 初始化整个应用
// Wire会在wire_gen.go中生成实际的初始化代码
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		handlerSet,
		provideGinEngine,
	)

	return nil, nil
}
