package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/xiebiao/library/docs"
	appbook "github.com/xiebiao/library/internal/application/book"
	apploan "github.com/xiebiao/library/internal/application/loan"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/mail"
	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/library/internal/infrastructure/scheduler"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/response"
)

// @title        图书馆借阅API
// @version      1.0
// @description  图书目录与借阅管理服务
// @host         localhost:8080
// @BasePath     /

// main 主程序入口
// 说明：手动依赖注入（wire.go提供等价的Wire注入器）
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())
	fmt.Printf("  - 逾期检查: %q (宽限%d天)\n", cfg.Scheduler.OverdueCron, cfg.Scheduler.GraceDays)

	// 2. 初始化Prometheus指标
	metrics.InitMetrics()

	// 3. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 4. 初始化Redis连接
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 5. 依赖注入（手动组装）
	// Repository ← Service ← UseCase ← Handler

	// 基础设施层
	bookRepo := mysql.NewBookRepository(db)
	loanRepo := mysql.NewLoanRepository(db)
	txManager := mysql.NewTxManager(db)
	bookCache := redis.NewBookCache(redisClient, cfg.Redis.BookDetailTTL)
	mailSender := mail.NewSender(cfg)

	// 领域层
	bookService := book.NewService(bookRepo)
	loanService := loan.NewService(loanRepo, bookRepo, txManager)

	// 应用层
	createBookUseCase := appbook.NewCreateBookUseCase(bookService)
	getBookUseCase := appbook.NewGetBookUseCase(bookService, bookCache)
	updateBookUseCase := appbook.NewUpdateBookUseCase(bookService, bookCache)
	deleteBookUseCase := appbook.NewDeleteBookUseCase(bookService, bookCache)
	listBooksUseCase := appbook.NewListBooksUseCase(bookService)
	createLoanUseCase := apploan.NewCreateLoanUseCase(loanService, bookService)
	returnLoanUseCase := apploan.NewReturnLoanUseCase(loanService)
	listLoansUseCase := apploan.NewListLoansUseCase(loanService)
	bookLoansUseCase := apploan.NewBookLoansUseCase(loanService, bookService)
	notifyOverdueUseCase := apploan.NewNotifyOverdueUseCase(
		loanService,
		mailSender,
		cfg.Mail.Subject,
		cfg.Mail.Message,
		cfg.Scheduler.GraceDays,
	)

	// 接口层
	bookHandler := handler.NewBookHandler(
		createBookUseCase,
		getBookUseCase,
		updateBookUseCase,
		deleteBookUseCase,
		listBooksUseCase,
	)
	loanHandler := handler.NewLoanHandler(
		createLoanUseCase,
		returnLoanUseCase,
		listLoansUseCase,
		bookLoansUseCase,
	)

	// 6. 启动定时任务（每日逾期检查）
	sched := scheduler.New(notifyOverdueUseCase)
	if err := sched.Register(cfg.Scheduler.OverdueCron); err != nil {
		log.Fatalf("注册逾期检查任务失败: %v", err)
	}
	sched.Start()

	// 7. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics())

	// 8. 注册路由
	registerRoutes(r, bookHandler, loanHandler)

	// 9. 启动服务（优雅关闭：先停HTTP，再停调度器）
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		fmt.Printf("\n🚀 服务启动成功！\n")
		fmt.Printf("   访问地址: http://localhost%s\n", addr)
		fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
		fmt.Printf("   API文档:  http://localhost%s/swagger/index.html\n", addr)
		fmt.Printf("   监控指标: http://localhost%s/metrics\n", addr)
		fmt.Printf("\n按Ctrl+C停止服务\n\n")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("启动服务失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("关闭HTTP服务失败: %v", err)
	}

	sched.Stop()
	log.Println("服务已退出")
}

// registerRoutes 注册路由
func registerRoutes(r *gin.Engine, bookHandler *handler.BookHandler, loanHandler *handler.LoanHandler) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API路由组
	v1 := r.Group("/api/v1")
	{
		// 图书模块
		books := v1.Group("/books")
		{
			books.POST("", bookHandler.CreateBook)
			books.GET("", bookHandler.ListBooks)
			books.GET("/:id", bookHandler.GetBook)
			books.PUT("/:id", bookHandler.UpdateBook)
			books.DELETE("/:id", bookHandler.DeleteBook)
			books.GET("/:id/loans", loanHandler.GetBookLoans)
		}

		// 借阅模块
		loans := v1.Group("/loans")
		{
			loans.POST("", loanHandler.CreateLoan)
			loans.GET("", loanHandler.ListLoans)
			loans.PATCH("/:id", loanHandler.ReturnLoan)
		}
	}
}
