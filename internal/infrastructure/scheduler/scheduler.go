// Package scheduler 基于robfig/cron的定时任务调度
//
// 当前只有一个任务:每日逾期借阅检查与提醒。
// 调度器不做错过补偿:进程停止期间错过的触发不会在重启后补跑,
// 等待下一个cron周期即可。
package scheduler

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	loanapp "github.com/xiebiao/library/internal/application/loan"
)

// Scheduler 定时任务调度器
type Scheduler struct {
	cron          *cron.Cron
	notifyOverdue *loanapp.NotifyOverdueUseCase
}

// New 创建调度器
func New(notifyOverdue *loanapp.NotifyOverdueUseCase) *Scheduler {
	return &Scheduler{
		cron:          cron.New(),
		notifyOverdue: notifyOverdue,
	}
}

// Register 注册逾期检查任务
// spec为标准5字段cron表达式(分 时 日 月 周),如"0 0 * * *"表示每日零点
func (s *Scheduler) Register(spec string) error {
	_, err := s.cron.AddFunc(spec, s.runOverdueSweep)
	return err
}

// Start 启动调度器(后台goroutine,立即返回)
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Println("定时任务调度器已启动")
}

// Stop 停止调度器,等待正在执行的任务完成
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("定时任务调度器已停止")
}

// runOverdueSweep 执行一次逾期检查
// 任务失败只记录日志,下一个周期重新触发
func (s *Scheduler) runOverdueSweep() {
	if _, err := s.notifyOverdue.Execute(context.Background()); err != nil {
		log.Printf("逾期检查任务执行失败: %v", err)
	}
}
