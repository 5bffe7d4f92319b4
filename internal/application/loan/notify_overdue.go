package loan

import (
	"context"
	"log"

	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/metrics"
)

// Mailer 邮件发送接口(消费方定义)
// 由infrastructure/mail的SMTP实现满足,测试时注入假实现
type Mailer interface {
	// Send 向全部收件人发送一封邮件
	Send(subject, body string, to []string) error
}

// NotifyOverdueUseCase 逾期提醒用例
// 设计说明:
// 1. 查询全部逾期借阅,汇总借阅人邮箱后发送一封提醒邮件
// 2. 邮箱不去重:同一人借了多本逾期图书会多次出现在收件人列表中,
//    收到几封提醒对应几本逾期图书
// 3. 发送失败只记录日志不重试,等待下一次定时触发
type NotifyOverdueUseCase struct {
	loanService loan.Service
	mailer      Mailer
	subject     string
	body        string
	graceDays   int
}

// NewNotifyOverdueUseCase 创建逾期提醒用例
func NewNotifyOverdueUseCase(loanService loan.Service, mailer Mailer, subject, body string, graceDays int) *NotifyOverdueUseCase {
	return &NotifyOverdueUseCase{
		loanService: loanService,
		mailer:      mailer,
		subject:     subject,
		body:        body,
		graceDays:   graceDays,
	}
}

// Execute 执行一次逾期检查与提醒
// 返回本次提醒的收件人数量
func (uc *NotifyOverdueUseCase) Execute(ctx context.Context) (int, error) {
	// 1. 查询逾期借阅
	overdue, err := uc.loanService.GetOverdueLoans(ctx, uc.graceDays)
	if err != nil {
		metrics.IncCounterVec(metrics.OverdueSweepsTotal, map[string]string{"result": "failure"})
		return 0, err
	}

	// 2. 无逾期借阅时不发送邮件
	if len(overdue) == 0 {
		metrics.IncCounterVec(metrics.OverdueSweepsTotal, map[string]string{"result": "success"})
		return 0, nil
	}

	// 3. 汇总收件人(不去重)
	recipients := make([]string, 0, len(overdue))
	for _, l := range overdue {
		recipients = append(recipients, l.CustomerEmail)
	}

	// 4. 发送一封邮件给全部收件人
	if err := uc.mailer.Send(uc.subject, uc.body, recipients); err != nil {
		metrics.IncCounterVec(metrics.OverdueSweepsTotal, map[string]string{"result": "failure"})
		return 0, &errors.AppError{Code: errors.ErrCodeMailError, Message: "逾期提醒邮件发送失败", Err: err}
	}

	metrics.IncCounterVec(metrics.OverdueSweepsTotal, map[string]string{"result": "success"})
	metrics.AddCounter(metrics.OverdueNoticesTotal, float64(len(recipients)))

	log.Printf("逾期提醒发送完成: %d条逾期借阅, %d个收件人", len(overdue), len(recipients))
	return len(recipients), nil
}
