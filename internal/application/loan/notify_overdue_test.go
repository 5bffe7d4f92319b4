package loan

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainloan "github.com/xiebiao/library/internal/domain/loan"
)

// fakeLoanService 只实现GetOverdueLoans的借阅服务桩
type fakeLoanService struct {
	domainloan.Service
	overdue []*domainloan.Loan
	err     error
}

func (s *fakeLoanService) GetOverdueLoans(ctx context.Context, graceDays int) ([]*domainloan.Loan, error) {
	return s.overdue, s.err
}

// fakeMailer 记录发送调用的邮件发送器
type fakeMailer struct {
	calls   int
	subject string
	body    string
	to      []string
	err     error
}

func (m *fakeMailer) Send(subject, body string, to []string) error {
	m.calls++
	m.subject = subject
	m.body = body
	m.to = append([]string(nil), to...)
	return m.err
}

func overdueLoan(customer, email string) *domainloan.Loan {
	return &domainloan.Loan{
		Customer:      customer,
		CustomerEmail: email,
		LoanDate:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestNotifyOverdue(t *testing.T) {
	ctx := context.Background()

	t.Run("向全部逾期借阅人发送一封邮件", func(t *testing.T) {
		svc := &fakeLoanService{overdue: []*domainloan.Loan{
			overdueLoan("张三", "zhangsan@example.com"),
			overdueLoan("李四", "lisi@example.com"),
		}}
		mailer := &fakeMailer{}
		uc := NewNotifyOverdueUseCase(svc, mailer, "图书逾期提醒", "请尽快归还", 4)

		count, err := uc.Execute(ctx)
		require.NoError(t, err)

		assert.Equal(t, 2, count)
		assert.Equal(t, 1, mailer.calls, "应只发送一封邮件")
		assert.Equal(t, "图书逾期提醒", mailer.subject)
		assert.Equal(t, "请尽快归还", mailer.body)
		assert.Equal(t, []string{"zhangsan@example.com", "lisi@example.com"}, mailer.to)
	})

	t.Run("同一借阅人多条逾期不去重", func(t *testing.T) {
		svc := &fakeLoanService{overdue: []*domainloan.Loan{
			overdueLoan("张三", "zhangsan@example.com"),
			overdueLoan("张三", "zhangsan@example.com"),
		}}
		mailer := &fakeMailer{}
		uc := NewNotifyOverdueUseCase(svc, mailer, "图书逾期提醒", "请尽快归还", 4)

		count, err := uc.Execute(ctx)
		require.NoError(t, err)

		assert.Equal(t, 2, count)
		assert.Equal(t, []string{"zhangsan@example.com", "zhangsan@example.com"}, mailer.to,
			"同一邮箱出现几次就提醒几次")
	})

	t.Run("无逾期借阅时不发送邮件", func(t *testing.T) {
		svc := &fakeLoanService{}
		mailer := &fakeMailer{}
		uc := NewNotifyOverdueUseCase(svc, mailer, "图书逾期提醒", "请尽快归还", 4)

		count, err := uc.Execute(ctx)
		require.NoError(t, err)

		assert.Zero(t, count)
		assert.Zero(t, mailer.calls)
	})

	t.Run("查询失败返回错误且不发送", func(t *testing.T) {
		svc := &fakeLoanService{err: errors.New("数据库连接失败")}
		mailer := &fakeMailer{}
		uc := NewNotifyOverdueUseCase(svc, mailer, "图书逾期提醒", "请尽快归还", 4)

		_, err := uc.Execute(ctx)
		require.Error(t, err)
		assert.Zero(t, mailer.calls)
	})

	t.Run("发送失败返回错误", func(t *testing.T) {
		svc := &fakeLoanService{overdue: []*domainloan.Loan{
			overdueLoan("张三", "zhangsan@example.com"),
		}}
		mailer := &fakeMailer{err: errors.New("SMTP连接超时")}
		uc := NewNotifyOverdueUseCase(svc, mailer, "图书逾期提醒", "请尽快归还", 4)

		_, err := uc.Execute(ctx)
		require.Error(t, err)
		assert.Equal(t, 1, mailer.calls)
	})
}
