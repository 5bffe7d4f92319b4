package mail

import (
	"gopkg.in/gomail.v2"

	"github.com/xiebiao/library/internal/infrastructure/config"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// Sender SMTP邮件发送器
// 设计说明:
// 1. 基于gomail实现,一条消息可携带多个收件人(逾期提醒批量发送用)
// 2. 发送即忘:不做重试、不做退避,失败由调用方记录日志
// 3. 实现application/loan.Mailer接口
type Sender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSender 创建邮件发送器
func NewSender(cfg *config.Config) *Sender {
	return &Sender{
		dialer: gomail.NewDialer(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.Username, cfg.Mail.Password),
		from:   cfg.Mail.From,
	}
}

// Send 发送一封邮件给全部收件人
// to列表原样作为收件人,不做去重(同一人有多条逾期借阅时会出现多次)
func (s *Sender) Send(subject, body string, to []string) error {
	if len(to) == 0 {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return apperrors.Wrap(err, "邮件发送失败")
	}

	return nil
}
