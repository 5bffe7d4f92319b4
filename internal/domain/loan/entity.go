package loan

import (
	"time"

	"github.com/xiebiao/library/internal/domain/book"
)

// Loan 借阅实体(聚合根)
// 设计说明:
// 1. Loan持有对Book的单向引用(BookID外键),Book不反向引用Loan
// 2. Returned使用*bool三态存储:nil和false都表示"未归还"(open),true表示"已归还"(closed)
//    与历史数据兼容:早期记录的returned字段可能为NULL
// 3. LoanDate只取日期语义(不含时分秒),逾期判定按自然日计算
type Loan struct {
	ID            uint
	BookID        uint       // 所借图书ID
	Book          *book.Book // 关联图书(查询时由仓储装载,可能为nil)
	Customer      string     // 借阅人姓名
	CustomerEmail string     // 借阅人邮箱(逾期提醒用)
	LoanDate      time.Time  // 借出日期
	Returned      *bool      // 归还标记(nil/false=未归还, true=已归还)
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewLoan 创建新借阅(工厂方法)
// 新借阅处于"未归还"状态,Returned保持nil
func NewLoan(bookID uint, customer, customerEmail string, loanDate time.Time) *Loan {
	now := time.Now()
	return &Loan{
		BookID:        bookID,
		Customer:      customer,
		CustomerEmail: customerEmail,
		LoanDate:      truncateToDay(loanDate),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// IsOpen 判断借阅是否处于"未归还"状态
// nil与false等价,均视为open
func (l *Loan) IsOpen() bool {
	return l.Returned == nil || !*l.Returned
}

// MarkReturned 设置归还标记
// 状态机:Open→Closed(returned=true)唯一有效迁移
// returned=false是自环(语义上无效果);对已归还借阅重复设置true按幂等处理
func (l *Loan) MarkReturned(returned bool) {
	l.Returned = &returned
	l.UpdatedAt = time.Now()
}

// IsOverdue 判断借阅是否逾期
// 规则:未归还 且 借出日期在(today - graceDays)当天或更早
func (l *Loan) IsOverdue(today time.Time, graceDays int) bool {
	if !l.IsOpen() {
		return false
	}
	cutoff := truncateToDay(today).AddDate(0, 0, -graceDays)
	return !l.LoanDate.After(cutoff)
}

// truncateToDay 截断到日期(去掉时分秒)
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
