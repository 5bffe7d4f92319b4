package dto

// CreateLoanRequest HTTP借阅创建请求
// 客户端传ISBN而非图书ID,服务端先解析ISBN再创建借阅
type CreateLoanRequest struct {
	ISBN          string `json:"isbn" binding:"required,max=20" example:"9787115428028"`
	Customer      string `json:"customer" binding:"required,max=100" example:"张三"`
	CustomerEmail string `json:"customer_email" binding:"required,email,max=200" example:"zhangsan@example.com"`
}

// ReturnLoanRequest HTTP归还请求
// returned用指针区分"未传"与"显式传false"
type ReturnLoanRequest struct {
	Returned *bool `json:"returned" binding:"required" example:"true"`
}

// LoanBookInfo 借阅记录中内嵌的图书信息
type LoanBookInfo struct {
	ID     uint   `json:"id" example:"1"`
	Title  string `json:"title" example:"Go语言实战"`
	Author string `json:"author" example:"威廉·肯尼迪"`
	ISBN   string `json:"isbn" example:"9787115428028"`
}

// LoanResponse HTTP借阅响应
type LoanResponse struct {
	ID            uint          `json:"id" example:"1"`
	BookID        uint          `json:"book_id" example:"1"`
	Book          *LoanBookInfo `json:"book,omitempty"`
	Customer      string        `json:"customer" example:"张三"`
	CustomerEmail string        `json:"customer_email" example:"zhangsan@example.com"`
	LoanDate      string        `json:"loan_date" example:"2024-01-15"`
	Returned      bool          `json:"returned" example:"false"`
}

// ListLoansRequest HTTP借阅列表请求
// isbn与customer为OR过滤条件
type ListLoansRequest struct {
	ISBN     string `form:"isbn" binding:"omitempty,max=20" example:"9787115428028"`
	Customer string `form:"customer" binding:"omitempty,max=100" example:"张三"`
	Page     int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
}

// BookLoansRequest HTTP单本图书借阅历史请求
type BookLoansRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
}
