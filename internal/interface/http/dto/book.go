package dto

// CreateBookRequest HTTP图书创建请求
type CreateBookRequest struct {
	Title  string `json:"title" binding:"required,max=200" example:"Go语言实战"`
	Author string `json:"author" binding:"required,max=100" example:"威廉·肯尼迪"`
	ISBN   string `json:"isbn" binding:"required,max=20" example:"9787115428028"`
}

// UpdateBookRequest HTTP图书更新请求
// ISBN不可修改,不在请求体中
type UpdateBookRequest struct {
	Title  string `json:"title" binding:"required,max=200" example:"Go语言实战(第2版)"`
	Author string `json:"author" binding:"required,max=100" example:"威廉·肯尼迪"`
}

// BookResponse HTTP图书响应
type BookResponse struct {
	ID        uint   `json:"id" example:"1"`
	Title     string `json:"title" example:"Go语言实战"`
	Author    string `json:"author" example:"威廉·肯尼迪"`
	ISBN      string `json:"isbn" example:"9787115428028"`
	CreatedAt string `json:"created_at" example:"2024-01-15 10:30:00"`
	UpdatedAt string `json:"updated_at" example:"2024-01-15 10:30:00"`
}

// ListBooksRequest HTTP图书列表请求
// title/author/isbn均为可选的模糊过滤条件,多个条件之间为AND关系
type ListBooksRequest struct {
	Title    string `form:"title" binding:"omitempty,max=200" example:"Go"`
	Author   string `form:"author" binding:"omitempty,max=100" example:"肯尼迪"`
	ISBN     string `form:"isbn" binding:"omitempty,max=20" example:"9787115"`
	Page     int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
}
