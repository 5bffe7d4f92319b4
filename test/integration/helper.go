package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 集成测试辅助工具
// 需要一个运行中的服务实例(默认http://localhost:8080),
// 服务未启动时测试自动跳过

const (
	// BaseURL API基础URL
	BaseURL = "http://localhost:8080/api/v1"
	// PingURL 健康检查URL
	PingURL = "http://localhost:8080/ping"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// BookData 图书响应数据
type BookData struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	ISBN      string `json:"isbn"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// LoanData 借阅响应数据
type LoanData struct {
	ID            uint   `json:"id"`
	BookID        uint   `json:"book_id"`
	Customer      string `json:"customer"`
	CustomerEmail string `json:"customer_email"`
	LoanDate      string `json:"loan_date"`
	Returned      bool   `json:"returned"`
}

// PageData 分页响应数据
type PageData struct {
	List       json.RawMessage `json:"list"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

// RequireServer 检查服务是否在运行,未运行时跳过测试
func RequireServer(t *testing.T) {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(PingURL)
	if err != nil {
		t.Skipf("服务未启动(%v),跳过集成测试", err)
	}
	resp.Body.Close()
}

// DoJSON 发送带JSON请求体的请求并解析响应
func DoJSON(t *testing.T, method, url string, data interface{}) *Response {
	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")

	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	err = json.Unmarshal(respBody, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(respBody))

	return &result
}

// PostJSON 发送POST请求并解析JSON响应
func PostJSON(t *testing.T, url string, data interface{}) *Response {
	return DoJSON(t, "POST", url, data)
}

// GetJSON 发送GET请求并解析JSON响应
func GetJSON(t *testing.T, url string) *Response {
	return DoJSON(t, "GET", url, nil)
}

// CreateTestBook 创建测试图书,返回图书ID和ISBN
func CreateTestBook(t *testing.T, titlePrefix string) (uint, string) {
	isbn := GenerateTestISBN()

	resp := PostJSON(t, BaseURL+"/books", map[string]interface{}{
		"title":  fmt.Sprintf("《%s_%d》", titlePrefix, time.Now().UnixNano()),
		"author": "测试作者",
		"isbn":   isbn,
	})
	require.Equal(t, 0, resp.Code, "创建测试图书失败: %s", resp.Message)

	var data BookData
	err := json.Unmarshal(resp.Data, &data)
	require.NoError(t, err, "解析图书响应失败")

	return data.ID, isbn
}

// GenerateTestISBN 生成唯一的测试ISBN
// 使用纳秒时间戳避免重复运行时ISBN冲突
func GenerateTestISBN() string {
	return fmt.Sprintf("TEST-%d", time.Now().UnixNano())
}

// GenerateTestEmail 生成唯一的测试邮箱
func GenerateTestEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.com", prefix, time.Now().Unix())
}
