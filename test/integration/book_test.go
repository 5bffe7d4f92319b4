package integration

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 图书模块集成测试
// 覆盖:创建、ISBN唯一性、详情、更新、删除、列表过滤

func TestBookCreate(t *testing.T) {
	RequireServer(t)

	t.Run("正常创建图书", func(t *testing.T) {
		isbn := GenerateTestISBN()
		resp := PostJSON(t, BaseURL+"/books", map[string]interface{}{
			"title":  "《Go语言实战》",
			"author": "威廉·肯尼迪",
			"isbn":   isbn,
		})

		assert.Equal(t, 0, resp.Code, "创建图书应该成功")

		var data BookData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err, "解析响应数据失败")

		assert.NotZero(t, data.ID, "图书ID应该大于0")
		assert.Equal(t, isbn, data.ISBN)

		t.Logf("✓ 图书创建成功: ID=%d ISBN=%s", data.ID, data.ISBN)
	})

	t.Run("ISBN重复应失败", func(t *testing.T) {
		_, isbn := CreateTestBook(t, "重复ISBN测试")

		resp := PostJSON(t, BaseURL+"/books", map[string]interface{}{
			"title":  "《另一本书》",
			"author": "另一位作者",
			"isbn":   isbn,
		})

		assert.Equal(t, 40002, resp.Code, "重复ISBN应该返回ISBN已存在错误码")

		t.Logf("✓ 重复ISBN正确被拒绝: %s", resp.Message)
	})

	t.Run("缺少必填字段应失败", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/books", map[string]interface{}{
			"title": "《只有书名》",
		})

		assert.Equal(t, 40901, resp.Code, "缺少必填字段应该返回参数绑定错误")

		t.Logf("✓ 缺少必填字段正确被拒绝: %s", resp.Message)
	})
}

func TestBookGetUpdateDelete(t *testing.T) {
	RequireServer(t)

	t.Run("获取图书详情", func(t *testing.T) {
		bookID, isbn := CreateTestBook(t, "详情测试")

		resp := GetJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, bookID))
		require.Equal(t, 0, resp.Code, "获取图书详情失败: %s", resp.Message)

		var data BookData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err)

		assert.Equal(t, bookID, data.ID)
		assert.Equal(t, isbn, data.ISBN)
	})

	t.Run("图书不存在返回NotFound", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/books/99999999")
		assert.Equal(t, 40401, resp.Code)
	})

	t.Run("更新书名作者", func(t *testing.T) {
		bookID, isbn := CreateTestBook(t, "更新测试")

		resp := DoJSON(t, "PUT", fmt.Sprintf("%s/books/%d", BaseURL, bookID), map[string]interface{}{
			"title":  "《更新后的书名》",
			"author": "更新后的作者",
		})
		require.Equal(t, 0, resp.Code, "更新图书失败: %s", resp.Message)

		var data BookData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err)

		assert.Equal(t, "《更新后的书名》", data.Title)
		assert.Equal(t, "更新后的作者", data.Author)
		assert.Equal(t, isbn, data.ISBN, "ISBN不应被修改")
	})

	t.Run("删除图书", func(t *testing.T) {
		bookID, _ := CreateTestBook(t, "删除测试")

		resp := DoJSON(t, "DELETE", fmt.Sprintf("%s/books/%d", BaseURL, bookID), nil)
		require.Equal(t, 0, resp.Code, "删除图书失败: %s", resp.Message)

		// 删除后查询应返回NotFound
		resp = GetJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, bookID))
		assert.Equal(t, 40401, resp.Code)
	})
}

func TestBookList(t *testing.T) {
	RequireServer(t)

	t.Run("按ISBN过滤", func(t *testing.T) {
		_, isbn := CreateTestBook(t, "列表测试")

		resp := GetJSON(t, BaseURL+"/books?isbn="+isbn)
		require.Equal(t, 0, resp.Code, "查询图书列表失败: %s", resp.Message)

		var page PageData
		err := json.Unmarshal(resp.Data, &page)
		require.NoError(t, err)

		assert.Equal(t, int64(1), page.Total, "按唯一ISBN过滤应只返回1条")
	})
}
