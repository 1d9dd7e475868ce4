package logic

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"

	"petmatch-backend/internal/db"
	"petmatch-backend/internal/platform"
)

// 每个测试用独立的内存sqlite库和mock平台
func setupTest(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	require.NoError(t, db.InitWith(sqlite.Open(dsn)))

	platforms := platform.Registry{
		"wechat": platform.NewMock("wechat"),
		"douyin": platform.NewMock("douyin"),
	}
	return SetupRouter(platforms)
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// createGuest 走一遍游客登录，返回初始化好的用户
func createGuest(t *testing.T, router *gin.Engine, username string) db.User {
	w := doRequest(t, router, "POST", "/api/auth", gin.H{
		"platform": "guest",
		"username": username,
	})
	require.Equal(t, 200, w.Code, w.Body.String())

	var resp struct {
		Success bool    `json:"success"`
		User    db.User `json:"user"`
	}
	decodeBody(t, w, &resp)
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.User.ID)
	return resp.User
}

// listPets 拉取萌宠列表
func listPets(t *testing.T, router *gin.Engine, userID string) []db.Pet {
	w := doRequest(t, router, "GET", "/api/pets?userId="+userID, nil)
	require.Equal(t, 200, w.Code, w.Body.String())
	var resp struct {
		Pets []db.Pet `json:"pets"`
	}
	decodeBody(t, w, &resp)
	return resp.Pets
}

// getUser 直接查库取最新用户状态
func getUser(t *testing.T, userID string) *db.User {
	user, err := db.GetUserByID(db.GetDB(), userID)
	require.NoError(t, err)
	return user
}
