package logic

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPing(t *testing.T) {
	router := setupTest(t)
	w := doRequest(t, router, "GET", "/ping", nil)
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}

// 各GET接口缺 userId 时统一回400
func TestMissingUserIDQueries(t *testing.T) {
	router := setupTest(t)
	for _, path := range []string{
		"/api/garden",
		"/api/inventory",
		"/api/pets",
		"/api/friends",
		"/api/messages",
		"/api/progress",
		"/api/transactions",
	} {
		w := doRequest(t, router, "GET", path, nil)
		assert.Equal(t, 400, w.Code, "path=%s", path)
	}
}

func TestUnknownAction(t *testing.T) {
	router := setupTest(t)
	user := createGuest(t, router, "未知操作玩家")

	for _, path := range []string{"/api/pets", "/api/friends", "/api/messages"} {
		w := doRequest(t, router, "POST", path, gin.H{
			"userId": user.ID,
			"action": "explode",
		})
		assert.Equal(t, 400, w.Code, "path=%s", path)
	}
}

// 配置表接口下发季节、萌宠、物品三张表
func TestGameConfigEndpoint(t *testing.T) {
	router := setupTest(t)
	w := doRequest(t, router, "GET", "/api/config", nil)
	require.Equal(t, 200, w.Code)

	var resp struct {
		Seasons []map[string]interface{} `json:"seasons"`
		Pets    []map[string]interface{} `json:"pets"`
		Items   []map[string]interface{} `json:"items"`
	}
	decodeBody(t, w, &resp)
	assert.Len(t, resp.Seasons, 4)
	assert.NotEmpty(t, resp.Pets)
	assert.NotEmpty(t, resp.Items)
}
