package logic

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petmatch-backend/internal/common"
	"petmatch-backend/internal/db"
)

// 测试庄园摆设添加与查询
func TestGardenItemRoundTrip(t *testing.T) {
	router := setupTest(t)
	user := createGuest(t, router, "庄园玩家")

	w := doRequest(t, router, "POST", "/api/garden", gin.H{
		"userId": user.ID,
		"item": gin.H{
			"itemId": "building_greenhouse",
			"type":   common.ItemTypeBuilding,
			"name":   "温室",
			"level":  1,
			"x":      3,
			"y":      7,
			"cost":   gin.H{"type": "gold", "amount": 500},
		},
	})
	require.Equal(t, 200, w.Code, w.Body.String())

	garden, err := db.GetGarden(db.GetDB(), user.ID)
	require.NoError(t, err)
	require.Len(t, garden.Buildings, 1)
	assert.Empty(t, garden.Decorations)
	assert.Equal(t, "building_greenhouse", garden.Buildings[0].ItemID)
	assert.Equal(t, 3, garden.Buildings[0].X)
	assert.Equal(t, 7, garden.Buildings[0].Y)
	assert.Equal(t, int64(common.InitialGold-500), getUser(t, user.ID).Gold)

	// 装饰进另一个列表
	w = doRequest(t, router, "POST", "/api/garden", gin.H{
		"userId": user.ID,
		"item": gin.H{
			"itemId": "deco_lantern",
			"type":   common.ItemTypeDecoration,
			"name":   "灯笼",
		},
	})
	require.Equal(t, 200, w.Code)
	garden, err = db.GetGarden(db.GetDB(), user.ID)
	require.NoError(t, err)
	assert.Len(t, garden.Buildings, 1)
	assert.Len(t, garden.Decorations, 1)
}

// 测试余额不足：摆设不落库，余额不变
func TestGardenItemInsufficientFunds(t *testing.T) {
	router := setupTest(t)
	user := createGuest(t, router, "庄园穷玩家")

	w := doRequest(t, router, "POST", "/api/garden", gin.H{
		"userId": user.ID,
		"item": gin.H{
			"itemId": "building_castle",
			"type":   common.ItemTypeBuilding,
			"cost":   gin.H{"type": "diamond", "amount": 9999},
		},
	})
	assert.Equal(t, 400, w.Code)

	garden, err := db.GetGarden(db.GetDB(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, garden.Buildings)
	assert.Equal(t, int64(common.InitialDiamond), getUser(t, user.ID).Diamond)
}

// 测试参数校验与用户不存在
func TestGardenValidation(t *testing.T) {
	router := setupTest(t)
	user := createGuest(t, router, "庄园校验玩家")

	w := doRequest(t, router, "GET", "/api/garden", nil)
	assert.Equal(t, 400, w.Code)

	w = doRequest(t, router, "POST", "/api/garden", gin.H{
		"userId": user.ID,
		"item":   gin.H{"itemId": "deco_x", "type": "weapon"},
	})
	assert.Equal(t, 400, w.Code)

	w = doRequest(t, router, "POST", "/api/garden", gin.H{
		"userId": "no-such-user",
		"item":   gin.H{"itemId": "deco_x", "type": common.ItemTypeDecoration},
	})
	assert.Equal(t, 404, w.Code)
}
