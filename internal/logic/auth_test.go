package logic

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petmatch-backend/internal/common"
	"petmatch-backend/internal/db"
)

// 测试新账号初始化：用户+进度+庄园+初始萌宠一次落成
func TestGuestLoginBootstrap(t *testing.T) {
	router := setupTest(t)
	user := createGuest(t, router, "新玩家")

	assert.Equal(t, int64(common.InitialGold), user.Gold)
	assert.Equal(t, int64(common.InitialDiamond), user.Diamond)
	assert.Equal(t, common.InitialEnergy, user.Energy)
	assert.Equal(t, common.MaxEnergy, user.MaxEnergy)
	assert.Equal(t, 1, user.Level)

	progress, err := db.GetGameProgress(db.GetDB(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, common.SeasonSpring, progress.CurrentSeason)
	assert.Equal(t, 1, progress.HighestLevel)

	garden, err := db.GetGarden(db.GetDB(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, common.SeasonSpring, garden.Season)
	assert.Equal(t, progress.CurrentSeason, garden.Season)

	pets := listPets(t, router, user.ID)
	require.Len(t, pets, 1)
	assert.Equal(t, common.StarterPetID, pets[0].PetID)
	assert.Equal(t, "小兔子", pets[0].Name)
	assert.True(t, pets[0].IsDeployed)
	assert.Equal(t, float64(1), pets[0].Intimacy)
}

// 测试游客不去重：每次登录都是新账号
func TestGuestLoginsAreDistinct(t *testing.T) {
	router := setupTest(t)
	first := createGuest(t, router, "游客甲")
	second := createGuest(t, router, "游客甲")
	assert.NotEqual(t, first.ID, second.ID)
}

// 测试平台账号按 (platform, platformId) 去重
func TestPlatformLoginDedup(t *testing.T) {
	router := setupTest(t)

	body := gin.H{"platform": "wechat", "platformId": "wx_abc", "username": "微信玩家"}
	w := doRequest(t, router, "POST", "/api/auth", body)
	require.Equal(t, 200, w.Code)
	var first struct {
		User db.User `json:"user"`
	}
	decodeBody(t, w, &first)

	w = doRequest(t, router, "POST", "/api/auth", body)
	require.Equal(t, 200, w.Code)
	var second struct {
		User db.User `json:"user"`
	}
	decodeBody(t, w, &second)

	assert.Equal(t, first.User.ID, second.User.ID)

	// 只有一套进度/庄园/萌宠
	pets := listPets(t, router, first.User.ID)
	assert.Len(t, pets, 1)
}

// 测试登录接口参数校验
func TestAuthValidation(t *testing.T) {
	router := setupTest(t)

	w := doRequest(t, router, "POST", "/api/auth", gin.H{})
	assert.Equal(t, 400, w.Code)

	w = doRequest(t, router, "POST", "/api/auth", gin.H{"platform": "guest"})
	assert.Equal(t, 400, w.Code)

	w = doRequest(t, router, "POST", "/api/auth", gin.H{"platform": "qq", "username": "abc"})
	assert.Equal(t, 400, w.Code)
}

// 测试code登录：mock平台把code映射成固定openid，同一code重复登录是同一账号
func TestCodeLogin(t *testing.T) {
	router := setupTest(t)

	body := gin.H{"platform": "wechat", "code": "code_001", "username": "code玩家"}
	w := doRequest(t, router, "POST", "/api/login", body)
	require.Equal(t, 200, w.Code, w.Body.String())
	var first struct {
		User db.User `json:"user"`
	}
	decodeBody(t, w, &first)
	require.NotNil(t, first.User.PlatformID)
	assert.Equal(t, "mock_wechat_code_001", *first.User.PlatformID)

	w = doRequest(t, router, "POST", "/api/login", body)
	require.Equal(t, 200, w.Code)
	var second struct {
		User db.User `json:"user"`
	}
	decodeBody(t, w, &second)
	assert.Equal(t, first.User.ID, second.User.ID)

	// 不支持的平台
	w = doRequest(t, router, "POST", "/api/login", gin.H{"platform": "guest", "code": "x", "username": "y"})
	assert.Equal(t, 400, w.Code)
}
