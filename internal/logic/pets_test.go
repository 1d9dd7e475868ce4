package logic

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petmatch-backend/internal/common"
	"petmatch-backend/internal/db"
)

// 测试喂养：扣10金币，+10经验，+0.1亲密度
func TestFeedPet(t *testing.T) {
	router := setupTest(t)
	user := createGuest(t, router, "喂养玩家")
	pet := listPets(t, router, user.ID)[0]

	w := doRequest(t, router, "POST", "/api/pets", gin.H{
		"userId": user.ID,
		"action": "feed",
		"petData": gin.H{"id": pet.ID},
	})
	require.Equal(t, 200, w.Code, w.Body.String())

	reloaded, err := db.GetPetByID(db.GetDB(), pet.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Level)
	assert.Equal(t, 10, reloaded.Exp)
	assert.InDelta(t, 1.1, reloaded.Intimacy, 0.001)
	assert.Equal(t, int64(common.InitialGold-common.FeedCostGold), getUser(t, user.ID).Gold)
}

// 测试喂养升级：经验到阈值升一级，多余经验结转
func TestFeedPetLevelUpCarriesExp(t *testing.T) {
	router := setupTest(t)
	user := createGuest(t, router, "升级玩家")
	pet := listPets(t, router, user.ID)[0]

	// 1级升级阈值是100，先垫到95
	require.NoError(t, db.UpdatePetFields(db.GetDB(), pet.ID, map[string]interface{}{"exp": 95}))

	w := doRequest(t, router, "POST", "/api/pets", gin.H{
		"userId": user.ID,
		"action": "feed",
		"petData": gin.H{"id": pet.ID},
	})
	require.Equal(t, 200, w.Code)

	reloaded, err := db.GetPetByID(db.GetDB(), pet.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Level)
	assert.Equal(t, 5, reloaded.Exp) // 95+10-100
}

// 测试亲密度封顶5
func TestFeedPetIntimacyCap(t *testing.T) {
	router := setupTest(t)
	user := createGuest(t, router, "亲密玩家")
	pet := listPets(t, router, user.ID)[0]

	require.NoError(t, db.UpdatePetFields(db.GetDB(), pet.ID, map[string]interface{}{"intimacy": 4.95}))

	w := doRequest(t, router, "POST", "/api/pets", gin.H{
		"userId": user.ID,
		"action": "feed",
		"petData": gin.H{"id": pet.ID},
	})
	require.Equal(t, 200, w.Code)

	reloaded, err := db.GetPetByID(db.GetDB(), pet.ID)
	require.NoError(t, err)
	assert.Equal(t, common.MaxIntimacy, reloaded.Intimacy)
}

// 测试金币不够不能喂养，萌宠状态不变
func TestFeedPetInsufficientGold(t *testing.T) {
	router := setupTest(t)
	user := createGuest(t, router, "穷玩家")
	pet := listPets(t, router, user.ID)[0]

	require.NoError(t, db.UpdateUserFields(db.GetDB(), user.ID, map[string]interface{}{"gold": int64(5)}))

	w := doRequest(t, router, "POST", "/api/pets", gin.H{
		"userId": user.ID,
		"action": "feed",
		"petData": gin.H{"id": pet.ID},
	})
	assert.Equal(t, 400, w.Code)

	reloaded, err := db.GetPetByID(db.GetDB(), pet.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.Exp)
	assert.Equal(t, int64(5), getUser(t, user.ID).Gold)
}

// 测试出战互斥：deploy之后全场只有目标一只在出战
func TestDeployExclusivity(t *testing.T) {
	router := setupTest(t)
	user := createGuest(t, router, "出战玩家")

	for _, petID := range []string{"pet_kitten", "pet_fox"} {
		w := doRequest(t, router, "POST", "/api/pets", gin.H{
			"userId": user.ID,
			"action": "add",
			"petData": gin.H{"petId": petID},
		})
		require.Equal(t, 200, w.Code, w.Body.String())
	}

	pets := listPets(t, router, user.ID)
	require.Len(t, pets, 3)
	var target db.Pet
	for _, p := range pets {
		if p.PetID == "pet_fox" {
			target = p
		}
	}

	w := doRequest(t, router, "POST", "/api/pets", gin.H{
		"userId": user.ID,
		"action": "deploy",
		"petData": gin.H{"id": target.ID},
	})
	require.Equal(t, 200, w.Code)

	deployed := 0
	for _, p := range listPets(t, router, user.ID) {
		if p.IsDeployed {
			deployed++
			assert.Equal(t, target.ID, p.ID)
		}
	}
	assert.Equal(t, 1, deployed)
}

// 测试付费获取萌宠：余额不足时萌宠和余额都不动
func TestAddPetPurchase(t *testing.T) {
	router := setupTest(t)
	user := createGuest(t, router, "买宠玩家")

	// 初始1000金币买不起2000的
	w := doRequest(t, router, "POST", "/api/pets", gin.H{
		"userId": user.ID,
		"action": "add",
		"petData": gin.H{
			"petId": "pet_kitten",
			"cost":  gin.H{"type": "gold", "amount": 2000},
		},
	})
	assert.Equal(t, 400, w.Code)
	assert.Len(t, listPets(t, router, user.ID), 1)
	assert.Equal(t, int64(common.InitialGold), getUser(t, user.ID).Gold)

	// 钻石同理
	w = doRequest(t, router, "POST", "/api/pets", gin.H{
		"userId": user.ID,
		"action": "add",
		"petData": gin.H{
			"petId": "pet_fox",
			"cost":  gin.H{"type": "diamond", "amount": 99999},
		},
	})
	assert.Equal(t, 400, w.Code)
	assert.Equal(t, int64(common.InitialDiamond), getUser(t, user.ID).Diamond)

	// 充值之后买得起，并且有流水
	require.NoError(t, db.UpdateUserFields(db.GetDB(), user.ID, map[string]interface{}{"gold": int64(5000)}))
	w = doRequest(t, router, "POST", "/api/pets", gin.H{
		"userId": user.ID,
		"action": "add",
		"petData": gin.H{
			"petId": "pet_kitten",
			"cost":  gin.H{"type": "gold", "amount": 2000},
		},
	})
	require.Equal(t, 200, w.Code, w.Body.String())
	assert.Equal(t, int64(3000), getUser(t, user.ID).Gold)
	assert.Len(t, listPets(t, router, user.ID), 2)

	transactions, err := db.GetTransactions(db.GetDB(), user.ID, 10)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, common.TransactionTypePurchase, transactions[0].Type)
	assert.Equal(t, "pet_kitten", transactions[0].ItemID)
	assert.Equal(t, int64(2000), transactions[0].CostAmount)
}

// 测试未知萌宠模板
func TestAddPetUnknownTemplate(t *testing.T) {
	router := setupTest(t)
	user := createGuest(t, router, "模板玩家")

	w := doRequest(t, router, "POST", "/api/pets", gin.H{
		"userId": user.ID,
		"action": "add",
		"petData": gin.H{"petId": "pet_dragon"},
	})
	assert.Equal(t, 400, w.Code)
}

// 测试归属校验：不能操作别人的萌宠
func TestPetOwnership(t *testing.T) {
	router := setupTest(t)
	owner := createGuest(t, router, "主人")
	stranger := createGuest(t, router, "路人")
	pet := listPets(t, router, owner.ID)[0]

	for _, action := range []string{"update", "deploy", "feed"} {
		w := doRequest(t, router, "POST", "/api/pets", gin.H{
			"userId": stranger.ID,
			"action": action,
			"petData": gin.H{"id": pet.ID, "name": "改名"},
		})
		assert.Equal(t, 403, w.Code, "action=%s", action)
	}
}

// 测试萌宠补丁只放行白名单字段
func TestUpdatePetWhitelist(t *testing.T) {
	router := setupTest(t)
	user := createGuest(t, router, "补丁玩家")
	pet := listPets(t, router, user.ID)[0]

	w := doRequest(t, router, "POST", "/api/pets", gin.H{
		"userId": user.ID,
		"action": "update",
		"petData": gin.H{
			"id":          pet.ID,
			"name":        "团子",
			"accessories": []string{"acc_bow"},
			"skillLevel":  2,
		},
	})
	require.Equal(t, 200, w.Code)

	reloaded, err := db.GetPetByID(db.GetDB(), pet.ID)
	require.NoError(t, err)
	assert.Equal(t, "团子", reloaded.Name)
	assert.Equal(t, []string{"acc_bow"}, reloaded.Accessories)
	assert.Equal(t, 2, reloaded.SkillLevel)
	// level/exp 这类字段不在update白名单里
	assert.Equal(t, 1, reloaded.Level)
	assert.Equal(t, 0, reloaded.Exp)
}
