package logic

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"petmatch-backend/internal/common"
	"petmatch-backend/internal/db"
)

// GetPetsHandler 获取萌宠列表
func GetPetsHandler(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(400, gin.H{"error": "缺少用户ID"})
		return
	}
	pets, err := db.GetPets(db.GetDB(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"success": true, "pets": pets})
}

// petRequest 萌宠操作数据
type petRequest struct {
	ID          string       `json:"id"`
	PetID       string       `json:"petId"`
	Name        string       `json:"name"`
	Season      string       `json:"season"`
	SkillLevel  int          `json:"skillLevel"`
	Accessories []string     `json:"accessories"`
	Cost        *common.Cost `json:"cost"`
}

// PostPetsHandler 萌宠操作：add/update/deploy/feed
func PostPetsHandler(c *gin.Context) {
	var req struct {
		UserID  string      `json:"userId"`
		Action  string      `json:"action"`
		PetData *petRequest `json:"petData"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.Action == "" {
		c.JSON(400, gin.H{"error": "缺少必要参数"})
		return
	}

	user, err := db.GetUserByID(db.GetDB(), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	var result gin.H
	switch req.Action {
	case "add":
		result, err = addPet(user, req.PetData)
	case "update":
		result, err = updatePet(user, req.PetData)
	case "deploy":
		result, err = deployPet(user, req.PetData)
	case "feed":
		result, err = feedPet(user, req.PetData)
	default:
		c.JSON(400, gin.H{"error": "不支持的操作类型"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	pets, err := db.GetPets(db.GetDB(), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"success": true, "result": result, "pets": pets})
}

var errBadPetData = &badRequestError{"缺少萌宠数据"}
var errBadPetID = &badRequestError{"缺少萌宠ID"}
var errUnknownPetTemplate = &badRequestError{"未知的萌宠模板"}

// badRequestError 参数类错误，handler 统一回400
type badRequestError struct{ msg string }

func (e *badRequestError) Error() string { return e.msg }

// addPet 获取新萌宠；付费获取先扣款，同一个事务
func addPet(user *db.User, data *petRequest) (gin.H, error) {
	if data == nil || data.PetID == "" {
		return nil, errBadPetData
	}
	template, ok := common.GetPetConfig(data.PetID)
	if !ok {
		return nil, errUnknownPetTemplate
	}

	name := data.Name
	if name == "" {
		name = template.Name
	}
	pet := db.Pet{
		UserID:     user.ID,
		PetID:      template.ID,
		Name:       name,
		Level:      1,
		Intimacy:   1,
		SkillLevel: 1,
		Season:     template.Season,
	}

	err := db.GetDB().Transaction(func(tx *gorm.DB) error {
		if data.Cost != nil {
			if err := db.SpendCurrency(tx, user.ID, data.Cost.Type, data.Cost.Amount); err != nil {
				return err
			}
			if err := db.AddTransaction(tx, &db.Transaction{
				UserID:     user.ID,
				Type:       common.TransactionTypePurchase,
				ItemType:   "pet",
				ItemID:     template.ID,
				Quantity:   1,
				CostType:   data.Cost.Type,
				CostAmount: data.Cost.Amount,
			}); err != nil {
				return err
			}
		}
		return db.AddPet(tx, &pet)
	})
	if err != nil {
		return nil, err
	}
	return gin.H{"petId": pet.ID}, nil
}

// mustOwnPet 取萌宠并校验归属
func mustOwnPet(userID, petID string) (*db.Pet, error) {
	pet, err := db.GetPetByID(db.GetDB(), petID)
	if err != nil {
		return nil, err
	}
	if pet.UserID != userID {
		return nil, db.ErrNotOwner
	}
	return pet, nil
}

// updatePet 只开放 name/accessories/skillLevel 三列
func updatePet(user *db.User, data *petRequest) (gin.H, error) {
	if data == nil || data.ID == "" {
		return nil, errBadPetID
	}
	if _, err := mustOwnPet(user.ID, data.ID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if data.Name != "" {
		fields["name"] = data.Name
	}
	if data.Accessories != nil {
		fields["accessories"] = data.Accessories
	}
	if data.SkillLevel > 0 {
		fields["skill_level"] = data.SkillLevel
	}
	if err := db.UpdatePetFields(db.GetDB(), data.ID, fields); err != nil {
		return nil, err
	}
	return gin.H{"updated": true}, nil
}

// deployPet 设置出战萌宠，同一事务内保证全场只有一只出战
func deployPet(user *db.User, data *petRequest) (gin.H, error) {
	if data == nil || data.ID == "" {
		return nil, errBadPetID
	}
	if _, err := mustOwnPet(user.ID, data.ID); err != nil {
		return nil, err
	}

	err := db.GetDB().Transaction(func(tx *gorm.DB) error {
		return db.DeployPet(tx, user.ID, data.ID)
	})
	if err != nil {
		return nil, err
	}
	return gin.H{"deployed": true}, nil
}

// feedPet 喂养：花10金币，+10经验、+0.1亲密度（上限5）
// 升级所需经验 = 等级×100，升级后多余经验结转到下一级
func feedPet(user *db.User, data *petRequest) (gin.H, error) {
	if data == nil || data.ID == "" {
		return nil, errBadPetID
	}
	pet, err := mustOwnPet(user.ID, data.ID)
	if err != nil {
		return nil, err
	}

	newLevel := pet.Level
	newExp := pet.Exp + common.FeedExpGain
	if threshold := pet.Level * 100; newExp >= threshold {
		newLevel++
		newExp -= threshold
	}
	newIntimacy := pet.Intimacy + common.FeedIntimacyGain
	if newIntimacy > common.MaxIntimacy {
		newIntimacy = common.MaxIntimacy
	}

	err = db.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := db.SpendCurrency(tx, user.ID, common.CostTypeGold, common.FeedCostGold); err != nil {
			return err
		}
		return db.UpdatePetFields(tx, pet.ID, map[string]interface{}{
			"level":    newLevel,
			"exp":      newExp,
			"intimacy": newIntimacy,
		})
	})
	if err != nil {
		return nil, err
	}
	return gin.H{"fed": true, "level": newLevel, "exp": newExp, "intimacy": newIntimacy}, nil
}
