package logic

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"petmatch-backend/internal/common"
	"petmatch-backend/internal/db"
)

// GetGardenHandler 获取庄园及全部摆设
func GetGardenHandler(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(400, gin.H{"error": "缺少用户ID"})
		return
	}
	garden, err := db.GetGarden(db.GetDB(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"success": true, "garden": garden})
}

// gardenItemRequest 摆设购买请求
type gardenItemRequest struct {
	ItemID   string       `json:"itemId"`
	Type     string       `json:"type"`
	Name     string       `json:"name"`
	Level    int          `json:"level"`
	X        int          `json:"x"`
	Y        int          `json:"y"`
	Rotation int          `json:"rotation"`
	Cost     *common.Cost `json:"cost"`
}

// PostGardenHandler 添加庄园摆设；付费摆设先扣款再落物品，同一个事务
func PostGardenHandler(c *gin.Context) {
	var req struct {
		UserID string             `json:"userId"`
		Item   *gardenItemRequest `json:"item"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.Item == nil {
		c.JSON(400, gin.H{"error": "缺少必要参数"})
		return
	}
	if req.Item.ItemID == "" ||
		(req.Item.Type != common.ItemTypeBuilding && req.Item.Type != common.ItemTypeDecoration) {
		c.JSON(400, gin.H{"error": "摆设数据不完整"})
		return
	}

	item := db.GardenItem{
		UserID:   req.UserID,
		ItemID:   req.Item.ItemID,
		Type:     req.Item.Type,
		Name:     req.Item.Name,
		Level:    req.Item.Level,
		X:        req.Item.X,
		Y:        req.Item.Y,
		Rotation: req.Item.Rotation,
	}

	err := db.GetDB().Transaction(func(tx *gorm.DB) error {
		if _, err := db.GetUserByID(tx, req.UserID); err != nil {
			return err
		}
		if req.Item.Cost != nil {
			if err := db.SpendCurrency(tx, req.UserID, req.Item.Cost.Type, req.Item.Cost.Amount); err != nil {
				return err
			}
			if err := db.AddTransaction(tx, &db.Transaction{
				UserID:     req.UserID,
				Type:       common.TransactionTypePurchase,
				ItemType:   req.Item.Type,
				ItemID:     req.Item.ItemID,
				Quantity:   1,
				CostType:   req.Item.Cost.Type,
				CostAmount: req.Item.Cost.Amount,
			}); err != nil {
				return err
			}
		}
		return db.AddGardenItem(tx, &item)
	})
	if err != nil {
		respondError(c, err)
		return
	}

	garden, err := db.GetGarden(db.GetDB(), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"success": true, "itemId": item.ID, "garden": garden})
}
