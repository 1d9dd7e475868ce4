package logic

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"petmatch-backend/internal/common"
	"petmatch-backend/internal/db"
)

// GetInventoryHandler 获取物品库存
func GetInventoryHandler(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(400, gin.H{"error": "缺少用户ID"})
		return
	}
	items, err := db.GetInventory(db.GetDB(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"success": true, "inventory": gin.H{"userId": userID, "items": items}})
}

// inventoryItemRequest 物品操作数据
type inventoryItemRequest struct {
	ItemID     string       `json:"itemId"`
	Type       string       `json:"type"`
	Name       string       `json:"name"`
	Quantity   int          `json:"quantity"`
	Cost       *common.Cost `json:"cost"`
	ReceiverID string       `json:"receiverId"`
}

// PostInventoryHandler 物品操作：add 入库（可付费），use 消耗
func PostInventoryHandler(c *gin.Context) {
	var req struct {
		UserID   string                `json:"userId"`
		Action   string                `json:"action"`
		ItemData *inventoryItemRequest `json:"itemData"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.Action == "" || req.ItemData == nil {
		c.JSON(400, gin.H{"error": "缺少必要参数"})
		return
	}

	user, err := db.GetUserByID(db.GetDB(), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	switch req.Action {
	case "add":
		addInventoryItem(c, user, req.ItemData)
	case "use":
		useInventoryItem(c, user, req.ItemData)
	default:
		c.JSON(400, gin.H{"error": "不支持的操作类型"})
	}
}

func addInventoryItem(c *gin.Context, user *db.User, data *inventoryItemRequest) {
	if data.ItemID == "" || data.Type == "" || data.Quantity <= 0 {
		c.JSON(400, gin.H{"error": "物品数据不完整"})
		return
	}

	err := db.GetDB().Transaction(func(tx *gorm.DB) error {
		if data.Cost != nil {
			if err := db.SpendCurrency(tx, user.ID, data.Cost.Type, data.Cost.Amount); err != nil {
				return err
			}
			if err := db.AddTransaction(tx, &db.Transaction{
				UserID:     user.ID,
				Type:       common.TransactionTypePurchase,
				ItemType:   data.Type,
				ItemID:     data.ItemID,
				Quantity:   data.Quantity,
				CostType:   data.Cost.Type,
				CostAmount: data.Cost.Amount,
			}); err != nil {
				return err
			}
		}
		_, err := db.AddInventoryItem(tx, user.ID, data.ItemID, data.Type, data.Quantity)
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondInventory(c, user.ID)
}

func useInventoryItem(c *gin.Context, user *db.User, data *inventoryItemRequest) {
	if data.ItemID == "" || data.Type == "" {
		c.JSON(400, gin.H{"error": "物品数据不完整"})
		return
	}

	switch data.Type {
	case common.ItemTypeProp, common.ItemTypeMaterial:
		// 道具和材料只扣库存，效果由客户端结算
		_, err := db.AddInventoryItem(db.GetDB(), user.ID, data.ItemID, data.Type, -1)
		if err != nil {
			respondError(c, err)
			return
		}
	case common.ItemTypeGift:
		// 送礼：扣自己、加对方、发通知，同一个事务
		if data.ReceiverID == "" {
			c.JSON(400, gin.H{"error": "缺少接收者ID"})
			return
		}
		err := db.GetDB().Transaction(func(tx *gorm.DB) error {
			if _, err := db.GetUserByID(tx, data.ReceiverID); err != nil {
				return err
			}
			if _, err := db.AddInventoryItem(tx, user.ID, data.ItemID, data.Type, -1); err != nil {
				return err
			}
			if _, err := db.AddInventoryItem(tx, data.ReceiverID, data.ItemID, data.Type, 1); err != nil {
				return err
			}
			if err := db.AddTransaction(tx, &db.Transaction{
				UserID:   user.ID,
				Type:     common.TransactionTypeGift,
				ItemType: data.Type,
				ItemID:   data.ItemID,
				Quantity: 1,
			}); err != nil {
				return err
			}
			return db.AddMessage(tx, &db.Message{
				SenderID:   user.ID,
				ReceiverID: data.ReceiverID,
				Type:       common.MessageTypeGift,
				Content:    fmt.Sprintf("%s 送给你一个礼物: %s", user.Username, data.Name),
			})
		})
		if err != nil {
			respondError(c, err)
			return
		}
	default:
		c.JSON(400, gin.H{"error": "不支持的物品类型"})
		return
	}
	respondInventory(c, user.ID)
}

func respondInventory(c *gin.Context, userID string) {
	items, err := db.GetInventory(db.GetDB(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"success": true, "inventory": gin.H{"userId": userID, "items": items}})
}
