package db

import (
	"time"

	"gorm.io/datatypes"
)

// User 用户表
// platform: wechat/douyin/guest；游客没有 platform_id，每次登录都会新建一行
type User struct {
	ID                 string    `gorm:"primaryKey;size:36" json:"id"`
	Username           string    `gorm:"size:64;not null" json:"username"`
	Avatar             string    `gorm:"size:256" json:"avatar"`
	Platform           string    `gorm:"size:16;not null;uniqueIndex:idx_platform_identity" json:"platform"`
	PlatformID         *string   `gorm:"size:64;uniqueIndex:idx_platform_identity" json:"platformId,omitempty"`
	Level              int       `gorm:"default:1" json:"level"`
	Exp                int       `gorm:"default:0" json:"exp"`
	Gold               int64     `gorm:"default:0" json:"gold"`
	Diamond            int64     `gorm:"default:0" json:"diamond"`
	Energy             int       `gorm:"default:0" json:"energy"`
	MaxEnergy          int       `gorm:"default:20" json:"maxEnergy"`
	LastEnergyRefillAt time.Time `json:"lastEnergyRefillAt"`
	CreatedAt          time.Time `json:"createdAt"`
	LastLoginAt        time.Time `json:"lastLoginAt"`
}

// GameProgress 游戏进度表，与用户一对一
type GameProgress struct {
	ID              uint           `gorm:"primaryKey" json:"-"`
	UserID          string         `gorm:"size:36;uniqueIndex" json:"userId"`
	CurrentSeason   string         `gorm:"size:8;default:'spring'" json:"currentSeason"`
	HighestLevel    int            `gorm:"default:1" json:"highestLevel"`
	LevelStars      map[string]int `gorm:"serializer:json" json:"levelStars"`      // 关卡ID -> 星级
	CompletedLevels []string       `gorm:"serializer:json" json:"completedLevels"` // 已完成关卡ID列表
	TotalScore      int64          `gorm:"default:0" json:"totalScore"`
}

// Garden 庄园表，与用户一对一；摆放的物品见 GardenItem
type Garden struct {
	ID     uint   `gorm:"primaryKey" json:"-"`
	UserID string `gorm:"size:36;uniqueIndex" json:"userId"`
	Level  int    `gorm:"default:1" json:"level"`
	Exp    int    `gorm:"default:0" json:"exp"`
	Season string `gorm:"size:8;default:'spring'" json:"season"`

	// 查询时组装，不落列
	Buildings   []GardenItem `gorm:"-" json:"buildings"`
	Decorations []GardenItem `gorm:"-" json:"decorations"`
}

// GardenItem 庄园摆设表
// type: building/decoration
type GardenItem struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	UserID      string    `gorm:"size:36;index" json:"userId"`
	ItemID      string    `gorm:"size:64" json:"itemId"`
	Type        string    `gorm:"size:16" json:"type"`
	Name        string    `gorm:"size:64" json:"name"`
	Level       int       `gorm:"default:1" json:"level"`
	X           int       `json:"x"`
	Y           int       `json:"y"`
	Rotation    int       `gorm:"default:0" json:"rotation"`
	PurchasedAt time.Time `json:"purchasedAt"`
}

// Pet 萌宠表，一个用户多只；同一时刻至多一只出战
type Pet struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	UserID      string    `gorm:"size:36;index" json:"userId"`
	PetID       string    `gorm:"size:64" json:"petId"` // 萌宠模板ID
	Name        string    `gorm:"size:64" json:"name"`
	Level       int       `gorm:"default:1" json:"level"`
	Exp         int       `gorm:"default:0" json:"exp"`
	Intimacy    float64   `gorm:"default:1" json:"intimacy"` // 亲密度，上限5
	SkillLevel  int       `gorm:"default:1" json:"skillLevel"`
	Season      string    `gorm:"size:8" json:"season"`
	IsDeployed  bool      `gorm:"default:false" json:"isDeployed"`
	Accessories []string  `gorm:"serializer:json" json:"accessories"` // 装饰ID列表
	ObtainedAt  time.Time `json:"obtainedAt"`
}

// InventoryItem 库存表
// (user_id, item_id, type) 唯一，重复入库只累加数量
type InventoryItem struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	UserID     string    `gorm:"size:36;uniqueIndex:idx_inventory_slot" json:"userId"`
	ItemID     string    `gorm:"size:64;uniqueIndex:idx_inventory_slot" json:"itemId"`
	Type       string    `gorm:"size:16;uniqueIndex:idx_inventory_slot" json:"type"` // prop/material/gift
	Quantity   int       `gorm:"default:0" json:"quantity"`
	ObtainedAt time.Time `json:"obtainedAt"`
}

// Friendship 好友关系表（有向），status: pending/accepted/rejected/removed
// 删除好友只改状态不删行，保留记录
type Friendship struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;index" json:"userId"`
	FriendID  string    `gorm:"size:36;index" json:"friendId"`
	Status    string    `gorm:"size:16;default:'pending'" json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Message 站内消息表，type: gift/invitation/system
type Message struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	SenderID    string         `gorm:"size:36;index" json:"senderId"`
	ReceiverID  string         `gorm:"size:36;index" json:"receiverId"`
	Type        string         `gorm:"size:16" json:"type"`
	Content     string         `gorm:"size:512" json:"content"`
	IsRead      bool           `gorm:"default:false" json:"isRead"`
	Attachments datatypes.JSON `json:"attachments,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// Transaction 资源变动流水表，只追加不修改
type Transaction struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	UserID     string    `gorm:"size:36;index" json:"userId"`
	Type       string    `gorm:"size:16" json:"type"`     // purchase/reward/gift
	ItemType   string    `gorm:"size:16" json:"itemType"` // gold/diamond/prop/pet/decoration/building...
	ItemID     string    `gorm:"size:64" json:"itemId,omitempty"`
	Quantity   int       `gorm:"default:1" json:"quantity"`
	CostType   string    `gorm:"size:16" json:"costType,omitempty"` // gold/diamond
	CostAmount int64     `gorm:"default:0" json:"costAmount,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
