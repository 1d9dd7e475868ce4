package db

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"petmatch-backend/internal/common"
)

// 数据访问层：所有函数都接收一个 *gorm.DB，
// 多步写操作由 handler 放进同一个 tx.Transaction 里组合

// ---------- 用户 ----------

func GetUserByID(tx *gorm.DB, userID string) (*User, error) {
	var user User
	if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func GetUserByPlatformID(tx *gorm.DB, platform, platformID string) (*User, error) {
	var user User
	err := tx.Where("platform = ? AND platform_id = ?", platform, platformID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func CreateUser(tx *gorm.DB, user *User) error {
	now := time.Now()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.LastLoginAt = now
	user.LastEnergyRefillAt = now
	return tx.Create(user).Error
}

// 用户表允许外部更新的列
var userMutableColumns = map[string]bool{
	"username": true, "avatar": true, "level": true, "exp": true,
	"gold": true, "diamond": true, "energy": true,
	"last_energy_refill_at": true, "last_login_at": true,
}

// UpdateUserFields 按白名单列更新用户，未知列直接丢弃
func UpdateUserFields(tx *gorm.DB, userID string, fields map[string]interface{}) error {
	filtered := map[string]interface{}{}
	for k, v := range fields {
		if userMutableColumns[k] {
			filtered[k] = v
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	return tx.Model(&User{}).Where("id = ?", userID).Updates(filtered).Error
}

// SpendCurrency 条件扣款：余额不足时一行都不改，返回 ErrInsufficientFunds
func SpendCurrency(tx *gorm.DB, userID, costType string, amount int64) error {
	if amount <= 0 {
		return nil
	}
	column := "gold"
	if costType == common.CostTypeDiamond {
		column = "diamond"
	}
	res := tx.Model(&User{}).
		Where("id = ? AND "+column+" >= ?", userID, amount).
		Update(column, gorm.Expr(column+" - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := GetUserByID(tx, userID); err != nil {
			return err
		}
		return ErrInsufficientFunds
	}
	return nil
}

// ---------- 游戏进度 ----------

func GetGameProgress(tx *gorm.DB, userID string) (*GameProgress, error) {
	var progress GameProgress
	if err := tx.Where("user_id = ?", userID).First(&progress).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &progress, nil
}

func CreateGameProgress(tx *gorm.DB, progress *GameProgress) error {
	if progress.LevelStars == nil {
		progress.LevelStars = map[string]int{}
	}
	if progress.CompletedLevels == nil {
		progress.CompletedLevels = []string{}
	}
	return tx.Create(progress).Error
}

func UpdateGameProgress(tx *gorm.DB, progress *GameProgress) error {
	return tx.Model(&GameProgress{}).Where("user_id = ?", progress.UserID).
		Select("current_season", "highest_level", "level_stars", "completed_levels", "total_score").
		Updates(progress).Error
}

// ---------- 庄园 ----------

// GetGarden 返回庄园及其全部摆设
func GetGarden(tx *gorm.DB, userID string) (*Garden, error) {
	var garden Garden
	if err := tx.Where("user_id = ?", userID).First(&garden).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	garden.Buildings = []GardenItem{}
	garden.Decorations = []GardenItem{}
	var list []GardenItem
	if err := tx.Where("user_id = ?", userID).Order("purchased_at asc").Find(&list).Error; err != nil {
		return nil, err
	}
	for _, item := range list {
		if item.Type == common.ItemTypeBuilding {
			garden.Buildings = append(garden.Buildings, item)
		} else {
			garden.Decorations = append(garden.Decorations, item)
		}
	}
	return &garden, nil
}

func CreateGarden(tx *gorm.DB, garden *Garden) error {
	return tx.Create(garden).Error
}

func AddGardenItem(tx *gorm.DB, item *GardenItem) error {
	item.ID = uuid.NewString()
	if item.Level == 0 {
		item.Level = 1
	}
	item.PurchasedAt = time.Now()
	return tx.Create(item).Error
}

// ---------- 萌宠 ----------

func GetPets(tx *gorm.DB, userID string) ([]Pet, error) {
	var pets []Pet
	if err := tx.Where("user_id = ?", userID).Order("obtained_at asc").Find(&pets).Error; err != nil {
		return nil, err
	}
	return pets, nil
}

func GetPetByID(tx *gorm.DB, petID string) (*Pet, error) {
	var pet Pet
	if err := tx.Where("id = ?", petID).First(&pet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &pet, nil
}

func AddPet(tx *gorm.DB, pet *Pet) error {
	pet.ID = uuid.NewString()
	if pet.Accessories == nil {
		pet.Accessories = []string{}
	}
	pet.ObtainedAt = time.Now()
	return tx.Create(pet).Error
}

// 萌宠表允许外部更新的列
var petMutableColumns = map[string]bool{
	"name": true, "level": true, "exp": true, "intimacy": true,
	"skill_level": true, "is_deployed": true, "accessories": true,
}

// UpdatePetFields 按白名单列更新萌宠
// map 更新不走 serializer，JSON列的值要先手动编码
func UpdatePetFields(tx *gorm.DB, petID string, fields map[string]interface{}) error {
	filtered := map[string]interface{}{}
	for k, v := range fields {
		if !petMutableColumns[k] {
			continue
		}
		if k == "accessories" {
			data, err := json.Marshal(v)
			if err != nil {
				return err
			}
			v = string(data)
		}
		filtered[k] = v
	}
	if len(filtered) == 0 {
		return nil
	}
	return tx.Model(&Pet{}).Where("id = ?", petID).Updates(filtered).Error
}

// DeployPet 出战互斥：先清掉该用户全部出战标记，再set目标
func DeployPet(tx *gorm.DB, userID, petID string) error {
	if err := tx.Model(&Pet{}).Where("user_id = ? AND is_deployed = ?", userID, true).
		Update("is_deployed", false).Error; err != nil {
		return err
	}
	return tx.Model(&Pet{}).Where("id = ?", petID).Update("is_deployed", true).Error
}

// ---------- 库存 ----------

func GetInventory(tx *gorm.DB, userID string) ([]InventoryItem, error) {
	var items []InventoryItem
	if err := tx.Where("user_id = ?", userID).Order("obtained_at asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddInventoryItem 同一 (userId,itemId,type) 只保留一行：
// 已存在则累加数量，负数表示消耗；余量不足返回 ErrInsufficientQuantity
func AddInventoryItem(tx *gorm.DB, userID, itemID, itemType string, quantity int) (*InventoryItem, error) {
	var existing InventoryItem
	err := tx.Where("user_id = ? AND item_id = ? AND type = ?", userID, itemID, itemType).
		First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if quantity < 0 {
			return nil, ErrInsufficientQuantity
		}
		item := InventoryItem{
			ID:         uuid.NewString(),
			UserID:     userID,
			ItemID:     itemID,
			Type:       itemType,
			Quantity:   quantity,
			ObtainedAt: time.Now(),
		}
		if err := tx.Create(&item).Error; err != nil {
			return nil, err
		}
		return &item, nil
	}
	if existing.Quantity+quantity < 0 {
		return nil, ErrInsufficientQuantity
	}
	existing.Quantity += quantity
	if err := tx.Model(&InventoryItem{}).Where("id = ?", existing.ID).
		Update("quantity", existing.Quantity).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

// ---------- 好友 ----------

// GetFriends 双向查已接受的好友关系
func GetFriends(tx *gorm.DB, userID string) ([]Friendship, error) {
	var list []Friendship
	err := tx.Where("(user_id = ? OR friend_id = ?) AND status = ?",
		userID, userID, common.FriendStatusAccepted).Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// GetFriendRequests 收到的待处理请求
func GetFriendRequests(tx *gorm.DB, userID string) ([]Friendship, error) {
	var list []Friendship
	err := tx.Where("friend_id = ? AND status = ?", userID, common.FriendStatusPending).
		Order("created_at desc").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func GetFriendshipByID(tx *gorm.DB, friendshipID string) (*Friendship, error) {
	var friendship Friendship
	if err := tx.Where("id = ?", friendshipID).First(&friendship).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &friendship, nil
}

// FindActiveFriendship 按无序点对查 pending/accepted 的关系；没有返回 ErrNotFound
// removed/rejected 的关系不算数，允许删除后重新加好友
func FindActiveFriendship(tx *gorm.DB, userA, userB string) (*Friendship, error) {
	var friendship Friendship
	err := tx.Where(
		"((user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)) AND status IN ?",
		userA, userB, userB, userA,
		[]string{common.FriendStatusPending, common.FriendStatusAccepted},
	).First(&friendship).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &friendship, nil
}

func AddFriendship(tx *gorm.DB, userID, friendID string) (*Friendship, error) {
	now := time.Now()
	friendship := Friendship{
		ID:        uuid.NewString(),
		UserID:    userID,
		FriendID:  friendID,
		Status:    common.FriendStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.Create(&friendship).Error; err != nil {
		return nil, err
	}
	return &friendship, nil
}

func UpdateFriendshipStatus(tx *gorm.DB, friendshipID, status string) error {
	return tx.Model(&Friendship{}).Where("id = ?", friendshipID).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()}).Error
}

// ---------- 消息 ----------

// GetMessages 收件箱，最新的在前面
func GetMessages(tx *gorm.DB, userID string) ([]Message, error) {
	var messages []Message
	err := tx.Where("receiver_id = ?", userID).Order("created_at desc").Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func GetMessageByID(tx *gorm.DB, messageID string) (*Message, error) {
	var message Message
	if err := tx.Where("id = ?", messageID).First(&message).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &message, nil
}

func AddMessage(tx *gorm.DB, message *Message) error {
	message.ID = uuid.NewString()
	message.CreatedAt = time.Now()
	return tx.Create(message).Error
}

func MarkMessageRead(tx *gorm.DB, messageID string) error {
	return tx.Model(&Message{}).Where("id = ?", messageID).Update("is_read", true).Error
}

// ---------- 流水 ----------

func AddTransaction(tx *gorm.DB, transaction *Transaction) error {
	transaction.ID = uuid.NewString()
	transaction.CreatedAt = time.Now()
	return tx.Create(transaction).Error
}

func GetTransactions(tx *gorm.DB, userID string, limit int) ([]Transaction, error) {
	if limit <= 0 {
		limit = 20
	}
	var list []Transaction
	err := tx.Where("user_id = ?", userID).Order("created_at desc").Limit(limit).Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
