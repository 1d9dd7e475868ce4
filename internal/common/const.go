package common

// 季节
const (
	SeasonSpring = "spring"
	SeasonSummer = "summer"
	SeasonAutumn = "autumn"
	SeasonWinter = "winter"
)

// 平台类型
const (
	PlatformWechat = "wechat"
	PlatformDouyin = "douyin"
	PlatformGuest  = "guest"
)

// 物品类型
const (
	ItemTypeProp       = "prop"
	ItemTypeMaterial   = "material"
	ItemTypeGift       = "gift"
	ItemTypeBuilding   = "building"
	ItemTypeDecoration = "decoration"
)

// 好友关系状态
const (
	FriendStatusPending  = "pending"
	FriendStatusAccepted = "accepted"
	FriendStatusRejected = "rejected"
	FriendStatusRemoved  = "removed"
)

// 消息类型
const (
	MessageTypeGift       = "gift"
	MessageTypeInvitation = "invitation"
	MessageTypeSystem     = "system"
)

// 交易类型
const (
	TransactionTypePurchase = "purchase"
	TransactionTypeReward   = "reward"
	TransactionTypeGift     = "gift"
)

// 货币类型
const (
	CostTypeGold    = "gold"
	CostTypeDiamond = "diamond"
)

// 新用户初始资源
const (
	InitialGold    = 1000
	InitialDiamond = 50
	InitialEnergy  = 20
	MaxEnergy      = 20
)

// 萌宠喂养规则
const (
	FeedCostGold     = 10
	FeedExpGain      = 10
	FeedIntimacyGain = 0.1
	MaxIntimacy      = 5.0
)

// 体力恢复：每5分钟回复1点
const EnergyRefillMinutes = 5

// 初始萌宠模板
const StarterPetID = "pet_rabbit"

// IsValidPlatform 校验平台类型
func IsValidPlatform(p string) bool {
	return p == PlatformWechat || p == PlatformDouyin || p == PlatformGuest
}

// IsValidSeason 校验季节
func IsValidSeason(s string) bool {
	return s == SeasonSpring || s == SeasonSummer || s == SeasonAutumn || s == SeasonWinter
}
