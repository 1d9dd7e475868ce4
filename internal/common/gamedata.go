package common

// 静态游戏配置：季节、关卡、物品、萌宠、成就、活动
// 上线后通过替换内置配置表更新，不落库

// Cost 价格描述
type Cost struct {
	Type   string `json:"type"` // gold/diamond
	Amount int64  `json:"amount"`
}

// SeasonConfig 季节配置
type SeasonConfig struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Elements        []string `json:"elements"`
	SpecialElements []string `json:"specialElements"`
	BackgroundTheme string   `json:"backgroundTheme"`
}

// LevelObjective 关卡目标
type LevelObjective struct {
	Type     string `json:"type"` // score/collect/clear/reach
	Target   string `json:"target"`
	Quantity int    `json:"quantity"`
}

// LevelReward 关卡奖励
type LevelReward struct {
	Gold int64 `json:"gold"`
	Exp  int   `json:"exp"`
}

// LevelConfig 关卡配置
type LevelConfig struct {
	ID         string           `json:"id"`
	Chapter    int              `json:"chapter"`
	Level      int              `json:"level"`
	Season     string           `json:"season"`
	Type       string           `json:"type"` // normal/time/boss
	Difficulty int              `json:"difficulty"`
	Objectives []LevelObjective `json:"objectives"`
	Rows       int              `json:"rows"`
	Cols       int              `json:"cols"`
	Moves      int              `json:"moves,omitempty"`
	Time       int              `json:"time,omitempty"`
	Rewards    LevelReward      `json:"rewards"`
}

// ItemConfig 物品配置
type ItemConfig struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"` // prop/material/gift/building/decoration
	Season      string `json:"season,omitempty"`
	Rarity      string `json:"rarity"` // common/uncommon/rare/epic/legendary
	Price       *Cost  `json:"price,omitempty"`
}

// PetSkill 萌宠技能
type PetSkill struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Cooldown    int    `json:"cooldown"`
}

// PetConfig 萌宠配置
type PetConfig struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Season      string   `json:"season"`
	Rarity      string   `json:"rarity"`
	Skill       PetSkill `json:"skill"`
	Price       *Cost    `json:"price,omitempty"`
}

// AchievementConfig 成就配置
type AchievementConfig struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Category      string `json:"category"` // collection/level/garden/pet/social
	RequiredValue int    `json:"requiredValue"`
	RewardGold    int64  `json:"rewardGold"`
}

// EventConfig 活动配置
type EventConfig struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"` // daily/weekly/seasonal/special
	StartTime   int64  `json:"startTime"`
	EndTime     int64  `json:"endTime"`
}

var seasons = []SeasonConfig{
	{ID: SeasonSpring, Name: "春", Elements: []string{"flower", "leaf", "butterfly", "raindrop"}, SpecialElements: []string{"rainbow"}, BackgroundTheme: "spring_garden"},
	{ID: SeasonSummer, Name: "夏", Elements: []string{"sun", "icecream", "shell", "watermelon"}, SpecialElements: []string{"firefly"}, BackgroundTheme: "summer_beach"},
	{ID: SeasonAutumn, Name: "秋", Elements: []string{"maple", "acorn", "mushroom", "pumpkin"}, SpecialElements: []string{"harvest_moon"}, BackgroundTheme: "autumn_forest"},
	{ID: SeasonWinter, Name: "冬", Elements: []string{"snowflake", "pinecone", "mitten", "cocoa"}, SpecialElements: []string{"aurora"}, BackgroundTheme: "winter_village"},
}

var pets = []PetConfig{
	{ID: StarterPetID, Name: "小兔子", Description: "春天出生的小兔子，新手玩家的第一个伙伴", Season: SeasonSpring, Rarity: "common",
		Skill: PetSkill{Name: "幸运一跳", Description: "消除时额外获得少量金币", Cooldown: 30}},
	{ID: "pet_kitten", Name: "小花猫", Description: "慵懒的夏日猫咪", Season: SeasonSummer, Rarity: "uncommon",
		Skill: PetSkill{Name: "猫爪连击", Description: "随机消除一列元素", Cooldown: 45},
		Price: &Cost{Type: CostTypeGold, Amount: 2000}},
	{ID: "pet_fox", Name: "小狐狸", Description: "秋林里的机灵鬼", Season: SeasonAutumn, Rarity: "rare",
		Skill: PetSkill{Name: "狐火", Description: "点燃一片3x3区域", Cooldown: 60},
		Price: &Cost{Type: CostTypeDiamond, Amount: 30}},
	{ID: "pet_penguin", Name: "小企鹅", Description: "摇摇摆摆的冰雪信使", Season: SeasonWinter, Rarity: "epic",
		Skill: PetSkill{Name: "冰封", Description: "冻结倒计时5秒", Cooldown: 90},
		Price: &Cost{Type: CostTypeDiamond, Amount: 80}},
}

var items = []ItemConfig{
	{ID: "prop_hammer", Name: "小锤子", Description: "敲碎任意一个元素", Type: ItemTypeProp, Rarity: "common", Price: &Cost{Type: CostTypeGold, Amount: 100}},
	{ID: "prop_shuffle", Name: "刷新器", Description: "重新排列棋盘", Type: ItemTypeProp, Rarity: "common", Price: &Cost{Type: CostTypeGold, Amount: 150}},
	{ID: "prop_bomb", Name: "炸弹", Description: "清除3x3范围", Type: ItemTypeProp, Rarity: "uncommon", Price: &Cost{Type: CostTypeDiamond, Amount: 5}},
	{ID: "material_wood", Name: "木材", Description: "庄园建筑升级材料", Type: ItemTypeMaterial, Rarity: "common"},
	{ID: "material_stone", Name: "石料", Description: "庄园建筑升级材料", Type: ItemTypeMaterial, Rarity: "common"},
	{ID: "gift_flower", Name: "花束", Description: "送给好友的春日花束", Type: ItemTypeGift, Season: SeasonSpring, Rarity: "common", Price: &Cost{Type: CostTypeGold, Amount: 50}},
	{ID: "gift_cake", Name: "蛋糕", Description: "甜甜的友情蛋糕", Type: ItemTypeGift, Rarity: "uncommon", Price: &Cost{Type: CostTypeGold, Amount: 200}},
	{ID: "building_cottage", Name: "小木屋", Description: "庄园的第一座小屋", Type: ItemTypeBuilding, Rarity: "common", Price: &Cost{Type: CostTypeGold, Amount: 500}},
	{ID: "building_fountain", Name: "喷泉", Description: "华丽的庄园喷泉", Type: ItemTypeBuilding, Rarity: "rare", Price: &Cost{Type: CostTypeDiamond, Amount: 20}},
	{ID: "deco_bench", Name: "长椅", Description: "供萌宠休息的长椅", Type: ItemTypeDecoration, Rarity: "common", Price: &Cost{Type: CostTypeGold, Amount: 120}},
	{ID: "deco_lantern", Name: "灯笼", Description: "夜晚会亮起的灯笼", Type: ItemTypeDecoration, Rarity: "uncommon", Price: &Cost{Type: CostTypeGold, Amount: 260}},
}

var levels = []LevelConfig{
	{ID: "level_1_1", Chapter: 1, Level: 1, Season: SeasonSpring, Type: "normal", Difficulty: 1,
		Objectives: []LevelObjective{{Type: "score", Target: "score", Quantity: 1000}},
		Rows:       8, Cols: 8, Moves: 20, Rewards: LevelReward{Gold: 100, Exp: 10}},
	{ID: "level_1_2", Chapter: 1, Level: 2, Season: SeasonSpring, Type: "normal", Difficulty: 1,
		Objectives: []LevelObjective{{Type: "collect", Target: "flower", Quantity: 20}},
		Rows:       8, Cols: 8, Moves: 22, Rewards: LevelReward{Gold: 120, Exp: 12}},
	{ID: "level_1_3", Chapter: 1, Level: 3, Season: SeasonSpring, Type: "time", Difficulty: 2,
		Objectives: []LevelObjective{{Type: "score", Target: "score", Quantity: 2500}},
		Rows:       8, Cols: 8, Time: 60, Rewards: LevelReward{Gold: 150, Exp: 15}},
	{ID: "level_1_5", Chapter: 1, Level: 5, Season: SeasonSpring, Type: "boss", Difficulty: 3,
		Objectives: []LevelObjective{{Type: "clear", Target: "weed", Quantity: 12}},
		Rows:       9, Cols: 9, Moves: 30, Rewards: LevelReward{Gold: 300, Exp: 30}},
}

// GetPetConfig 按模板ID查萌宠配置
func GetPetConfig(petID string) (PetConfig, bool) {
	for _, p := range pets {
		if p.ID == petID {
			return p, true
		}
	}
	return PetConfig{}, false
}

// GetItemConfig 按物品ID查物品配置
func GetItemConfig(itemID string) (ItemConfig, bool) {
	for _, it := range items {
		if it.ID == itemID {
			return it, true
		}
	}
	return ItemConfig{}, false
}

// GetLevelConfig 按关卡ID查关卡配置
func GetLevelConfig(levelID string) (LevelConfig, bool) {
	for _, l := range levels {
		if l.ID == levelID {
			return l, true
		}
	}
	return LevelConfig{}, false
}

// GetSeasonConfig 按季节ID查季节配置
func GetSeasonConfig(seasonID string) (SeasonConfig, bool) {
	for _, s := range seasons {
		if s.ID == seasonID {
			return s, true
		}
	}
	return SeasonConfig{}, false
}

// AllSeasons 全部季节配置
func AllSeasons() []SeasonConfig { return seasons }

// AllPets 全部萌宠配置
func AllPets() []PetConfig { return pets }

// AllItems 全部物品配置
func AllItems() []ItemConfig { return items }
