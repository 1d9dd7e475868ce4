package logic

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"petmatch-backend/internal/common"
	"petmatch-backend/internal/db"
)

// GetProgressHandler 获取游戏进度
func GetProgressHandler(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(400, gin.H{"error": "缺少用户ID"})
		return
	}
	progress, err := db.GetGameProgress(db.GetDB(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"success": true, "progress": progress})
}

// progressUpdates 进度补丁，只允许这五个字段
type progressUpdates struct {
	CurrentSeason   *string        `json:"currentSeason"`
	HighestLevel    *int           `json:"highestLevel"`
	LevelStars      map[string]int `json:"levelStars"`
	CompletedLevels []string       `json:"completedLevels"`
	TotalScore      *int64         `json:"totalScore"`
}

// PostProgressHandler 更新游戏进度
// 新通关的关卡按配置表发放奖励（金币+经验），与进度写入同一个事务
func PostProgressHandler(c *gin.Context) {
	var req struct {
		UserID  string           `json:"userId"`
		Updates *progressUpdates `json:"updates"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.Updates == nil {
		c.JSON(400, gin.H{"error": "缺少必要参数"})
		return
	}
	if req.Updates.CurrentSeason != nil && !common.IsValidSeason(*req.Updates.CurrentSeason) {
		c.JSON(400, gin.H{"error": "无效的季节"})
		return
	}

	if _, err := db.GetUserByID(db.GetDB(), req.UserID); err != nil {
		respondError(c, err)
		return
	}

	err := db.GetDB().Transaction(func(tx *gorm.DB) error {
		progress, err := db.GetGameProgress(tx, req.UserID)
		if err != nil {
			return err
		}

		newlyCompleted := mergeProgress(progress, req.Updates)
		if err := db.UpdateGameProgress(tx, progress); err != nil {
			return err
		}

		// 通关奖励
		var rewardGold int64
		var rewardExp int
		for _, levelID := range newlyCompleted {
			level, ok := common.GetLevelConfig(levelID)
			if !ok {
				continue
			}
			rewardGold += level.Rewards.Gold
			rewardExp += level.Rewards.Exp
			if err := db.AddTransaction(tx, &db.Transaction{
				UserID:   req.UserID,
				Type:     common.TransactionTypeReward,
				ItemType: common.CostTypeGold,
				ItemID:   levelID,
				Quantity: int(level.Rewards.Gold),
			}); err != nil {
				return err
			}
		}
		if rewardGold > 0 || rewardExp > 0 {
			// 用增量表达式写入，避免并发扣款时把余额覆盖回去
			return db.UpdateUserFields(tx, req.UserID, map[string]interface{}{
				"gold": gorm.Expr("gold + ?", rewardGold),
				"exp":  gorm.Expr("exp + ?", rewardExp),
			})
		}
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}

	progress, err := db.GetGameProgress(db.GetDB(), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"success": true, "progress": progress})
}

// mergeProgress 把补丁合入进度，返回本次新通关的关卡ID
func mergeProgress(progress *db.GameProgress, updates *progressUpdates) []string {
	if updates.CurrentSeason != nil {
		progress.CurrentSeason = *updates.CurrentSeason
	}
	if updates.HighestLevel != nil && *updates.HighestLevel > progress.HighestLevel {
		progress.HighestLevel = *updates.HighestLevel
	}
	if updates.LevelStars != nil {
		if progress.LevelStars == nil {
			progress.LevelStars = map[string]int{}
		}
		for levelID, stars := range updates.LevelStars {
			if stars > progress.LevelStars[levelID] {
				progress.LevelStars[levelID] = stars
			}
		}
	}
	if updates.TotalScore != nil {
		progress.TotalScore = *updates.TotalScore
	}

	var newlyCompleted []string
	if updates.CompletedLevels != nil {
		done := map[string]bool{}
		for _, id := range progress.CompletedLevels {
			done[id] = true
		}
		for _, id := range updates.CompletedLevels {
			if !done[id] {
				progress.CompletedLevels = append(progress.CompletedLevels, id)
				newlyCompleted = append(newlyCompleted, id)
			}
		}
	}
	return newlyCompleted
}

// GetTransactionsHandler 最近的资源流水
func GetTransactionsHandler(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(400, gin.H{"error": "缺少用户ID"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	transactions, err := db.GetTransactions(db.GetDB(), userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"success": true, "transactions": transactions})
}
