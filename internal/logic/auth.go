package logic

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"petmatch-backend/internal/common"
	"petmatch-backend/internal/db"
)

// AuthHandler 登录/注册接口
// 游客每次登录都会新建账号（没有platformId可以去重）
func AuthHandler(c *gin.Context) {
	var req struct {
		Platform   string `json:"platform"`
		PlatformID string `json:"platformId"`
		Username   string `json:"username"`
		Avatar     string `json:"avatar"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Platform == "" || req.Username == "" {
		c.JSON(400, gin.H{"error": "缺少必要参数"})
		return
	}
	if !common.IsValidPlatform(req.Platform) {
		c.JSON(400, gin.H{"error": "不支持的平台类型"})
		return
	}

	user, err := loginOrRegister(req.Platform, req.PlatformID, req.Username, req.Avatar)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"success": true, "user": user})
}

// LoginHandler 平台code登录接口：先向宿主平台换openid，再走同一套注册/登录流程
func (s *Server) LoginHandler(c *gin.Context) {
	var req struct {
		Platform string `json:"platform"`
		Code     string `json:"code"`
		Username string `json:"username"`
		Avatar   string `json:"avatar"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Platform == "" || req.Code == "" || req.Username == "" {
		c.JSON(400, gin.H{"error": "缺少必要参数"})
		return
	}

	adapter, err := s.platforms.Get(req.Platform)
	if err != nil {
		c.JSON(400, gin.H{"error": "不支持的平台类型"})
		return
	}

	session, err := adapter.ExchangeCode(c.Request.Context(), req.Code)
	if err != nil {
		c.JSON(400, gin.H{"error": "登录凭证校验失败", "detail": err.Error()})
		return
	}

	user, err := loginOrRegister(req.Platform, session.PlatformID, req.Username, req.Avatar)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"success": true, "user": user})
}

// loginOrRegister 已有账号则刷新体力和登录时间，否则初始化新账号
func loginOrRegister(platformName, platformID, username, avatar string) (*db.User, error) {
	if platformName != common.PlatformGuest && platformID != "" {
		user, err := db.GetUserByPlatformID(db.GetDB(), platformName, platformID)
		if err == nil {
			return touchLogin(user)
		}
		if err != db.ErrNotFound {
			return nil, err
		}
	}
	return bootstrapUser(platformName, platformID, username, avatar)
}

// touchLogin 登录时顺带结算离线回的体力
func touchLogin(user *db.User) (*db.User, error) {
	now := time.Now()
	energy, refillAt := RefillEnergy(user.Energy, user.MaxEnergy, user.LastEnergyRefillAt, now)
	err := db.UpdateUserFields(db.GetDB(), user.ID, map[string]interface{}{
		"energy":                energy,
		"last_energy_refill_at": refillAt,
		"last_login_at":         now,
	})
	if err != nil {
		return nil, err
	}
	return db.GetUserByID(db.GetDB(), user.ID)
}

// bootstrapUser 新账号初始化：用户+进度+庄园+初始萌宠，在同一个事务里落成
func bootstrapUser(platformName, platformID, username, avatar string) (*db.User, error) {
	if avatar == "" {
		avatar = fmt.Sprintf("https://api.dicebear.com/7.x/bottts/svg?seed=%s", username)
	}

	user := db.User{
		Username:  username,
		Avatar:    avatar,
		Platform:  platformName,
		Level:     1,
		Exp:       0,
		Gold:      common.InitialGold,
		Diamond:   common.InitialDiamond,
		Energy:    common.InitialEnergy,
		MaxEnergy: common.MaxEnergy,
	}
	if platformName != common.PlatformGuest && platformID != "" {
		user.PlatformID = &platformID
	}

	starter, _ := common.GetPetConfig(common.StarterPetID)

	err := db.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := db.CreateUser(tx, &user); err != nil {
			return err
		}
		if err := db.CreateGameProgress(tx, &db.GameProgress{
			UserID:        user.ID,
			CurrentSeason: common.SeasonSpring,
			HighestLevel:  1,
		}); err != nil {
			return err
		}
		if err := db.CreateGarden(tx, &db.Garden{
			UserID: user.ID,
			Level:  1,
			Season: common.SeasonSpring,
		}); err != nil {
			return err
		}
		return db.AddPet(tx, &db.Pet{
			UserID:     user.ID,
			PetID:      starter.ID,
			Name:       starter.Name,
			Level:      1,
			Intimacy:   1,
			SkillLevel: 1,
			Season:     starter.Season,
			IsDeployed: true,
		})
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
