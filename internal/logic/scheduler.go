package logic

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"petmatch-backend/internal/common"
	"petmatch-backend/internal/db"
	"petmatch-backend/internal/platform"
)

// StartScheduler 启动定时任务：体力恢复结算 + 回流提醒
func StartScheduler(platforms platform.Registry) *cron.Cron {
	log.Println("启动定时任务调度器...")

	c := cron.New()

	// 每10分钟结算一次离线体力
	if _, err := c.AddFunc("*/10 * * * *", RefillAllEnergy); err != nil {
		log.Printf("注册体力结算任务失败: %v", err)
	}

	// 每天晚上8:30提醒一天没上线的玩家
	if _, err := c.AddFunc("30 20 * * *", func() { SendComebackReminders(platforms) }); err != nil {
		log.Printf("注册回流提醒任务失败: %v", err)
	}

	c.Start()
	return c
}

// RefillAllEnergy 给体力不满的用户结算恢复
func RefillAllEnergy() {
	if db.GetDB() == nil {
		log.Println("数据库未初始化，跳过体力结算")
		return
	}

	var users []db.User
	if err := db.GetDB().Where("energy < max_energy").Find(&users).Error; err != nil {
		log.Printf("获取待恢复用户失败: %v", err)
		return
	}

	now := time.Now()
	updated := 0
	for _, user := range users {
		energy, refillAt := RefillEnergy(user.Energy, user.MaxEnergy, user.LastEnergyRefillAt, now)
		if energy == user.Energy {
			continue
		}
		err := db.UpdateUserFields(db.GetDB(), user.ID, map[string]interface{}{
			"energy":                energy,
			"last_energy_refill_at": refillAt,
		})
		if err != nil {
			log.Printf("用户 %s 体力结算失败: %v", user.ID, err)
			continue
		}
		updated++
	}
	if updated > 0 {
		log.Printf("体力结算完成: %d 人", updated)
	}
}

// SendComebackReminders 给24小时没登录的平台用户推送订阅消息
func SendComebackReminders(platforms platform.Registry) {
	if db.GetDB() == nil {
		log.Println("数据库未初始化，跳过回流提醒")
		return
	}

	cutoff := time.Now().Add(-24 * time.Hour)
	var users []db.User
	err := db.GetDB().
		Where("last_login_at < ? AND platform <> ? AND platform_id IS NOT NULL", cutoff, common.PlatformGuest).
		Find(&users).Error
	if err != nil {
		log.Printf("获取待提醒用户失败: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	successCount := 0
	for _, user := range users {
		adapter, err := platforms.Get(user.Platform)
		if err != nil {
			continue
		}
		data := map[string]interface{}{
			"thing1": map[string]string{"value": "庄园想你了"},
			"thing2": map[string]string{"value": "你的萌宠在等你回来"},
			"time3":  map[string]string{"value": time.Now().Format("2006-01-02 15:04:05")},
		}
		if err := adapter.SendNotification(ctx, *user.PlatformID, "pages/index/index", data); err != nil {
			log.Printf("发送提醒给用户 %s 失败: %v", user.Username, err)
			continue
		}
		successCount++
	}
	log.Printf("回流提醒完成: 待提醒 %d 人，成功发送 %d 人", len(users), successCount)
}
