package logic

import (
	"time"

	"petmatch-backend/internal/common"
)

// RefillEnergy 计算自上次恢复以来回的体力
// 每 EnergyRefillMinutes 分钟回1点，封顶 maxEnergy；
// 返回新体力值和新的恢复基准时间（按整段时间推进，零头留到下一轮）
func RefillEnergy(energy, maxEnergy int, lastRefillAt, now time.Time) (int, time.Time) {
	if energy >= maxEnergy {
		return energy, now
	}
	interval := time.Duration(common.EnergyRefillMinutes) * time.Minute
	elapsed := now.Sub(lastRefillAt)
	if elapsed < interval {
		return energy, lastRefillAt
	}
	gained := int(elapsed / interval)
	if energy+gained >= maxEnergy {
		return maxEnergy, now
	}
	return energy + gained, lastRefillAt.Add(time.Duration(gained) * interval)
}
