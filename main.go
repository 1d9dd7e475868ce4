package main

import (
	"log"

	"github.com/joho/godotenv"

	"petmatch-backend/internal/db"
	"petmatch-backend/internal/logic"
	"petmatch-backend/internal/platform"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("未找到.env文件，使用系统环境变量")
	}

	cfg := LoadConfig()
	db.InitDB()

	// 平台适配器
	platforms := platform.NewRegistry(platform.LoadConfig())

	// 启动定时任务调度器
	logic.StartScheduler(platforms)

	// 启动Gin路由
	router := logic.SetupRouter(platforms)
	router.Run(cfg.ListenAddr)
}
