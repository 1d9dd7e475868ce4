package logic

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"petmatch-backend/internal/common"
	"petmatch-backend/internal/db"
	"petmatch-backend/internal/platform"
)

// Server 持有各平台适配器，注入给需要的handler
type Server struct {
	platforms platform.Registry
}

// SetupRouter 路由入口
func SetupRouter(platforms platform.Registry) *gin.Engine {
	r := gin.Default()
	s := &Server{platforms: platforms}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	r.POST("/api/auth", AuthHandler)
	r.POST("/api/login", s.LoginHandler)

	r.GET("/api/garden", GetGardenHandler)
	r.POST("/api/garden", PostGardenHandler)

	r.GET("/api/inventory", GetInventoryHandler)
	r.POST("/api/inventory", PostInventoryHandler)

	r.GET("/api/pets", GetPetsHandler)
	r.POST("/api/pets", PostPetsHandler)

	r.GET("/api/friends", GetFriendsHandler)
	r.POST("/api/friends", PostFriendsHandler)

	r.GET("/api/messages", GetMessagesHandler)
	r.POST("/api/messages", PostMessagesHandler)

	r.GET("/api/progress", GetProgressHandler)
	r.POST("/api/progress", PostProgressHandler)

	r.GET("/api/transactions", GetTransactionsHandler)
	r.GET("/api/config", GetGameConfigHandler)

	return r
}

// respondError 把业务错误映射为HTTP状态码
func respondError(c *gin.Context, err error) {
	var badReq *badRequestError
	switch {
	case errors.As(err, &badReq):
		c.JSON(400, gin.H{"error": badReq.msg})
	case errors.Is(err, db.ErrNotFound):
		c.JSON(404, gin.H{"error": err.Error()})
	case errors.Is(err, db.ErrNotOwner):
		c.JSON(403, gin.H{"error": err.Error()})
	case errors.Is(err, db.ErrInsufficientFunds),
		errors.Is(err, db.ErrInsufficientQuantity),
		errors.Is(err, db.ErrDuplicateFriendship):
		c.JSON(400, gin.H{"error": err.Error()})
	default:
		log.Printf("请求处理失败: %v", err)
		c.JSON(500, gin.H{"error": "服务器错误"})
	}
}

// GetGameConfigHandler 下发静态配置表
func GetGameConfigHandler(c *gin.Context) {
	c.JSON(200, gin.H{
		"success": true,
		"seasons": common.AllSeasons(),
		"pets":    common.AllPets(),
		"items":   common.AllItems(),
	})
}
