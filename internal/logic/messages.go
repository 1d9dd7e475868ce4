package logic

import (
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"petmatch-backend/internal/common"
	"petmatch-backend/internal/db"
)

// GetMessagesHandler 收件箱，最新的在前面
func GetMessagesHandler(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(400, gin.H{"error": "缺少用户ID"})
		return
	}
	if _, err := db.GetUserByID(db.GetDB(), userID); err != nil {
		respondError(c, err)
		return
	}
	messages, err := db.GetMessages(db.GetDB(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"success": true, "messages": messages})
}

// PostMessagesHandler 消息操作：send 发送，read 标记已读
func PostMessagesHandler(c *gin.Context) {
	var req struct {
		UserID      string `json:"userId"`
		Action      string `json:"action"`
		MessageID   string `json:"messageId"`
		MessageData *struct {
			ReceiverID  string         `json:"receiverId"`
			Type        string         `json:"type"`
			Content     string         `json:"content"`
			Attachments datatypes.JSON `json:"attachments"`
		} `json:"messageData"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.Action == "" {
		c.JSON(400, gin.H{"error": "缺少必要参数"})
		return
	}

	if _, err := db.GetUserByID(db.GetDB(), req.UserID); err != nil {
		respondError(c, err)
		return
	}

	switch req.Action {
	case "send":
		if req.MessageData == nil || req.MessageData.ReceiverID == "" || req.MessageData.Content == "" {
			c.JSON(400, gin.H{"error": "消息数据不完整"})
			return
		}
		if _, err := db.GetUserByID(db.GetDB(), req.MessageData.ReceiverID); err != nil {
			respondError(c, err)
			return
		}
		msgType := req.MessageData.Type
		if msgType == "" {
			msgType = common.MessageTypeSystem
		}
		message := db.Message{
			SenderID:    req.UserID,
			ReceiverID:  req.MessageData.ReceiverID,
			Type:        msgType,
			Content:     req.MessageData.Content,
			Attachments: req.MessageData.Attachments,
		}
		if err := db.AddMessage(db.GetDB(), &message); err != nil {
			respondError(c, err)
			return
		}
		respondMessages(c, req.UserID, gin.H{"messageId": message.ID})
	case "read":
		if req.MessageID == "" {
			c.JSON(400, gin.H{"error": "缺少消息ID"})
			return
		}
		message, err := db.GetMessageByID(db.GetDB(), req.MessageID)
		if err != nil {
			respondError(c, err)
			return
		}
		// 只有收件人能标记已读
		if message.ReceiverID != req.UserID {
			respondError(c, db.ErrNotOwner)
			return
		}
		if err := db.MarkMessageRead(db.GetDB(), req.MessageID); err != nil {
			respondError(c, err)
			return
		}
		respondMessages(c, req.UserID, gin.H{"read": true})
	default:
		c.JSON(400, gin.H{"error": "不支持的操作类型"})
	}
}

func respondMessages(c *gin.Context, userID string, result gin.H) {
	messages, err := db.GetMessages(db.GetDB(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"success": true, "result": result, "messages": messages})
}
