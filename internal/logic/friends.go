package logic

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"petmatch-backend/internal/common"
	"petmatch-backend/internal/db"
)

// GetFriendsHandler 好友查询
// type=friends 返回好友列表（带庄园和萌宠数），type=requests 返回收到的待处理请求
func GetFriendsHandler(c *gin.Context) {
	userID := c.Query("userId")
	queryType := c.DefaultQuery("type", "friends")
	if userID == "" {
		c.JSON(400, gin.H{"error": "缺少用户ID"})
		return
	}
	if _, err := db.GetUserByID(db.GetDB(), userID); err != nil {
		respondError(c, err)
		return
	}

	switch queryType {
	case "friends":
		friendships, err := db.GetFriends(db.GetDB(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		friends := make([]gin.H, 0, len(friendships))
		for _, f := range friendships {
			friendID := f.FriendID
			if friendID == userID {
				friendID = f.UserID
			}
			friend, err := db.GetUserByID(db.GetDB(), friendID)
			if err != nil {
				// 好友账号查不到就跳过，不让整个列表报错
				continue
			}
			garden, _ := db.GetGarden(db.GetDB(), friendID)
			pets, _ := db.GetPets(db.GetDB(), friendID)
			friends = append(friends, gin.H{
				"id":          friend.ID,
				"username":    friend.Username,
				"avatar":      friend.Avatar,
				"level":       friend.Level,
				"lastLoginAt": friend.LastLoginAt,
				"garden":      garden,
				"petsCount":   len(pets),
			})
		}
		c.JSON(200, gin.H{"success": true, "friends": friends})
	case "requests":
		requests, err := db.GetFriendRequests(db.GetDB(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		out := make([]gin.H, 0, len(requests))
		for _, r := range requests {
			requester, err := db.GetUserByID(db.GetDB(), r.UserID)
			if err != nil {
				continue
			}
			out = append(out, gin.H{
				"id": r.ID,
				"user": gin.H{
					"id":       requester.ID,
					"username": requester.Username,
					"avatar":   requester.Avatar,
					"level":    requester.Level,
				},
				"createdAt": r.CreatedAt,
			})
		}
		c.JSON(200, gin.H{"success": true, "requests": out})
	default:
		c.JSON(400, gin.H{"error": "不支持的类型"})
	}
}

// PostFriendsHandler 好友操作：add/accept/reject/remove
// 状态机：pending -> accepted/rejected，accepted -> removed；removed/rejected 后可重新申请
func PostFriendsHandler(c *gin.Context) {
	var req struct {
		UserID       string `json:"userId"`
		Action       string `json:"action"`
		TargetID     string `json:"targetId"`
		FriendshipID string `json:"friendshipId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.Action == "" {
		c.JSON(400, gin.H{"error": "缺少必要参数"})
		return
	}

	user, err := db.GetUserByID(db.GetDB(), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	var result gin.H
	switch req.Action {
	case "add":
		result, err = addFriend(user, req.TargetID)
	case "accept":
		result, err = answerFriendRequest(user, req.FriendshipID, true)
	case "reject":
		result, err = answerFriendRequest(user, req.FriendshipID, false)
	case "remove":
		result, err = removeFriend(user, req.TargetID)
	default:
		c.JSON(400, gin.H{"error": "不支持的操作类型"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"success": true, "result": result})
}

var errBadTargetID = &badRequestError{"缺少目标用户ID"}
var errBadFriendshipID = &badRequestError{"缺少好友请求ID"}
var errSelfFriend = &badRequestError{"不能添加自己为好友"}
var errNotPending = &badRequestError{"请求已处理"}

// addFriend 发起好友申请：同一对用户只允许一条 pending/accepted 关系
func addFriend(user *db.User, targetID string) (gin.H, error) {
	if targetID == "" {
		return nil, errBadTargetID
	}
	if targetID == user.ID {
		return nil, errSelfFriend
	}
	if _, err := db.GetUserByID(db.GetDB(), targetID); err != nil {
		return nil, err
	}

	var friendship *db.Friendship
	err := db.GetDB().Transaction(func(tx *gorm.DB) error {
		if _, err := db.FindActiveFriendship(tx, user.ID, targetID); err == nil {
			return db.ErrDuplicateFriendship
		} else if err != db.ErrNotFound {
			return err
		}
		var err error
		friendship, err = db.AddFriendship(tx, user.ID, targetID)
		if err != nil {
			return err
		}
		return db.AddMessage(tx, &db.Message{
			SenderID:   user.ID,
			ReceiverID: targetID,
			Type:       common.MessageTypeSystem,
			Content:    fmt.Sprintf("%s 请求添加您为好友", user.Username),
		})
	})
	if err != nil {
		return nil, err
	}
	return gin.H{"requestId": friendship.ID}, nil
}

// answerFriendRequest 接受或拒绝好友请求，只有被请求方能处理
func answerFriendRequest(user *db.User, friendshipID string, accept bool) (gin.H, error) {
	if friendshipID == "" {
		return nil, errBadFriendshipID
	}
	friendship, err := db.GetFriendshipByID(db.GetDB(), friendshipID)
	if err != nil {
		return nil, err
	}
	if friendship.FriendID != user.ID {
		return nil, db.ErrNotOwner
	}
	if friendship.Status != common.FriendStatusPending {
		return nil, errNotPending
	}

	status := common.FriendStatusRejected
	if accept {
		status = common.FriendStatusAccepted
	}

	err = db.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := db.UpdateFriendshipStatus(tx, friendshipID, status); err != nil {
			return err
		}
		if !accept {
			return nil
		}
		return db.AddMessage(tx, &db.Message{
			SenderID:   user.ID,
			ReceiverID: friendship.UserID,
			Type:       common.MessageTypeSystem,
			Content:    fmt.Sprintf("%s 接受了您的好友请求", user.Username),
		})
	})
	if err != nil {
		return nil, err
	}
	if accept {
		return gin.H{"accepted": true}, nil
	}
	return gin.H{"rejected": true}, nil
}

// removeFriend 删除好友：只改状态为 removed，保留记录
func removeFriend(user *db.User, targetID string) (gin.H, error) {
	if targetID == "" {
		return nil, errBadTargetID
	}
	friendship, err := db.FindActiveFriendship(db.GetDB(), user.ID, targetID)
	if err != nil {
		return nil, err
	}
	if friendship.Status != common.FriendStatusAccepted {
		return nil, db.ErrNotFound
	}
	if err := db.UpdateFriendshipStatus(db.GetDB(), friendship.ID, common.FriendStatusRemoved); err != nil {
		return nil, err
	}
	return gin.H{"removed": true}, nil
}
