package db

import "errors"

// 业务错误，由 handler 层映射为 HTTP 状态码
var (
	ErrNotFound             = errors.New("记录不存在")
	ErrInsufficientFunds    = errors.New("余额不足")
	ErrInsufficientQuantity = errors.New("物品数量不足")
	ErrNotOwner             = errors.New("无权操作")
	ErrDuplicateFriendship  = errors.New("好友关系已存在")
)
