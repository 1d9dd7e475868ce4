package platform

import (
	"context"
	"errors"
	"os"
)

// SessionInfo 登录凭证换取结果
type SessionInfo struct {
	PlatformID string // 平台分配的用户标识（openid）
	SessionKey string
}

// Platform 小程序宿主平台的服务端能力
// 登录凭证校验 + 订阅消息推送；广告/振动/分享等纯客户端能力不在服务端暴露
type Platform interface {
	Name() string
	ExchangeCode(ctx context.Context, code string) (*SessionInfo, error)
	SendNotification(ctx context.Context, openID, page string, data map[string]interface{}) error
}

var ErrUnsupportedPlatform = errors.New("不支持的平台类型")

// Config 各平台的应用凭证，从环境变量读取
type Config struct {
	WechatAppID      string
	WechatAppSecret  string
	WechatTemplateID string
	DouyinAppID      string
	DouyinAppSecret  string
	DouyinTemplateID string
	UseMock          bool
}

func LoadConfig() *Config {
	return &Config{
		WechatAppID:      os.Getenv("WX_APPID"),
		WechatAppSecret:  os.Getenv("WX_APP_SECRET"),
		WechatTemplateID: os.Getenv("WX_TEMPLATE_ID"),
		DouyinAppID:      os.Getenv("DOUYIN_APPID"),
		DouyinAppSecret:  os.Getenv("DOUYIN_APP_SECRET"),
		DouyinTemplateID: os.Getenv("DOUYIN_TEMPLATE_ID"),
		UseMock:          os.Getenv("PLATFORM_MOCK") == "1",
	}
}

// Registry 按平台名取适配器实例
type Registry map[string]Platform

// NewRegistry 根据配置构建各平台适配器；PLATFORM_MOCK=1 时全部换成mock，供本地联调
func NewRegistry(cfg *Config) Registry {
	if cfg.UseMock {
		return Registry{
			"wechat": NewMock("wechat"),
			"douyin": NewMock("douyin"),
		}
	}
	return Registry{
		"wechat": NewWechat(cfg.WechatAppID, cfg.WechatAppSecret, cfg.WechatTemplateID),
		"douyin": NewDouyin(cfg.DouyinAppID, cfg.DouyinAppSecret, cfg.DouyinTemplateID),
	}
}

// Get 取指定平台的适配器
func (r Registry) Get(name string) (Platform, error) {
	p, ok := r[name]
	if !ok {
		return nil, ErrUnsupportedPlatform
	}
	return p, nil
}
