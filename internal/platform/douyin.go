package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"
)

// Douyin 抖音小游戏适配器：v2/jscode2session 登录 + 订阅消息
type Douyin struct {
	appID      string
	appSecret  string
	templateID string
	client     *http.Client

	mu              sync.Mutex
	accessToken     string
	accessTokenTime time.Time
	tokenExpiresIn  int
}

func NewDouyin(appID, appSecret, templateID string) *Douyin {
	return &Douyin{
		appID:      appID,
		appSecret:  appSecret,
		templateID: templateID,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (d *Douyin) Name() string { return "douyin" }

// dySessionResponse jscode2session 响应
type dySessionResponse struct {
	ErrNo   int    `json:"err_no"`
	ErrTips string `json:"err_tips"`
	Data    struct {
		SessionKey string `json:"session_key"`
		OpenID     string `json:"openid"`
		UnionID    string `json:"unionid"`
	} `json:"data"`
}

// ExchangeCode 用登录code换取openid
func (d *Douyin) ExchangeCode(ctx context.Context, code string) (*SessionInfo, error) {
	payload, _ := json.Marshal(map[string]string{
		"appid":  d.appID,
		"secret": d.appSecret,
		"code":   code,
	})

	body, err := d.post(ctx, "https://developer.toutiao.com/api/apps/v2/jscode2session", payload)
	if err != nil {
		return nil, err
	}

	var sessionResp dySessionResponse
	if err := json.Unmarshal(body, &sessionResp); err != nil {
		return nil, fmt.Errorf("解析响应失败: %v", err)
	}
	if sessionResp.ErrNo != 0 || sessionResp.Data.OpenID == "" {
		return nil, fmt.Errorf("抖音API错误: %d - %s", sessionResp.ErrNo, sessionResp.ErrTips)
	}
	return &SessionInfo{PlatformID: sessionResp.Data.OpenID, SessionKey: sessionResp.Data.SessionKey}, nil
}

// dyTokenResponse access token 响应
type dyTokenResponse struct {
	ErrNo   int    `json:"err_no"`
	ErrTips string `json:"err_tips"`
	Data    struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	} `json:"data"`
}

// getAccessToken 获取接口调用凭证，提前5分钟刷新
func (d *Douyin) getAccessToken(ctx context.Context) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.accessToken != "" &&
		time.Now().Before(d.accessTokenTime.Add(time.Duration(d.tokenExpiresIn-300)*time.Second)) {
		return d.accessToken, nil
	}

	payload, _ := json.Marshal(map[string]string{
		"appid":      d.appID,
		"secret":     d.appSecret,
		"grant_type": "client_credential",
	})

	body, err := d.post(ctx, "https://developer.toutiao.com/api/apps/v2/token", payload)
	if err != nil {
		return "", fmt.Errorf("获取access token失败: %v", err)
	}

	var tokenResp dyTokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", fmt.Errorf("解析响应失败: %v", err)
	}
	if tokenResp.ErrNo != 0 {
		return "", fmt.Errorf("抖音API错误: %d - %s", tokenResp.ErrNo, tokenResp.ErrTips)
	}

	d.accessToken = tokenResp.Data.AccessToken
	d.accessTokenTime = time.Now()
	d.tokenExpiresIn = tokenResp.Data.ExpiresIn
	return d.accessToken, nil
}

// dyNotifyResponse 订阅消息响应
type dyNotifyResponse struct {
	ErrNo   int    `json:"err_no"`
	ErrTips string `json:"err_tips"`
}

// SendNotification 发送订阅消息
func (d *Douyin) SendNotification(ctx context.Context, openID, page string, data map[string]interface{}) error {
	token, err := d.getAccessToken(ctx)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(map[string]interface{}{
		"access_token": token,
		"app_id":       d.appID,
		"tpl_id":       d.templateID,
		"open_id":      openID,
		"page":         page,
		"data":         data,
	})
	if err != nil {
		return fmt.Errorf("序列化消息失败: %v", err)
	}

	body, err := d.post(ctx,
		"https://developer.toutiao.com/api/apps/subscribe_notification/developer/v1/notify_user", payload)
	if err != nil {
		return err
	}

	var notifyResp dyNotifyResponse
	if err := json.Unmarshal(body, &notifyResp); err != nil {
		return fmt.Errorf("解析响应失败: %v", err)
	}
	if notifyResp.ErrNo != 0 {
		return fmt.Errorf("发送订阅消息失败: %d - %s", notifyResp.ErrNo, notifyResp.ErrTips)
	}

	log.Printf("抖音订阅消息发送成功: %s", openID)
	return nil
}

func (d *Douyin) post(ctx context.Context, url string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求失败: %v", err)
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}
