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

// Wechat 微信小游戏适配器：jscode2session 登录 + 订阅消息
type Wechat struct {
	appID      string
	appSecret  string
	templateID string
	client     *http.Client

	mu              sync.Mutex
	accessToken     string
	accessTokenTime time.Time
	tokenExpiresIn  int
}

func NewWechat(appID, appSecret, templateID string) *Wechat {
	return &Wechat{
		appID:      appID,
		appSecret:  appSecret,
		templateID: templateID,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (w *Wechat) Name() string { return "wechat" }

// wxSessionResponse jscode2session 响应
type wxSessionResponse struct {
	OpenID     string `json:"openid"`
	SessionKey string `json:"session_key"`
	ErrCode    int    `json:"errcode"`
	ErrMsg     string `json:"errmsg"`
}

// ExchangeCode 用登录code换取openid
func (w *Wechat) ExchangeCode(ctx context.Context, code string) (*SessionInfo, error) {
	url := fmt.Sprintf(
		"https://api.weixin.qq.com/sns/jscode2session?appid=%s&secret=%s&js_code=%s&grant_type=authorization_code",
		w.appID, w.appSecret, code)

	body, err := w.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var sessionResp wxSessionResponse
	if err := json.Unmarshal(body, &sessionResp); err != nil {
		return nil, fmt.Errorf("解析响应失败: %v", err)
	}
	if sessionResp.OpenID == "" {
		return nil, fmt.Errorf("微信API错误: %d - %s", sessionResp.ErrCode, sessionResp.ErrMsg)
	}
	return &SessionInfo{PlatformID: sessionResp.OpenID, SessionKey: sessionResp.SessionKey}, nil
}

// wxAccessTokenResponse access token 响应
type wxAccessTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	ErrCode     int    `json:"errcode"`
	ErrMsg      string `json:"errmsg"`
}

// wxTemplateMessage 订阅消息
type wxTemplateMessage struct {
	Touser     string                 `json:"touser"`
	TemplateID string                 `json:"template_id"`
	Page       string                 `json:"page"`
	Data       map[string]interface{} `json:"data"`
}

// wxTemplateResponse 订阅消息响应
type wxTemplateResponse struct {
	ErrCode int    `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
	MsgID   int64  `json:"msgid"`
}

// getAccessToken 获取接口调用凭证，提前5分钟刷新
func (w *Wechat) getAccessToken(ctx context.Context) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.accessToken != "" &&
		time.Now().Before(w.accessTokenTime.Add(time.Duration(w.tokenExpiresIn-300)*time.Second)) {
		return w.accessToken, nil
	}

	url := fmt.Sprintf(
		"https://api.weixin.qq.com/cgi-bin/token?grant_type=client_credential&appid=%s&secret=%s",
		w.appID, w.appSecret)

	body, err := w.get(ctx, url)
	if err != nil {
		return "", fmt.Errorf("获取access token失败: %v", err)
	}

	var tokenResp wxAccessTokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", fmt.Errorf("解析响应失败: %v", err)
	}
	if tokenResp.ErrCode != 0 {
		return "", fmt.Errorf("微信API错误: %d - %s", tokenResp.ErrCode, tokenResp.ErrMsg)
	}

	w.accessToken = tokenResp.AccessToken
	w.accessTokenTime = time.Now()
	w.tokenExpiresIn = tokenResp.ExpiresIn

	log.Printf("获取新的access token成功，过期时间: %d秒", tokenResp.ExpiresIn)
	return w.accessToken, nil
}

// SendNotification 发送订阅消息
func (w *Wechat) SendNotification(ctx context.Context, openID, page string, data map[string]interface{}) error {
	token, err := w.getAccessToken(ctx)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("https://api.weixin.qq.com/cgi-bin/message/subscribe/send?access_token=%s", token)
	message := wxTemplateMessage{
		Touser:     openID,
		TemplateID: w.templateID,
		Page:       page,
		Data:       data,
	}

	jsonData, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("序列化消息失败: %v", err)
	}

	body, err := w.post(ctx, url, jsonData)
	if err != nil {
		return err
	}

	var templateResp wxTemplateResponse
	if err := json.Unmarshal(body, &templateResp); err != nil {
		return fmt.Errorf("解析响应失败: %v", err)
	}
	if templateResp.ErrCode != 0 {
		return fmt.Errorf("发送订阅消息失败: %d - %s", templateResp.ErrCode, templateResp.ErrMsg)
	}

	log.Printf("发送订阅消息成功，消息ID: %d", templateResp.MsgID)
	return nil
}

func (w *Wechat) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := w.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求失败: %v", err)
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

func (w *Wechat) post(ctx context.Context, url string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := w.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求失败: %v", err)
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}
