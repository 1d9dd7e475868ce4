package platform

import (
	"context"
	"fmt"
	"log"
	"sync"
)

// Mock 本地联调用的假平台：code原样映射成openid，消息只记录不外发
type Mock struct {
	name string

	mu   sync.Mutex
	sent []MockNotification
}

// MockNotification 记录一次推送，测试断言用
type MockNotification struct {
	OpenID string
	Page   string
	Data   map[string]interface{}
}

func NewMock(name string) *Mock {
	return &Mock{name: name}
}

func (m *Mock) Name() string { return m.name }

func (m *Mock) ExchangeCode(ctx context.Context, code string) (*SessionInfo, error) {
	if code == "" {
		return nil, fmt.Errorf("登录code为空")
	}
	return &SessionInfo{
		PlatformID: fmt.Sprintf("mock_%s_%s", m.name, code),
		SessionKey: "mock_session_key",
	}, nil
}

func (m *Mock) SendNotification(ctx context.Context, openID, page string, data map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, MockNotification{OpenID: openID, Page: page, Data: data})
	log.Printf("[mock:%s] 推送消息给 %s: %v", m.name, openID, data)
	return nil
}

// Sent 已记录的推送列表
func (m *Mock) Sent() []MockNotification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockNotification, len(m.sent))
	copy(out, m.sent)
	return out
}
