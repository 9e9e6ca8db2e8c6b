package mailer

import (
	"context"
	"fmt"

	"github.com/matsumurashin0125/event-app7/config"
)

// Attachment 邮件附件
type Attachment struct {
	Filename    string
	ContentType string // 完整 Content-Type，可带参数，如 text/calendar; method=REQUEST
	Data        []byte
}

// Message 一封待发送的邮件：纯文本 + HTML 备选 + 附件
type Message struct {
	From        string
	To          string
	ToName      string
	Subject     string
	Text        string
	HTML        string
	Attachments []Attachment
}

// Transport 邮件发送能力
// 同一部署只启用一种实现，选择由配置决定
type Transport interface {
	Send(ctx context.Context, msg *Message) error
	Name() string
}

// New 按配置创建 Transport
func New(cfg *config.MailConfig) (Transport, error) {
	switch cfg.Transport {
	case config.TransportSMTP:
		return NewSMTPTransport(cfg), nil
	case config.TransportSendGrid:
		return NewSendGridTransport(cfg), nil
	default:
		return nil, fmt.Errorf("未知的邮件发送方式 %q", cfg.Transport)
	}
}
