package mailer

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/matsumurashin0125/event-app7/config"
)

// SendGridTransport 通过事务邮件 API 提交，附件以 base64 传输
type SendGridTransport struct {
	client *sendgrid.Client
}

// NewSendGridTransport 创建 SendGridTransport
func NewSendGridTransport(cfg *config.MailConfig) *SendGridTransport {
	return &SendGridTransport{client: sendgrid.NewSendClient(cfg.SendGridAPIKey)}
}

// Name 实现 Transport
func (t *SendGridTransport) Name() string { return config.TransportSendGrid }

// Send 实现 Transport
func (t *SendGridTransport) Send(ctx context.Context, msg *Message) error {
	resp, err := t.client.SendWithContext(ctx, buildSendGridMail(msg))
	if err != nil {
		return fmt.Errorf("SendGrid 请求失败: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("SendGrid 返回 HTTP %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

func buildSendGridMail(msg *Message) *mail.SGMailV3 {
	from := mail.NewEmail("", msg.From)
	to := mail.NewEmail(msg.ToName, msg.To)
	m := mail.NewSingleEmail(from, msg.Subject, to, msg.Text, msg.HTML)

	for _, a := range msg.Attachments {
		att := mail.NewAttachment()
		att.SetContent(base64.StdEncoding.EncodeToString(a.Data))
		att.SetType(a.ContentType)
		att.SetFilename(a.Filename)
		att.SetDisposition("attachment")
		m.AddAttachment(att)
	}
	return m
}
