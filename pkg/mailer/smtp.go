package mailer

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	"github.com/matsumurashin0125/event-app7/config"
)

// SMTPTransport 通过邮件中继认证提交（默认 Gmail，587 端口 STARTTLS）
type SMTPTransport struct {
	dialer *gomail.Dialer
}

// NewSMTPTransport 创建 SMTPTransport
func NewSMTPTransport(cfg *config.MailConfig) *SMTPTransport {
	return &SMTPTransport{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.Username, cfg.Password),
	}
}

// Name 实现 Transport
func (t *SMTPTransport) Name() string { return config.TransportSMTP }

// Send 实现 Transport
// gomail 不接受 context，超时由调用方的 ctx 控制：超时后立即返回，后台连接自行结束
func (t *SMTPTransport) Send(ctx context.Context, msg *Message) error {
	m := buildGomailMessage(msg)

	done := make(chan error, 1)
	go func() {
		done <- t.dialer.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("SMTP 发送失败: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("SMTP 发送超时: %w", ctx.Err())
	}
}

func buildGomailMessage(msg *Message) *gomail.Message {
	m := gomail.NewMessage(gomail.SetCharset("UTF-8"))
	m.SetHeader("From", msg.From)
	if msg.ToName != "" {
		m.SetAddressHeader("To", msg.To, msg.ToName)
	} else {
		m.SetHeader("To", msg.To)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	if msg.HTML != "" {
		m.AddAlternative("text/html", msg.HTML)
	}

	for _, a := range msg.Attachments {
		data := a.Data
		m.Attach(a.Filename,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
			gomail.SetHeader(map[string][]string{
				"Content-Type": {a.ContentType},
			}),
		)
	}
	return m
}
