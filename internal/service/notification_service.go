package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"time"

	"go.uber.org/zap"

	"github.com/matsumurashin0125/event-app7/pkg/mailer"
)

// ── 通知模块 ──

const (
	inviteFilename     = "invite.ics"
	inviteContentType  = `text/calendar; method=REQUEST; charset="utf-8"`
	defaultMailTimeout = 30 * time.Second
)

// ErrRecipientUnknown 成员未配置邮箱
var ErrRecipientUnknown = errors.New("成员未配置邮箱")

// RecipientDirectory 显示名 → 邮箱
type RecipientDirectory interface {
	Lookup(name string) (string, bool)
}

// NotificationService 向单个成员发送日历邀请
//
// 返回的 error 只用于诊断，调用方记录日志后继续，不影响已提交的数据。
// 不重试。
type NotificationService interface {
	Notify(ctx context.Context, slot Slot, recipientName string) error
}

type notificationService struct {
	builder   *InviteBuilder
	directory RecipientDirectory
	transport mailer.Transport
	from      string
	timeout   time.Duration
	logger    *zap.Logger
}

// NewNotificationService 创建 NotificationService 实例
func NewNotificationService(
	builder *InviteBuilder,
	directory RecipientDirectory,
	transport mailer.Transport,
	from string,
	timeout time.Duration,
	logger *zap.Logger,
) NotificationService {
	if timeout <= 0 {
		timeout = defaultMailTimeout
	}
	return &notificationService{
		builder:   builder,
		directory: directory,
		transport: transport,
		from:      from,
		timeout:   timeout,
		logger:    logger,
	}
}

func (s *notificationService) Notify(ctx context.Context, slot Slot, recipientName string) error {
	log := s.logger.With(
		zap.String("recipient", recipientName),
		zap.String("transport", s.transport.Name()),
	)

	addr, ok := s.directory.Lookup(recipientName)
	if !ok {
		err := fmt.Errorf("%w: %s", ErrRecipientUnknown, recipientName)
		log.Error("邀请邮件未发送：找不到收件人", zap.Error(err))
		return err
	}

	inv, err := s.builder.Build(slot, recipientName)
	if err != nil {
		log.Error("邀请邮件未发送：生成日历失败", zap.Error(err))
		return fmt.Errorf("生成日历邀请失败: %w", err)
	}

	msg := composeInviteMessage(s.from, addr, recipientName, slot, inv)

	// 请求结束不应打断已开始的发送，只受固定超时约束
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	start := time.Now()
	if err := s.transport.Send(sendCtx, msg); err != nil {
		log.Error("邀请邮件发送失败",
			zap.String("uid", inv.UID),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return err
	}

	log.Info("邀请邮件已发送",
		zap.String("uid", inv.UID),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// composeInviteMessage 纯文本 + HTML（含快速添加链接）+ invite.ics 附件
func composeInviteMessage(from, to, name string, slot Slot, inv *Invite) *mailer.Message {
	timeRange := slot.Start + " - " + slot.End

	plain := fmt.Sprintf("%s 様\n\n"+
		"参加登録ありがとうございます。\n"+
		"添付の .ics を開くか、下のリンクから Google カレンダーに追加してください。\n\n"+
		"イベント: %s\n場所: %s\n時間: %s\n\n"+
		"%s\n\n"+
		"よろしくお願いします。",
		name, inv.Title, inv.Location, timeRange, inv.WebLink)

	e := html.EscapeString
	body := fmt.Sprintf("<p>%s 様</p>"+
		"<p>参加登録ありがとうございます。以下の方法でカレンダーに追加できます：</p>"+
		"<ol>"+
		"<li>添付の <strong>%s</strong> をダブルクリックして追加（Outlook/Google 等でインポート）</li>"+
		"<li><a href=\"%s\">Google カレンダーに追加する（ブラウザで開きます）</a></li>"+
		"</ol>"+
		"<p>イベント: <strong>%s</strong><br>場所: %s<br>時間: %s</p>"+
		"<p>よろしくお願いします。</p>",
		e(name), inviteFilename, e(inv.WebLink), e(inv.Title), e(inv.Location), e(timeRange))

	return &mailer.Message{
		From:    from,
		To:      to,
		ToName:  name,
		Subject: fmt.Sprintf("[予定] %s (%d/%d/%d)", inv.Title, slot.Year, slot.Month, slot.Day),
		Text:    plain,
		HTML:    body,
		Attachments: []mailer.Attachment{{
			Filename:    inviteFilename,
			ContentType: inviteContentType,
			Data:        []byte(inv.ICS),
		}},
	}
}
