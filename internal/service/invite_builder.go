package service

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/matsumurashin0125/event-app7/internal/model"
)

// ── 日历邀请生成 ──
//
// 职责：把一个确定的练习时段转成 iCalendar 邀请与 Google 日历快速添加链接。
//
//   - 本地日期 + "HH:MM" 按配置时区换算为 UTC，统一输出 YYYYMMDDTHHMMSSZ
//   - 每次生成新的 UID 与 DTSTAMP，重复发送给同一成员也不会在日历里互相覆盖
//   - METHOD:REQUEST，手机日历才会当作邀请处理
//   - 不做任何 I/O

const (
	icsTimestampFormat = "20060102T150405Z"
	icsProductID       = "-//event-app7//Practice Scheduler//JA"
	gcalTemplateURL    = "https://www.google.com/calendar/render?action=TEMPLATE"
)

// ErrInvalidTime 时段的日期或时间无法解析
var ErrInvalidTime = errors.New("无效的日期或时间")

// Slot 已确定的练习时段
type Slot struct {
	Gym   string
	Year  int
	Month int
	Day   int
	Start string // HH:MM，本地时间
	End   string // HH:MM，本地时间
}

// SlotFromCandidate 由候选构造时段
func SlotFromCandidate(c *model.Candidate) Slot {
	return Slot{
		Gym:   c.Gym,
		Year:  c.Year,
		Month: c.Month,
		Day:   c.Day,
		Start: c.Start,
		End:   c.End,
	}
}

// Title 日历标题
func (s Slot) Title() string {
	return s.Gym + " 練習"
}

// Invite 生成结果
type Invite struct {
	UID         string
	Title       string
	Description string
	Location    string
	Start       time.Time // UTC
	End         time.Time // UTC
	Stamp       time.Time // UTC
	ICS         string
	WebLink     string
}

// InviteBuilder 日历邀请生成器
type InviteBuilder struct {
	loc    *time.Location
	domain string
	now    func() time.Time
	newUID func() string
}

// NewInviteBuilder 创建 InviteBuilder；domain 用作 UID 的 @ 后缀
func NewInviteBuilder(loc *time.Location, domain string) *InviteBuilder {
	if loc == nil {
		loc = time.UTC
	}
	return &InviteBuilder{
		loc:    loc,
		domain: domain,
		now:    time.Now,
		newUID: uuid.NewString,
	}
}

// Build 生成邀请
func (b *InviteBuilder) Build(slot Slot, recipientName string) (*Invite, error) {
	start, err := localInstant(slot.Year, slot.Month, slot.Day, slot.Start, b.loc)
	if err != nil {
		return nil, err
	}
	end, err := localInstant(slot.Year, slot.Month, slot.Day, slot.End, b.loc)
	if err != nil {
		return nil, err
	}

	inv := &Invite{
		UID:   b.newUID() + "@" + b.domain,
		Title: slot.Title(),
		Description: fmt.Sprintf("%s さんが参加登録しました。\n場所: %s\n時間: %s - %s",
			recipientName, slot.Gym, slot.Start, slot.End),
		Location: slot.Gym,
		Start:    start.UTC(),
		End:      end.UTC(),
		Stamp:    b.now().UTC(),
	}
	inv.ICS = inv.serialize()
	inv.WebLink = quickAddLink(inv.Title, inv.Description, inv.Location, inv.Start, inv.End)
	return inv, nil
}

func (inv *Invite) serialize() string {
	cal := ics.NewCalendar()
	cal.SetProductId(icsProductID)
	cal.SetCalscale("GREGORIAN")
	cal.SetMethod(ics.MethodRequest)

	event := cal.AddEvent(inv.UID)
	event.SetDtStampTime(inv.Stamp)
	event.SetStartAt(inv.Start)
	event.SetEndAt(inv.End)
	// TEXT 属性的转义（\\ \n \, \;）与 75 字节折行由 golang-ical 在序列化时完成
	event.SetSummary(inv.Title)
	event.SetDescription(inv.Description)
	event.SetLocation(inv.Location)

	// 行尾固定为 CRLF，不随运行平台变化
	return cal.Serialize(ics.WithNewLineWindows)
}

// quickAddLink Google 日历快速添加链接，时间与 ICS 相同
func quickAddLink(title, details, location string, start, end time.Time) string {
	var b strings.Builder
	b.WriteString(gcalTemplateURL)
	b.WriteString("&text=" + url.QueryEscape(title))
	b.WriteString("&details=" + url.QueryEscape(details))
	b.WriteString("&location=" + url.QueryEscape(location))
	b.WriteString("&dates=" + start.UTC().Format(icsTimestampFormat) + "/" + end.UTC().Format(icsTimestampFormat))
	return b.String()
}

// localInstant 本地日期 + HH:MM → 时刻；日期不存在时报错而不是顺延
func localInstant(year, month, day int, hhmm string, loc *time.Location) (time.Time, error) {
	hour, minute, err := parseClock(hhmm)
	if err != nil {
		return time.Time{}, err
	}
	t := time.Date(year, time.Month(month), day, hour, minute, 0, 0, loc)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, fmt.Errorf("%w: %d-%d-%d", ErrInvalidTime, year, month, day)
	}
	return t, nil
}

func parseClock(hhmm string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(hhmm), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTime, hhmm)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTime, hhmm)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTime, hhmm)
	}
	return hour, minute, nil
}
