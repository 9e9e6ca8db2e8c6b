package config

import (
	"fmt"
	"strings"
	"time"
)

// DefaultVenues 练习场馆（固定枚举）
var DefaultVenues = []string{"中平井", "平井", "西小岩", "北小岩", "南小岩"}

// Member 固定成员名单中的一项
// Key 用于配置键与环境变量名，Name 为页面显示名
type Member struct {
	Key  string
	Name string
}

// EnvVar 成员邮箱对应的环境变量名，如 MAIL_MATSUMURA
func (m Member) EnvVar() string {
	return "MAIL_" + strings.ToUpper(m.Key)
}

// DefaultMembers 固定成员名单，顺序即页面下拉框顺序
var DefaultMembers = []Member{
	{Key: "matsumura", Name: "松村"},
	{Key: "yamabi", Name: "山火"},
	{Key: "yamane", Name: "山根"},
	{Key: "okusako", Name: "奥迫"},
	{Key: "kawasaki", Name: "川崎"},
}

// ClubConfig 俱乐部静态数据：场馆、时间刻度、时区
// 所有页面与流程共用这一份，不在各入口重复声明
type ClubConfig struct {
	TimeZone     string   `mapstructure:"timezone"`
	Venues       []string `mapstructure:"venues"`
	FirstSlot    string   `mapstructure:"first_slot"`
	LastSlot     string   `mapstructure:"last_slot"`
	InviteDomain string   `mapstructure:"invite_domain"`
}

// MemberNames 成员显示名列表
func (c *ClubConfig) MemberNames() []string {
	names := make([]string, 0, len(DefaultMembers))
	for _, m := range DefaultMembers {
		names = append(names, m.Name)
	}
	return names
}

// TimeGrid 半小时刻度的 "HH:MM" 列表，首尾均包含
func (c *ClubConfig) TimeGrid() ([]string, error) {
	first, err := time.Parse("15:04", c.FirstSlot)
	if err != nil {
		return nil, fmt.Errorf("无效的 club.first_slot %q", c.FirstSlot)
	}
	last, err := time.Parse("15:04", c.LastSlot)
	if err != nil {
		return nil, fmt.Errorf("无效的 club.last_slot %q", c.LastSlot)
	}
	if last.Before(first) {
		return nil, fmt.Errorf("club.last_slot 早于 club.first_slot")
	}

	var grid []string
	for t := first; !t.After(last); t = t.Add(30 * time.Minute) {
		grid = append(grid, t.Format("15:04"))
	}
	return grid, nil
}

// HasVenue 场馆是否在枚举内
func (c *ClubConfig) HasVenue(name string) bool {
	for _, v := range c.Venues {
		if v == name {
			return true
		}
	}
	return false
}

// MemberMails 成员 Key → 邮箱，来自环境变量
type MemberMails map[string]string

// MemberDirectory 显示名 → 邮箱的只读映射
// 只交给通知模块使用，不进入模板
type MemberDirectory struct {
	byName map[string]string
}

// NewMemberDirectory 按成员名单与邮箱配置构建映射，未配置邮箱的成员不收录
func NewMemberDirectory(members []Member, mails MemberMails) *MemberDirectory {
	d := &MemberDirectory{byName: make(map[string]string, len(members))}
	for _, m := range members {
		addr := strings.TrimSpace(mails[m.Key])
		if addr == "" {
			continue
		}
		d.byName[m.Name] = addr
	}
	return d
}

// Lookup 查找成员邮箱
func (d *MemberDirectory) Lookup(name string) (string, bool) {
	if d == nil {
		return "", false
	}
	addr, ok := d.byName[name]
	return addr, ok
}

// Len 已配置邮箱的成员数
func (d *MemberDirectory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.byName)
}
