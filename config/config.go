package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// insecureSecretKey 未配置 SECRET_KEY 时的兜底值，仅供本地开发
const insecureSecretKey = "fixed-secret-key-abcde-12345"

// Config 应用全局配置结构体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Session  SessionConfig  `mapstructure:"session"`
	Mail     MailConfig     `mapstructure:"mail"`
	Members  MemberMails    `mapstructure:"members"`
	Club     ClubConfig     `mapstructure:"club"`
	Log      LogConfig      `mapstructure:"log"`

	// 以下字段在 Load 阶段派生，之后只读
	location  *time.Location
	directory *MemberDirectory
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	RateLimit       int           `mapstructure:"rate_limit"`
	RateLimitWindow time.Duration `mapstructure:"rate_limit_window"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

// DatabaseConfig PostgreSQL 数据库配置
type DatabaseConfig struct {
	URL             string `mapstructure:"url"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // 分钟
}

// DSN 返回可直接交给驱动的连接串
// 旧式 postgres:// 前缀改写为 postgresql://
func (c *DatabaseConfig) DSN() string {
	return NormalizeDatabaseURL(c.URL)
}

// NormalizeDatabaseURL 改写旧式 URL scheme，仅替换一次前缀
func NormalizeDatabaseURL(raw string) string {
	const legacy = "postgres://"
	if strings.HasPrefix(raw, legacy) {
		return "postgresql://" + strings.TrimPrefix(raw, legacy)
	}
	return raw
}

// RedisConfig Redis 配置；Addr 为空时不启用
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// SessionConfig 会话配置
type SessionConfig struct {
	Secret string `mapstructure:"secret"`
}

// InsecureSecret 是否仍在使用兜底密钥
func (c *SessionConfig) InsecureSecret() bool {
	return c.Secret == insecureSecretKey
}

// 邮件发送方式
const (
	TransportSMTP     = "smtp"
	TransportSendGrid = "sendgrid"
)

// MailConfig 邮件发送配置，同一部署只启用一种 Transport
type MailConfig struct {
	Transport      string        `mapstructure:"transport"`
	SMTPHost       string        `mapstructure:"smtp_host"`
	SMTPPort       int           `mapstructure:"smtp_port"`
	Username       string        `mapstructure:"username"`
	Password       string        `mapstructure:"password"`
	SendGridAPIKey string        `mapstructure:"sendgrid_api_key"`
	SendGridFrom   string        `mapstructure:"sendgrid_from"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// From 发件人地址
func (c *MailConfig) From() string {
	if c.Transport == TransportSendGrid {
		return c.SendGridFrom
	}
	return c.Username
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load 从配置文件与环境变量加载配置
// 优先级：环境变量 > 配置文件 > 默认值
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── 默认值 ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit", 30)
	v.SetDefault("server.rate_limit_window", "1m")
	v.SetDefault("server.max_body_bytes", 1<<20)

	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", 30)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("session.secret", insecureSecretKey)

	v.SetDefault("mail.transport", TransportSMTP)
	v.SetDefault("mail.smtp_host", "smtp.gmail.com")
	v.SetDefault("mail.smtp_port", 587)
	v.SetDefault("mail.timeout", "30s")

	v.SetDefault("club.timezone", "Asia/Tokyo")
	v.SetDefault("club.venues", DefaultVenues)
	v.SetDefault("club.first_slot", "18:00")
	v.SetDefault("club.last_slot", "22:00")
	v.SetDefault("club.invite_domain", "event-app7.local")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// ── 配置文件 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 环境变量 ──
	// 部署平台沿用的变量名，逐个显式绑定
	bindings := map[string]string{
		"server.port":           "PORT",
		"db.url":                "DATABASE_URL",
		"redis.addr":            "REDIS_ADDR",
		"redis.password":        "REDIS_PASSWORD",
		"redis.db":              "REDIS_DB",
		"session.secret":        "SECRET_KEY",
		"mail.transport":        "MAIL_TRANSPORT",
		"mail.smtp_host":        "SMTP_SERVER",
		"mail.smtp_port":        "SMTP_PORT",
		"mail.username":         "GMAIL_USER",
		"mail.password":         "GMAIL_PASS",
		"mail.sendgrid_api_key": "SENDGRID_API_KEY",
		"mail.sendgrid_from":    "SENDGRID_FROM",
		"mail.timeout":          "MAIL_TIMEOUT",
		"club.timezone":         "LOCAL_TZ",
		"log.level":             "LOG_LEVEL",
		"log.format":            "LOG_FORMAT",
	}
	for _, m := range DefaultMembers {
		bindings["members."+m.Key] = m.EnvVar()
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("绑定环境变量 %s 失败: %w", env, err)
		}
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		// 配置文件不存在时仅依赖默认值和环境变量
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.finalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 校验关键配置项，任一失败进程不启动
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("配置校验失败: DATABASE_URL 不能为空")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("配置校验失败: server.port 必须在 1-65535 之间")
	}

	switch c.Mail.Transport {
	case TransportSMTP:
		if c.Mail.Username == "" || c.Mail.Password == "" {
			return fmt.Errorf("配置校验失败: GMAIL_USER/GMAIL_PASS 不能为空")
		}
		if c.Mail.SMTPHost == "" || c.Mail.SMTPPort <= 0 {
			return fmt.Errorf("配置校验失败: SMTP_SERVER/SMTP_PORT 无效")
		}
	case TransportSendGrid:
		if c.Mail.SendGridAPIKey == "" || c.Mail.SendGridFrom == "" {
			return fmt.Errorf("配置校验失败: SENDGRID_API_KEY/SENDGRID_FROM 不能为空")
		}
	default:
		return fmt.Errorf("配置校验失败: 未知的邮件发送方式 %q", c.Mail.Transport)
	}
	if c.Mail.Timeout <= 0 {
		return fmt.Errorf("配置校验失败: mail.timeout 必须大于 0")
	}

	if _, err := time.LoadLocation(c.Club.TimeZone); err != nil {
		return fmt.Errorf("配置校验失败: 无效的时区 %q: %w", c.Club.TimeZone, err)
	}
	if _, err := c.Club.TimeGrid(); err != nil {
		return fmt.Errorf("配置校验失败: %w", err)
	}
	if len(c.Club.Venues) == 0 {
		return fmt.Errorf("配置校验失败: club.venues 不能为空")
	}
	return nil
}

// finalize 派生只读对象：时区与成员邮箱表
func (c *Config) finalize() error {
	loc, err := time.LoadLocation(c.Club.TimeZone)
	if err != nil {
		return err
	}
	c.location = loc
	c.directory = NewMemberDirectory(DefaultMembers, c.Members)
	return nil
}

// Location 俱乐部所在时区
func (c *Config) Location() *time.Location {
	if c.location == nil {
		loc, err := time.LoadLocation(c.Club.TimeZone)
		if err != nil {
			return time.UTC
		}
		c.location = loc
	}
	return c.location
}

// Directory 成员邮箱表（进程内只构建一次）
func (c *Config) Directory() *MemberDirectory {
	if c.directory == nil {
		c.directory = NewMemberDirectory(DefaultMembers, c.Members)
	}
	return c.directory
}
