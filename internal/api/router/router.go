package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/matsumurashin0125/event-app7/config"
	"github.com/matsumurashin0125/event-app7/internal/api/handler"
	"github.com/matsumurashin0125/event-app7/internal/api/middleware"
	"github.com/matsumurashin0125/event-app7/web"
)

// Setup 初始化并返回 Gin 路由引擎
// limiter 为 nil 时不限流
func Setup(cfg *config.Config, h *handler.Handler, limiter middleware.RateLimiter, logger *zap.Logger) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("解析页面模板失败: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger, "/health"))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// 所有提交都是无认证的公开表单，按 IP 限流
	limit := middleware.RateLimit(limiter, cfg.Server.RateLimit, cfg.Server.RateLimitWindow, logger)

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ── 静态页面 ──
	r.GET("/", h.Page.Home)
	r.GET("/home", h.Page.Home)
	r.GET("/admin", h.Page.Admin)
	r.GET("/admin/export", h.Export.ExportRoster)

	// 候选
	candidate := r.Group("/candidate")
	{
		candidate.GET("", h.Candidate.Form)
		candidate.POST("", limit, h.Candidate.Create)
		candidate.GET("/:id/edit", h.Candidate.EditForm)
		candidate.POST("/:id/edit", limit, h.Candidate.Update)
		candidate.POST("/:id/delete", limit, h.Candidate.Delete)
	}

	// 确认
	confirm := r.Group("/confirm")
	{
		confirm.GET("", h.Confirm.Page)
		confirm.POST("", limit, h.Confirm.Confirm)
		confirm.POST("/:id/unconfirm", limit, h.Confirm.Unconfirm)
	}

	// 出勤登记
	register := r.Group("/register")
	{
		register.GET("", h.Attendance.List)
		register.GET("/event/:id", h.Attendance.Event)
		register.POST("/event/:id", limit, h.Attendance.Register)
	}

	attendance := r.Group("/attendance")
	{
		attendance.GET("/:id/edit", h.Attendance.EditForm)
		attendance.POST("/:id/edit", limit, h.Attendance.Update)
		attendance.POST("/:id/delete", limit, h.Attendance.Delete)
	}

	return r, nil
}
