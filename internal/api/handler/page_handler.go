package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PageHandler 静态页面
type PageHandler struct{}

// NewPageHandler 创建 PageHandler
func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Home 首页
// GET / 与 GET /home
func (h *PageHandler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", nil)
}

// Admin 管理入口
// GET /admin
func (h *PageHandler) Admin(c *gin.Context) {
	c.HTML(http.StatusOK, "admin.html", nil)
}
