package middleware

import (
	"github.com/gin-gonic/gin"
)

// pagePolicy 页面只有内联样式与服务端表单，不加载任何外部资源，也不允许被嵌入
const pagePolicy = "default-src 'self'; style-src 'self' 'unsafe-inline'; " +
	"form-action 'self'; base-uri 'self'; frame-ancestors 'none'"

// SecurityHeaders 安全响应头。
// 登记、编辑页含成员姓名，禁止浏览器与中间代理缓存
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Content-Security-Policy", pagePolicy)
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "same-origin")
		h.Set("Cache-Control", "no-store")

		c.Next()
	}
}
