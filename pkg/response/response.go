package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// errorTemplate 错误页模板名，由 router 统一注册
const errorTemplate = "error.html"

// ErrorPage 错误页渲染数据
type ErrorPage struct {
	Status  int
	Code    int
	Message string
}

// ── 页面跳转 ──

// Redirect 303 跳转到列表页（POST 之后统一使用）
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

// ── 错误响应 ──

// Error 通用错误页
func Error(c *gin.Context, httpStatus int, code int, message string) {
	c.HTML(httpStatus, errorTemplate, ErrorPage{
		Status:  httpStatus,
		Code:    code,
		Message: message,
	})
}

// BadRequest 400
func BadRequest(c *gin.Context, code int, message string) {
	Error(c, http.StatusBadRequest, code, message)
}

// NotFound 404
func NotFound(c *gin.Context, code int, message string) {
	Error(c, http.StatusNotFound, code, message)
}

// TooManyRequests 429
func TooManyRequests(c *gin.Context) {
	Error(c, http.StatusTooManyRequests, 10004, "リクエストが多すぎます。しばらくしてから再度お試しください。")
}

// InternalError 500
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, 50000, "サーバーエラーが発生しました。")
}
