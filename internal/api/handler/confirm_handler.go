package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matsumurashin0125/event-app7/internal/dto"
	"github.com/matsumurashin0125/event-app7/internal/service"
	"github.com/matsumurashin0125/event-app7/pkg/response"
)

// ConfirmHandler 确认模块 HTTP 处理器
type ConfirmHandler struct {
	confirmSvc service.ConfirmationService
}

// NewConfirmHandler 创建 ConfirmHandler
func NewConfirmHandler(confirmSvc service.ConfirmationService) *ConfirmHandler {
	return &ConfirmHandler{confirmSvc: confirmSvc}
}

// Page 确认页
// GET /confirm
func (h *ConfirmHandler) Page(c *gin.Context) {
	page, err := h.confirmSvc.Overview(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		response.InternalError(c)
		return
	}
	c.HTML(http.StatusOK, "confirm.html", page)
}

// Confirm 确认候选，重复提交无副作用
// POST /confirm
func (h *ConfirmHandler) Confirm(c *gin.Context) {
	var form dto.ConfirmForm
	if err := c.ShouldBind(&form); err != nil {
		response.BadRequest(c, codeInvalidParam, "候補を選択してください。")
		return
	}

	if err := h.confirmSvc.Confirm(c.Request.Context(), form.CandidateID); err != nil {
		if errors.Is(err, service.ErrCandidateNotFound) {
			response.NotFound(c, codeCandidateNotFound, "候補が見つかりません。")
			return
		}
		_ = c.Error(err)
		response.InternalError(c)
		return
	}
	response.Redirect(c, "/confirm")
}

// Unconfirm 取消确认
// POST /confirm/:id/unconfirm
func (h *ConfirmHandler) Unconfirm(c *gin.Context) {
	if err := h.confirmSvc.Unconfirm(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		response.InternalError(c)
		return
	}
	response.Redirect(c, "/confirm")
}
