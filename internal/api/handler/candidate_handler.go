package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matsumurashin0125/event-app7/internal/dto"
	"github.com/matsumurashin0125/event-app7/internal/service"
	"github.com/matsumurashin0125/event-app7/pkg/response"
)

// CandidateHandler 候选模块 HTTP 处理器
type CandidateHandler struct {
	candidateSvc service.CandidateService
}

// NewCandidateHandler 创建 CandidateHandler
func NewCandidateHandler(candidateSvc service.CandidateService) *CandidateHandler {
	return &CandidateHandler{candidateSvc: candidateSvc}
}

// Form 提案页
// GET /candidate
func (h *CandidateHandler) Form(c *gin.Context) {
	page, err := h.candidateSvc.ProposalPage(c.Request.Context(), nil)
	if err != nil {
		h.handleCandidateError(c, err)
		return
	}
	c.HTML(http.StatusOK, "candidate.html", page)
}

// Create 提交候选
// POST /candidate
func (h *CandidateHandler) Create(c *gin.Context) {
	var form dto.CandidateForm
	if err := c.ShouldBind(&form); err != nil {
		response.BadRequest(c, codeInvalidParam, "入力内容に誤りがあります。")
		return
	}

	if _, err := h.candidateSvc.Create(c.Request.Context(), &form); err != nil {
		h.handleCandidateError(c, err)
		return
	}
	response.Redirect(c, "/candidate")
}

// EditForm 候选编辑页
// GET /candidate/:id/edit
func (h *CandidateHandler) EditForm(c *gin.Context) {
	page, err := h.candidateSvc.EditPage(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleCandidateError(c, err)
		return
	}
	c.HTML(http.StatusOK, "candidate_edit.html", page)
}

// Update 更新候选
// POST /candidate/:id/edit
func (h *CandidateHandler) Update(c *gin.Context) {
	var form dto.CandidateForm
	if err := c.ShouldBind(&form); err != nil {
		response.BadRequest(c, codeInvalidParam, "入力内容に誤りがあります。")
		return
	}

	if _, err := h.candidateSvc.Update(c.Request.Context(), c.Param("id"), &form); err != nil {
		h.handleCandidateError(c, err)
		return
	}
	response.Redirect(c, "/confirm")
}

// Delete 删除候选（连同确认与出勤记录）
// POST /candidate/:id/delete
func (h *CandidateHandler) Delete(c *gin.Context) {
	if err := h.candidateSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleCandidateError(c, err)
		return
	}
	response.Redirect(c, "/admin")
}

func (h *CandidateHandler) handleCandidateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCandidateNotFound):
		response.NotFound(c, codeCandidateNotFound, "候補が見つかりません。")
	case errors.Is(err, service.ErrCandidateInvalid):
		response.BadRequest(c, codeCandidateInvalid, "会場または時間が選択肢にありません。")
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
