package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matsumurashin0125/event-app7/internal/dto"
	"github.com/matsumurashin0125/event-app7/internal/service"
	"github.com/matsumurashin0125/event-app7/pkg/response"
)

// AttendanceHandler 出勤模块 HTTP 处理器
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// List 可登记的练习列表
// GET /register
func (h *AttendanceHandler) List(c *gin.Context) {
	page, err := h.attendanceSvc.RegisterPage(c.Request.Context())
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}
	c.HTML(http.StatusOK, "register_select.html", page)
}

// Event 单个练习的登记页
// GET /register/event/:id
func (h *AttendanceHandler) Event(c *gin.Context) {
	page, err := h.attendanceSvc.OpenEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}
	c.HTML(http.StatusOK, "register_form.html", page)
}

// Register 登记出勤
// POST /register/event/:id
func (h *AttendanceHandler) Register(c *gin.Context) {
	var form dto.AttendanceForm
	if err := c.ShouldBind(&form); err != nil {
		response.BadRequest(c, codeInvalidParam, "名前と出欠を選択してください。")
		return
	}

	if _, err := h.attendanceSvc.Register(c.Request.Context(), c.Param("id"), &form); err != nil {
		h.handleAttendanceError(c, err)
		return
	}
	response.Redirect(c, "/register")
}

// EditForm 出勤编辑页
// GET /attendance/:id/edit
func (h *AttendanceHandler) EditForm(c *gin.Context) {
	page, err := h.attendanceSvc.EditPage(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}
	c.HTML(http.StatusOK, "attendance_edit.html", page)
}

// Update 更新出勤
// POST /attendance/:id/edit
func (h *AttendanceHandler) Update(c *gin.Context) {
	var form dto.AttendanceForm
	if err := c.ShouldBind(&form); err != nil {
		response.BadRequest(c, codeInvalidParam, "名前と出欠を選択してください。")
		return
	}

	view, err := h.attendanceSvc.Update(c.Request.Context(), c.Param("id"), &form)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}
	response.Redirect(c, eventLocation(view.CandidateID))
}

// Delete 删除出勤
// POST /attendance/:id/delete
func (h *AttendanceHandler) Delete(c *gin.Context) {
	candidateID, err := h.attendanceSvc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}
	response.Redirect(c, eventLocation(candidateID))
}

// eventLocation 返回登记页地址；确认已取消的记录退回列表
func eventLocation(candidateID string) string {
	if candidateID == "" {
		return "/register"
	}
	return "/register/event/" + candidateID
}

func (h *AttendanceHandler) handleAttendanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCandidateNotFound):
		response.NotFound(c, codeCandidateNotFound, "候補が見つかりません。")
	case errors.Is(err, service.ErrAttendanceNotFound):
		response.NotFound(c, codeAttendanceMissing, "出欠記録が見つかりません。")
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
