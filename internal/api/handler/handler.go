package handler

import "github.com/matsumurashin0125/event-app7/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Page       *PageHandler
	Candidate  *CandidateHandler
	Confirm    *ConfirmHandler
	Attendance *AttendanceHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Page:       NewPageHandler(),
		Candidate:  NewCandidateHandler(svc.Candidate),
		Confirm:    NewConfirmHandler(svc.Confirmation),
		Attendance: NewAttendanceHandler(svc.Attendance),
		Export:     NewExportHandler(svc.Export),
	}
}

// 页面错误码
const (
	codeInvalidParam      = 10001
	codeCandidateNotFound = 20001
	codeCandidateInvalid  = 20002
	codeAttendanceMissing = 30001
	codeExportNoEvents    = 40001
)
