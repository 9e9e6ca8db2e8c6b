package dto

// ── 出勤模块 DTO ──

// AttendanceForm 出勤登记/编辑表单
type AttendanceForm struct {
	Name   string `form:"name"   binding:"required"`
	Status string `form:"status" binding:"required"`
}

// AttendanceView 出勤记录展示
// CandidateID 为空表示所属确认已被取消
type AttendanceView struct {
	ID          string
	EventID     string
	CandidateID string
	Name        string
	Status      string
}

// EventPage 出勤登记页
type EventPage struct {
	Candidate      CandidateView
	ConfirmationID string
	Attendance     []AttendanceView
	Members        []string
	Statuses       []string
}

// RegisterPage 出勤登记入口：全部候选，Confirmed 标出已确认
type RegisterPage struct {
	Candidates []CandidateView
}

// AttendanceEditPage 出勤编辑页
type AttendanceEditPage struct {
	Attendance AttendanceView
	Members    []string
	Statuses   []string
}
