package dto

// ── 确认模块 DTO ──

// ConfirmForm 确认候选的表单
type ConfirmForm struct {
	CandidateID string `form:"candidate_id" binding:"required"`
}

// ConfirmedView 已确认活动
type ConfirmedView struct {
	ConfirmationID string
	Candidate      CandidateView
}

// ConfirmPage 确认页：全部候选 + 已确认列表，均按日期排序
type ConfirmPage struct {
	Candidates []CandidateView
	Confirmed  []ConfirmedView
}
