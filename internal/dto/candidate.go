package dto

// ── 候选模块 DTO ──

// CandidateForm 提交/编辑候选的表单
// 只校验字段存在与取值范围，日期是否真实存在不在此处检查
type CandidateForm struct {
	Year  int    `form:"year"  binding:"required,min=1"`
	Month int    `form:"month" binding:"required,min=1,max=12"`
	Day   int    `form:"day"   binding:"required,min=1,max=31"`
	Gym   string `form:"gym"   binding:"required"`
	Start string `form:"start" binding:"required"`
	End   string `form:"end"   binding:"required"`
}

// CandidateView 候选展示数据
type CandidateView struct {
	ID        string
	Year      int
	Month     int
	Day       int
	Gym       string
	Start     string
	End       string
	MonthDay  string // 如 4/10（木）
	Confirmed bool
}

// CandidatePage 候选提交页
type CandidatePage struct {
	Years      []int
	Months     []int
	Days       []int
	Venues     []string
	Times      []string
	Selected   CandidateForm
	Candidates []CandidateView
}

// CandidateEditPage 候选编辑页
type CandidateEditPage struct {
	Candidate CandidateView
	Years     []int
	Months    []int
	Days      []int
	Venues    []string
	Times     []string
}
