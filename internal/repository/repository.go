package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Candidate    CandidateRepository
	Confirmation ConfirmationRepository
	Attendance   AttendanceRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Candidate:    NewCandidateRepo(db),
		Confirmation: NewConfirmationRepo(db),
		Attendance:   NewAttendanceRepo(db),
	}
}
