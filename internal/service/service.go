package service

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/matsumurashin0125/event-app7/config"
	"github.com/matsumurashin0125/event-app7/internal/repository"
	"github.com/matsumurashin0125/event-app7/pkg/mailer"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Candidate    CandidateService
	Confirmation ConfirmationService
	Attendance   AttendanceService
	Export       ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	transport mailer.Transport,
	logger *zap.Logger,
) *Service {
	loc := cfg.Location()

	builder := NewInviteBuilder(loc, cfg.Club.InviteDomain)
	notifier := NewNotificationService(builder, cfg.Directory(), transport, cfg.Mail.From(), cfg.Mail.Timeout, logger)
	candidates := NewCandidateService(repo, &cfg.Club, loc, logger)

	return &Service{
		Candidate:    candidates,
		Confirmation: NewConfirmationService(repo, candidates, logger),
		Attendance:   NewAttendanceService(repo, candidates, notifier, cfg.Club.MemberNames(), logger),
		Export:       NewExportService(repo, loc, logger),
	}
}

// isRecordID 主键均为 UUID；格式不符的 ID 不会命中任何记录，直接按不存在处理
func isRecordID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
