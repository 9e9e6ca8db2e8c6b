package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/matsumurashin0125/event-app7/internal/dto"
	"github.com/matsumurashin0125/event-app7/internal/model"
	"github.com/matsumurashin0125/event-app7/internal/repository"
)

// ── 出勤模块业务错误 ──

var ErrAttendanceNotFound = errors.New("出勤记录不存在")

// AttendanceService 出勤登记业务接口
type AttendanceService interface {
	// RegisterPage 全部候选，按日期排序并标出是否已确认；未确认的候选在打开时补建确认记录
	RegisterPage(ctx context.Context) (*dto.RegisterPage, error)
	// OpenEvent 打开某候选的登记页；候选尚未确认时在此补建确认记录
	OpenEvent(ctx context.Context, candidateID string) (*dto.EventPage, error)
	// Register 写入出勤记录；状态为"参加"时在提交后发送一次邀请邮件
	Register(ctx context.Context, candidateID string, form *dto.AttendanceForm) (*dto.AttendanceView, error)
	EditPage(ctx context.Context, id string) (*dto.AttendanceEditPage, error)
	// Update 返回值中的 CandidateID 用于跳转，确认已取消时为空
	Update(ctx context.Context, id string, form *dto.AttendanceForm) (*dto.AttendanceView, error)
	// Delete 返回所属候选 ID，确认已取消时为空
	Delete(ctx context.Context, id string) (string, error)
}

type attendanceService struct {
	repo       *repository.Repository
	candidates CandidateService
	notifier   NotificationService
	members    []string
	logger     *zap.Logger
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(
	repo *repository.Repository,
	candidates CandidateService,
	notifier NotificationService,
	members []string,
	logger *zap.Logger,
) AttendanceService {
	return &attendanceService{
		repo:       repo,
		candidates: candidates,
		notifier:   notifier,
		members:    members,
		logger:     logger,
	}
}

var attendanceStatuses = []string{model.StatusAttending, model.StatusNotAttending}

// ────────────────────── RegisterPage ──────────────────────

func (s *attendanceService) RegisterPage(ctx context.Context) (*dto.RegisterPage, error) {
	candidates, err := s.candidates.List(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.RegisterPage{Candidates: candidates}, nil
}

// ────────────────────── OpenEvent ──────────────────────

func (s *attendanceService) OpenEvent(ctx context.Context, candidateID string) (*dto.EventPage, error) {
	c, conf, err := s.openEvent(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.Attendance.ListByEvent(ctx, conf.ConfirmationID)
	if err != nil {
		s.logger.Error("列出出勤记录失败", zap.String("confirmation_id", conf.ConfirmationID), zap.Error(err))
		return nil, err
	}

	page := &dto.EventPage{
		Candidate:      toCandidateView(c, true),
		ConfirmationID: conf.ConfirmationID,
		Attendance:     make([]dto.AttendanceView, 0, len(rows)),
		Members:        s.members,
		Statuses:       attendanceStatuses,
	}
	for i := range rows {
		page.Attendance = append(page.Attendance, toAttendanceView(&rows[i], c.CandidateID))
	}
	return page, nil
}

// ────────────────────── Register ──────────────────────

func (s *attendanceService) Register(ctx context.Context, candidateID string, form *dto.AttendanceForm) (*dto.AttendanceView, error) {
	c, conf, err := s.openEvent(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	a := &model.Attendance{
		EventID: conf.ConfirmationID,
		Name:    form.Name,
		Status:  form.Status,
	}
	if err := s.repo.Attendance.Create(ctx, a); err != nil {
		s.logger.Error("写入出勤记录失败", zap.String("candidate_id", candidateID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("出勤已登记",
		zap.String("attendance_id", a.AttendanceID),
		zap.String("candidate_id", candidateID),
		zap.String("name", a.Name),
		zap.String("status", a.Status),
	)

	// 记录已提交；通知失败只记日志，不回滚也不影响响应
	if a.IsAttending() {
		if err := s.notifier.Notify(ctx, SlotFromCandidate(c), a.Name); err != nil {
			s.logger.Warn("出勤已登记但邀请邮件未送达",
				zap.String("attendance_id", a.AttendanceID),
				zap.Error(err),
			)
		}
	}

	view := toAttendanceView(a, c.CandidateID)
	return &view, nil
}

// ────────────────────── EditPage / Update / Delete ──────────────────────

func (s *attendanceService) EditPage(ctx context.Context, id string) (*dto.AttendanceEditPage, error) {
	a, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	candidateID, err := s.owningCandidate(ctx, a.EventID)
	if err != nil {
		return nil, err
	}
	return &dto.AttendanceEditPage{
		Attendance: toAttendanceView(a, candidateID),
		Members:    s.members,
		Statuses:   attendanceStatuses,
	}, nil
}

func (s *attendanceService) Update(ctx context.Context, id string, form *dto.AttendanceForm) (*dto.AttendanceView, error) {
	a, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	a.Name = form.Name
	a.Status = form.Status
	if err := s.repo.Attendance.Update(ctx, a); err != nil {
		s.logger.Error("更新出勤记录失败", zap.String("attendance_id", id), zap.Error(err))
		return nil, err
	}

	candidateID, err := s.owningCandidate(ctx, a.EventID)
	if err != nil {
		return nil, err
	}
	view := toAttendanceView(a, candidateID)
	return &view, nil
}

func (s *attendanceService) Delete(ctx context.Context, id string) (string, error) {
	a, err := s.get(ctx, id)
	if err != nil {
		return "", err
	}
	candidateID, err := s.owningCandidate(ctx, a.EventID)
	if err != nil {
		return "", err
	}

	if err := s.repo.Attendance.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrAttendanceNotFound
		}
		s.logger.Error("删除出勤记录失败", zap.String("attendance_id", id), zap.Error(err))
		return "", err
	}

	s.logger.Info("出勤记录已删除", zap.String("attendance_id", id))
	return candidateID, nil
}

// ── 内部辅助方法 ──

// openEvent 校验候选存在并取得（必要时创建）其确认记录
func (s *attendanceService) openEvent(ctx context.Context, candidateID string) (*model.Candidate, *model.Confirmation, error) {
	if !isRecordID(candidateID) {
		return nil, nil, ErrCandidateNotFound
	}
	c, err := s.repo.Candidate.GetByID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrCandidateNotFound
		}
		s.logger.Error("查询候选失败", zap.String("candidate_id", candidateID), zap.Error(err))
		return nil, nil, err
	}

	conf, created, err := s.repo.Confirmation.CreateIfAbsent(ctx, candidateID)
	if err != nil {
		s.logger.Error("创建确认记录失败", zap.String("candidate_id", candidateID), zap.Error(err))
		return nil, nil, err
	}
	if created {
		s.logger.Info("打开登记页时补建确认记录",
			zap.String("candidate_id", candidateID),
			zap.String("confirmation_id", conf.ConfirmationID),
		)
	}
	return c, conf, nil
}

func (s *attendanceService) get(ctx context.Context, id string) (*model.Attendance, error) {
	if !isRecordID(id) {
		return nil, ErrAttendanceNotFound
	}
	a, err := s.repo.Attendance.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttendanceNotFound
		}
		s.logger.Error("查询出勤记录失败", zap.String("attendance_id", id), zap.Error(err))
		return nil, err
	}
	return a, nil
}

// owningCandidate 出勤记录所属候选；确认已取消时返回空串
func (s *attendanceService) owningCandidate(ctx context.Context, eventID string) (string, error) {
	conf, err := s.repo.Confirmation.GetByID(ctx, eventID)
	switch {
	case err == nil:
		return conf.CandidateID, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return "", nil
	default:
		s.logger.Error("查询确认记录失败", zap.String("confirmation_id", eventID), zap.Error(err))
		return "", err
	}
}

func toAttendanceView(a *model.Attendance, candidateID string) dto.AttendanceView {
	return dto.AttendanceView{
		ID:          a.AttendanceID,
		EventID:     a.EventID,
		CandidateID: candidateID,
		Name:        a.Name,
		Status:      a.Status,
	}
}
