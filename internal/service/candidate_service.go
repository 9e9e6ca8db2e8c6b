package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/matsumurashin0125/event-app7/config"
	"github.com/matsumurashin0125/event-app7/internal/dto"
	"github.com/matsumurashin0125/event-app7/internal/model"
	"github.com/matsumurashin0125/event-app7/internal/repository"
)

// ── 候选模块业务错误 ──

var (
	ErrCandidateNotFound = errors.New("候选不存在")
	ErrCandidateInvalid  = errors.New("候选内容无效")
)

// CandidateService 候选（提案）业务接口
type CandidateService interface {
	// ProposalPage 提案页；selected 为空时使用默认选中值
	ProposalPage(ctx context.Context, selected *dto.CandidateForm) (*dto.CandidatePage, error)
	Create(ctx context.Context, form *dto.CandidateForm) (*dto.CandidateView, error)
	GetByID(ctx context.Context, id string) (*dto.CandidateView, error)
	List(ctx context.Context) ([]dto.CandidateView, error)
	EditPage(ctx context.Context, id string) (*dto.CandidateEditPage, error)
	Update(ctx context.Context, id string, form *dto.CandidateForm) (*dto.CandidateView, error)
	// Delete 连同确认与出勤记录一起删除（单事务）
	Delete(ctx context.Context, id string) error
}

type candidateService struct {
	repo   *repository.Repository
	club   *config.ClubConfig
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// NewCandidateService 创建 CandidateService 实例
func NewCandidateService(repo *repository.Repository, club *config.ClubConfig, loc *time.Location, logger *zap.Logger) CandidateService {
	return &candidateService{
		repo:   repo,
		club:   club,
		loc:    loc,
		now:    time.Now,
		logger: logger,
	}
}

// ────────────────────── ProposalPage ──────────────────────

func (s *candidateService) ProposalPage(ctx context.Context, selected *dto.CandidateForm) (*dto.CandidatePage, error) {
	times, err := s.club.TimeGrid()
	if err != nil {
		return nil, err
	}

	base := proposalBase(s.now().In(s.loc))
	page := &dto.CandidatePage{
		Years:  []int{base.Year(), base.Year() + 1},
		Months: intRange(1, 12),
		Days:   intRange(1, 31),
		Venues: s.club.Venues,
		Times:  times,
		Selected: dto.CandidateForm{
			Year:  base.Year(),
			Month: int(base.Month()),
			Day:   base.Day(),
			Gym:   s.club.Venues[0],
			Start: "18:00",
			End:   "19:00",
		},
	}
	if selected != nil && selected.Year > 0 {
		page.Selected = *selected
	}

	page.Candidates, err = s.List(ctx)
	if err != nil {
		return nil, err
	}
	return page, nil
}

// ────────────────────── Create ──────────────────────

func (s *candidateService) Create(ctx context.Context, form *dto.CandidateForm) (*dto.CandidateView, error) {
	if err := s.validate(form); err != nil {
		return nil, err
	}

	c := &model.Candidate{
		Year:  form.Year,
		Month: form.Month,
		Day:   form.Day,
		Gym:   form.Gym,
		Start: form.Start,
		End:   form.End,
	}
	if err := s.repo.Candidate.Create(ctx, c); err != nil {
		s.logger.Error("创建候选失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("候选已创建",
		zap.String("candidate_id", c.CandidateID),
		zap.String("gym", c.Gym),
		zap.String("date", fmt.Sprintf("%d-%02d-%02d", c.Year, c.Month, c.Day)),
	)

	view := toCandidateView(c, false)
	return &view, nil
}

// ────────────────────── GetByID / List ──────────────────────

func (s *candidateService) GetByID(ctx context.Context, id string) (*dto.CandidateView, error) {
	c, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	confirmed, err := s.isConfirmed(ctx, id)
	if err != nil {
		return nil, err
	}
	view := toCandidateView(c, confirmed)
	return &view, nil
}

func (s *candidateService) List(ctx context.Context) ([]dto.CandidateView, error) {
	candidates, err := s.repo.Candidate.List(ctx)
	if err != nil {
		s.logger.Error("列出候选失败", zap.Error(err))
		return nil, err
	}
	confirmations, err := s.repo.Confirmation.ListWithCandidate(ctx)
	if err != nil {
		s.logger.Error("列出确认记录失败", zap.Error(err))
		return nil, err
	}

	confirmedIDs := make(map[string]bool, len(confirmations))
	for _, conf := range confirmations {
		confirmedIDs[conf.CandidateID] = true
	}

	sortCandidates(candidates)
	result := make([]dto.CandidateView, 0, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		result = append(result, toCandidateView(c, confirmedIDs[c.CandidateID]))
	}
	return result, nil
}

// ────────────────────── EditPage / Update ──────────────────────

func (s *candidateService) EditPage(ctx context.Context, id string) (*dto.CandidateEditPage, error) {
	view, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	times, err := s.club.TimeGrid()
	if err != nil {
		return nil, err
	}

	years := []int{view.Year, view.Year + 1}
	if now := s.now().In(s.loc).Year(); now < view.Year {
		years = []int{now, view.Year, view.Year + 1}
	}

	return &dto.CandidateEditPage{
		Candidate: *view,
		Years:     years,
		Months:    intRange(1, 12),
		Days:      intRange(1, 31),
		Venues:    s.club.Venues,
		Times:     times,
	}, nil
}

func (s *candidateService) Update(ctx context.Context, id string, form *dto.CandidateForm) (*dto.CandidateView, error) {
	c, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(form); err != nil {
		return nil, err
	}

	c.Year = form.Year
	c.Month = form.Month
	c.Day = form.Day
	c.Gym = form.Gym
	c.Start = form.Start
	c.End = form.End

	if err := s.repo.Candidate.Update(ctx, c); err != nil {
		s.logger.Error("更新候选失败", zap.String("candidate_id", id), zap.Error(err))
		return nil, err
	}

	confirmed, err := s.isConfirmed(ctx, id)
	if err != nil {
		return nil, err
	}
	view := toCandidateView(c, confirmed)
	return &view, nil
}

// ────────────────────── Delete ──────────────────────

func (s *candidateService) Delete(ctx context.Context, id string) error {
	if !isRecordID(id) {
		return ErrCandidateNotFound
	}
	if err := s.repo.Candidate.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCandidateNotFound
		}
		s.logger.Error("删除候选失败", zap.String("candidate_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("候选已删除", zap.String("candidate_id", id))
	return nil
}

// ── 内部辅助方法 ──

func (s *candidateService) get(ctx context.Context, id string) (*model.Candidate, error) {
	if !isRecordID(id) {
		return nil, ErrCandidateNotFound
	}
	c, err := s.repo.Candidate.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCandidateNotFound
		}
		s.logger.Error("查询候选失败", zap.String("candidate_id", id), zap.Error(err))
		return nil, err
	}
	return c, nil
}

func (s *candidateService) isConfirmed(ctx context.Context, id string) (bool, error) {
	_, err := s.repo.Confirmation.GetByCandidate(ctx, id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return false, nil
	default:
		s.logger.Error("查询确认记录失败", zap.String("candidate_id", id), zap.Error(err))
		return false, err
	}
}

// validate 日期必须真实存在，场馆必须在枚举内，起止时间必须落在半小时刻度上
func (s *candidateService) validate(form *dto.CandidateForm) error {
	if !model.IsCalendarDate(form.Year, form.Month, form.Day) {
		return fmt.Errorf("%w: 日期 %d/%d/%d 不存在", ErrCandidateInvalid, form.Year, form.Month, form.Day)
	}
	if !s.club.HasVenue(form.Gym) {
		return fmt.Errorf("%w: 未知场馆 %q", ErrCandidateInvalid, form.Gym)
	}
	times, err := s.club.TimeGrid()
	if err != nil {
		return err
	}
	onGrid := func(v string) bool {
		for _, t := range times {
			if t == v {
				return true
			}
		}
		return false
	}
	if !onGrid(form.Start) || !onGrid(form.End) {
		return fmt.Errorf("%w: 时间 %s-%s 不在刻度上", ErrCandidateInvalid, form.Start, form.End)
	}
	return nil
}
