package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/matsumurashin0125/event-app7/internal/dto"
	"github.com/matsumurashin0125/event-app7/internal/repository"
)

// ConfirmationService 确认/取消确认业务接口
type ConfirmationService interface {
	// Overview 全部候选与已确认活动，均按日期排序
	Overview(ctx context.Context) (*dto.ConfirmPage, error)
	// Confirm 幂等：候选已有确认记录时不做任何事
	Confirm(ctx context.Context, candidateID string) error
	// Unconfirm 删除确认记录，其下的出勤记录保留；未确认时不做任何事
	Unconfirm(ctx context.Context, candidateID string) error
}

type confirmationService struct {
	repo       *repository.Repository
	candidates CandidateService
	logger     *zap.Logger
}

// NewConfirmationService 创建 ConfirmationService 实例
func NewConfirmationService(repo *repository.Repository, candidates CandidateService, logger *zap.Logger) ConfirmationService {
	return &confirmationService{repo: repo, candidates: candidates, logger: logger}
}

// ────────────────────── Overview ──────────────────────

func (s *confirmationService) Overview(ctx context.Context) (*dto.ConfirmPage, error) {
	candidates, err := s.candidates.List(ctx)
	if err != nil {
		return nil, err
	}

	confirmations, err := s.repo.Confirmation.ListWithCandidate(ctx)
	if err != nil {
		s.logger.Error("列出确认记录失败", zap.Error(err))
		return nil, err
	}
	sortConfirmations(confirmations)

	confirmed := make([]dto.ConfirmedView, 0, len(confirmations))
	for i := range confirmations {
		conf := &confirmations[i]
		if conf.Candidate == nil {
			continue
		}
		confirmed = append(confirmed, dto.ConfirmedView{
			ConfirmationID: conf.ConfirmationID,
			Candidate:      toCandidateView(conf.Candidate, true),
		})
	}

	return &dto.ConfirmPage{Candidates: candidates, Confirmed: confirmed}, nil
}

// ────────────────────── Confirm ──────────────────────

func (s *confirmationService) Confirm(ctx context.Context, candidateID string) error {
	if _, err := s.candidates.GetByID(ctx, candidateID); err != nil {
		return err
	}

	conf, created, err := s.repo.Confirmation.CreateIfAbsent(ctx, candidateID)
	if err != nil {
		s.logger.Error("确认候选失败", zap.String("candidate_id", candidateID), zap.Error(err))
		return err
	}
	if created {
		s.logger.Info("候选已确认",
			zap.String("candidate_id", candidateID),
			zap.String("confirmation_id", conf.ConfirmationID),
		)
	}
	return nil
}

// ────────────────────── Unconfirm ──────────────────────

func (s *confirmationService) Unconfirm(ctx context.Context, candidateID string) error {
	if !isRecordID(candidateID) {
		return nil
	}
	n, err := s.repo.Confirmation.DeleteByCandidate(ctx, candidateID)
	if err != nil {
		s.logger.Error("取消确认失败", zap.String("candidate_id", candidateID), zap.Error(err))
		return err
	}
	if n > 0 {
		s.logger.Info("已取消确认", zap.String("candidate_id", candidateID))
	}
	return nil
}
