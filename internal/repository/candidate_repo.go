package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/matsumurashin0125/event-app7/internal/model"
)

// CandidateRepository 候选数据访问接口
type CandidateRepository interface {
	Create(ctx context.Context, c *model.Candidate) error
	GetByID(ctx context.Context, id string) (*model.Candidate, error)
	// List 按写入顺序返回全部候选，排序规则由 Service 负责
	List(ctx context.Context) ([]model.Candidate, error)
	Update(ctx context.Context, c *model.Candidate) error
	// DeleteCascade 在同一事务内删除候选及其确认、出勤记录
	DeleteCascade(ctx context.Context, id string) error
}

type candidateRepo struct {
	db *gorm.DB
}

// NewCandidateRepo 创建 CandidateRepository 实例
func NewCandidateRepo(db *gorm.DB) CandidateRepository {
	return &candidateRepo{db: db}
}

func (r *candidateRepo) Create(ctx context.Context, c *model.Candidate) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *candidateRepo) GetByID(ctx context.Context, id string) (*model.Candidate, error) {
	var c model.Candidate
	err := r.db.WithContext(ctx).
		Where("candidate_id = ?", id).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *candidateRepo) List(ctx context.Context) ([]model.Candidate, error) {
	var list []model.Candidate
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *candidateRepo) Update(ctx context.Context, c *model.Candidate) error {
	return r.db.WithContext(ctx).
		Model(&model.Candidate{}).
		Where("candidate_id = ?", c.CandidateID).
		Updates(map[string]interface{}{
			"year":  c.Year,
			"month": c.Month,
			"day":   c.Day,
			"gym":   c.Gym,
			"start": c.Start,
			"end":   c.End,
		}).Error
}

func (r *candidateRepo) DeleteCascade(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		confirmationIDs := tx.Model(&model.Confirmation{}).
			Select("confirmation_id").
			Where("candidate_id = ?", id)

		if err := tx.Where("event_id IN (?)", confirmationIDs).
			Delete(&model.Attendance{}).Error; err != nil {
			return err
		}
		if err := tx.Where("candidate_id = ?", id).
			Delete(&model.Confirmation{}).Error; err != nil {
			return err
		}

		result := tx.Where("candidate_id = ?", id).Delete(&model.Candidate{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
