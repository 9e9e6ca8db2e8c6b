package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/matsumurashin0125/event-app7/internal/model"
)

// ConfirmationRepository 确认记录数据访问接口
type ConfirmationRepository interface {
	// CreateIfAbsent 依赖 candidate_id 唯一约束插入；已存在时返回现有记录且 created=false
	CreateIfAbsent(ctx context.Context, candidateID string) (conf *model.Confirmation, created bool, err error)
	GetByID(ctx context.Context, id string) (*model.Confirmation, error)
	GetByCandidate(ctx context.Context, candidateID string) (*model.Confirmation, error)
	// ListWithCandidate 按写入顺序返回全部确认记录并预加载候选
	ListWithCandidate(ctx context.Context) ([]model.Confirmation, error)
	// DeleteByCandidate 删除确认记录，出勤记录不动；返回删除行数
	DeleteByCandidate(ctx context.Context, candidateID string) (int64, error)
}

type confirmationRepo struct {
	db *gorm.DB
}

// NewConfirmationRepo 创建 ConfirmationRepository 实例
func NewConfirmationRepo(db *gorm.DB) ConfirmationRepository {
	return &confirmationRepo{db: db}
}

func (r *confirmationRepo) CreateIfAbsent(ctx context.Context, candidateID string) (*model.Confirmation, bool, error) {
	conf := &model.Confirmation{CandidateID: candidateID}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "candidate_id"}},
			DoNothing: true,
		}).
		Create(conf)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected > 0 {
		return conf, true, nil
	}

	existing, err := r.GetByCandidate(ctx, candidateID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *confirmationRepo) GetByID(ctx context.Context, id string) (*model.Confirmation, error) {
	var conf model.Confirmation
	err := r.db.WithContext(ctx).
		Where("confirmation_id = ?", id).
		First(&conf).Error
	if err != nil {
		return nil, err
	}
	return &conf, nil
}

func (r *confirmationRepo) GetByCandidate(ctx context.Context, candidateID string) (*model.Confirmation, error) {
	var conf model.Confirmation
	err := r.db.WithContext(ctx).
		Where("candidate_id = ?", candidateID).
		First(&conf).Error
	if err != nil {
		return nil, err
	}
	return &conf, nil
}

func (r *confirmationRepo) ListWithCandidate(ctx context.Context) ([]model.Confirmation, error) {
	var list []model.Confirmation
	err := r.db.WithContext(ctx).
		Preload("Candidate").
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *confirmationRepo) DeleteByCandidate(ctx context.Context, candidateID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("candidate_id = ?", candidateID).
		Delete(&model.Confirmation{})
	return result.RowsAffected, result.Error
}
