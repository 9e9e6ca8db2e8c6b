package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/matsumurashin0125/event-app7/internal/model"
)

// AttendanceRepository 出勤记录数据访问接口
type AttendanceRepository interface {
	Create(ctx context.Context, a *model.Attendance) error
	GetByID(ctx context.Context, id string) (*model.Attendance, error)
	ListByEvent(ctx context.Context, eventID string) ([]model.Attendance, error)
	ListByEvents(ctx context.Context, eventIDs []string) ([]model.Attendance, error)
	Update(ctx context.Context, a *model.Attendance) error
	Delete(ctx context.Context, id string) error
}

type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo 创建 AttendanceRepository 实例
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) Create(ctx context.Context, a *model.Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *attendanceRepo) GetByID(ctx context.Context, id string) (*model.Attendance, error) {
	var a model.Attendance
	err := r.db.WithContext(ctx).
		Where("attendance_id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *attendanceRepo) ListByEvent(ctx context.Context, eventID string) ([]model.Attendance, error) {
	var list []model.Attendance
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *attendanceRepo) ListByEvents(ctx context.Context, eventIDs []string) ([]model.Attendance, error) {
	var list []model.Attendance
	if len(eventIDs) == 0 {
		return list, nil
	}
	err := r.db.WithContext(ctx).
		Where("event_id IN ?", eventIDs).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *attendanceRepo) Update(ctx context.Context, a *model.Attendance) error {
	return r.db.WithContext(ctx).
		Model(&model.Attendance{}).
		Where("attendance_id = ?", a.AttendanceID).
		Updates(map[string]interface{}{
			"name":   a.Name,
			"status": a.Status,
		}).Error
}

func (r *attendanceRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("attendance_id = ?", id).
		Delete(&model.Attendance{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
