package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/matsumurashin0125/event-app7/internal/model"
	"github.com/matsumurashin0125/event-app7/internal/repository"
)

// ── 内存存储 ──
//
// 三个 mock repo 共用一个 store，以便模拟级联删除与孤立出勤记录。
// 切片保持写入顺序，对应真实仓库的 created_at ASC。

type mockStore struct {
	seq           int
	clock         time.Time
	candidates    []*model.Candidate
	confirmations []*model.Confirmation
	attendance    []*model.Attendance

	// 注入的错误，非 nil 时对应方法直接返回
	failCreateAttendance error
}

func newMockStore() *mockStore {
	return &mockStore{clock: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// nextID 生成 UUID 格式的主键，对应数据库的 gen_random_uuid()；
// 前缀编码进首段，便于失败输出中区分记录类型
func (s *mockStore) nextID(prefix string) string {
	s.seq++
	kind := map[string]int{"cand": 1, "conf": 2, "att": 3}[prefix]
	return fmt.Sprintf("%08x-0000-4000-8000-%012x", kind, s.seq)
}

func (s *mockStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *mockStore) findCandidate(id string) *model.Candidate {
	for _, c := range s.candidates {
		if c.CandidateID == id {
			return c
		}
	}
	return nil
}

// newMockRepository 组装 repository 聚合
func newMockRepository(s *mockStore) *repository.Repository {
	return &repository.Repository{
		Candidate:    &mockCandidateRepo{s: s},
		Confirmation: &mockConfirmationRepo{s: s},
		Attendance:   &mockAttendanceRepo{s: s},
	}
}

// ── Mock CandidateRepository ──

type mockCandidateRepo struct {
	s *mockStore
}

func (m *mockCandidateRepo) Create(_ context.Context, c *model.Candidate) error {
	if c.CandidateID == "" {
		c.CandidateID = m.s.nextID("cand")
	}
	c.CreatedAt = m.s.tick()
	cp := *c
	m.s.candidates = append(m.s.candidates, &cp)
	return nil
}

func (m *mockCandidateRepo) GetByID(_ context.Context, id string) (*model.Candidate, error) {
	if c := m.s.findCandidate(id); c != nil {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCandidateRepo) List(_ context.Context) ([]model.Candidate, error) {
	result := make([]model.Candidate, 0, len(m.s.candidates))
	for _, c := range m.s.candidates {
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockCandidateRepo) Update(_ context.Context, c *model.Candidate) error {
	existing := m.s.findCandidate(c.CandidateID)
	if existing == nil {
		return gorm.ErrRecordNotFound
	}
	created := existing.CreatedAt
	*existing = *c
	existing.CreatedAt = created
	return nil
}

func (m *mockCandidateRepo) DeleteCascade(_ context.Context, id string) error {
	if m.s.findCandidate(id) == nil {
		return gorm.ErrRecordNotFound
	}

	eventIDs := make(map[string]bool)
	var confs []*model.Confirmation
	for _, conf := range m.s.confirmations {
		if conf.CandidateID == id {
			eventIDs[conf.ConfirmationID] = true
			continue
		}
		confs = append(confs, conf)
	}

	var rows []*model.Attendance
	for _, a := range m.s.attendance {
		if !eventIDs[a.EventID] {
			rows = append(rows, a)
		}
	}

	var cands []*model.Candidate
	for _, c := range m.s.candidates {
		if c.CandidateID != id {
			cands = append(cands, c)
		}
	}

	m.s.attendance = rows
	m.s.confirmations = confs
	m.s.candidates = cands
	return nil
}

// ── Mock ConfirmationRepository ──

type mockConfirmationRepo struct {
	s *mockStore
}

func (m *mockConfirmationRepo) CreateIfAbsent(_ context.Context, candidateID string) (*model.Confirmation, bool, error) {
	for _, conf := range m.s.confirmations {
		if conf.CandidateID == candidateID {
			cp := *conf
			return &cp, false, nil
		}
	}
	conf := &model.Confirmation{
		ConfirmationID: m.s.nextID("conf"),
		CandidateID:    candidateID,
	}
	conf.CreatedAt = m.s.tick()
	m.s.confirmations = append(m.s.confirmations, conf)
	cp := *conf
	return &cp, true, nil
}

func (m *mockConfirmationRepo) GetByID(_ context.Context, id string) (*model.Confirmation, error) {
	for _, conf := range m.s.confirmations {
		if conf.ConfirmationID == id {
			cp := *conf
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockConfirmationRepo) GetByCandidate(_ context.Context, candidateID string) (*model.Confirmation, error) {
	for _, conf := range m.s.confirmations {
		if conf.CandidateID == candidateID {
			cp := *conf
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockConfirmationRepo) ListWithCandidate(_ context.Context) ([]model.Confirmation, error) {
	result := make([]model.Confirmation, 0, len(m.s.confirmations))
	for _, conf := range m.s.confirmations {
		cp := *conf
		if c := m.s.findCandidate(conf.CandidateID); c != nil {
			cc := *c
			cp.Candidate = &cc
		}
		result = append(result, cp)
	}
	return result, nil
}

func (m *mockConfirmationRepo) DeleteByCandidate(_ context.Context, candidateID string) (int64, error) {
	var kept []*model.Confirmation
	var n int64
	for _, conf := range m.s.confirmations {
		if conf.CandidateID == candidateID {
			n++
			continue
		}
		kept = append(kept, conf)
	}
	m.s.confirmations = kept
	return n, nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	s *mockStore
}

func (m *mockAttendanceRepo) Create(_ context.Context, a *model.Attendance) error {
	if m.s.failCreateAttendance != nil {
		return m.s.failCreateAttendance
	}
	if a.AttendanceID == "" {
		a.AttendanceID = m.s.nextID("att")
	}
	a.CreatedAt = m.s.tick()
	cp := *a
	m.s.attendance = append(m.s.attendance, &cp)
	return nil
}

func (m *mockAttendanceRepo) GetByID(_ context.Context, id string) (*model.Attendance, error) {
	for _, a := range m.s.attendance {
		if a.AttendanceID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) ListByEvent(_ context.Context, eventID string) ([]model.Attendance, error) {
	var result []model.Attendance
	for _, a := range m.s.attendance {
		if a.EventID == eventID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) ListByEvents(_ context.Context, eventIDs []string) ([]model.Attendance, error) {
	want := make(map[string]bool, len(eventIDs))
	for _, id := range eventIDs {
		want[id] = true
	}
	var result []model.Attendance
	for _, a := range m.s.attendance {
		if want[a.EventID] {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) Update(_ context.Context, a *model.Attendance) error {
	for _, existing := range m.s.attendance {
		if existing.AttendanceID == a.AttendanceID {
			existing.Name = a.Name
			existing.Status = a.Status
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) Delete(_ context.Context, id string) error {
	for i, a := range m.s.attendance {
		if a.AttendanceID == id {
			m.s.attendance = append(m.s.attendance[:i], m.s.attendance[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Mock NotificationService ──

type notifyCall struct {
	slot Slot
	name string
}

type mockNotifier struct {
	calls []notifyCall
	err   error
}

func (m *mockNotifier) Notify(_ context.Context, slot Slot, name string) error {
	m.calls = append(m.calls, notifyCall{slot: slot, name: name})
	return m.err
}

var errMockTransport = errors.New("mock transport failure")
