package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/matsumurashin0125/event-app7/config"
	"github.com/matsumurashin0125/event-app7/internal/dto"
)

// testWorkflow 一组共用同一内存存储的 Service
type testWorkflow struct {
	store        *mockStore
	notifier     *mockNotifier
	candidate    CandidateService
	confirmation ConfirmationService
	attendance   AttendanceService
	export       ExportService
}

func testClub() *config.ClubConfig {
	return &config.ClubConfig{
		TimeZone:  "Asia/Tokyo",
		Venues:    config.DefaultVenues,
		FirstSlot: "18:00",
		LastSlot:  "22:00",
	}
}

func setupTestWorkflow(t *testing.T) *testWorkflow {
	t.Helper()
	store := newMockStore()
	repo := newMockRepository(store)
	logger := zap.NewNop()
	loc := tokyo(t)
	club := testClub()

	notifier := &mockNotifier{}
	candidates := NewCandidateService(repo, club, loc, logger)
	candidates.(*candidateService).now = func() time.Time {
		return time.Date(2025, 1, 15, 12, 0, 0, 0, loc)
	}

	export := NewExportService(repo, loc, logger)
	export.(*exportService).now = func() time.Time {
		return time.Date(2025, 4, 1, 9, 0, 0, 0, loc)
	}

	return &testWorkflow{
		store:        store,
		notifier:     notifier,
		candidate:    candidates,
		confirmation: NewConfirmationService(repo, candidates, logger),
		attendance:   NewAttendanceService(repo, candidates, notifier, club.MemberNames(), logger),
		export:       export,
	}
}

func (w *testWorkflow) propose(t *testing.T, year, month, day int, gym, start, end string) *dto.CandidateView {
	t.Helper()
	view, err := w.candidate.Create(context.Background(), &dto.CandidateForm{
		Year: year, Month: month, Day: day, Gym: gym, Start: start, End: end,
	})
	if err != nil {
		t.Fatalf("创建候选失败: %v", err)
	}
	return view
}
