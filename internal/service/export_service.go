package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/matsumurashin0125/event-app7/internal/model"
	"github.com/matsumurashin0125/event-app7/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoEvents     = errors.New("暂无已确认的练习")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

const rosterSheet = "出欠一覧"

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置响应头后写出。
type ExportService interface {
	// ExportRoster 已确认练习的出欠表：每条出勤记录一行，无人登记的练习占一行
	ExportRoster(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, loc: loc, now: time.Now, logger: logger}
}

// rosterRow 表格中的一行
type rosterRow struct {
	date   string
	gym    string
	period string
	name   string
	status string
}

// ═══════════════════════════════════════════════════════════
// ExportRoster 导出出欠表
// ═══════════════════════════════════════════════════════════
//
// 表头: | 日付 | 会場 | 時間 | 名前 | 出欠 |
// 行按练习日期排序，同一练习内按登记顺序。

func (s *exportService) ExportRoster(ctx context.Context) (*bytes.Buffer, string, error) {
	// 1. 已确认练习（按日期）
	confirmations, err := s.repo.Confirmation.ListWithCandidate(ctx)
	if err != nil {
		s.logger.Error("列出确认记录失败", zap.Error(err))
		return nil, "", err
	}
	sortConfirmations(confirmations)

	eventIDs := make([]string, 0, len(confirmations))
	for _, conf := range confirmations {
		if conf.Candidate != nil {
			eventIDs = append(eventIDs, conf.ConfirmationID)
		}
	}
	if len(eventIDs) == 0 {
		return nil, "", ErrExportNoEvents
	}

	// 2. 一次取出全部出勤记录并按练习分组
	attendance, err := s.repo.Attendance.ListByEvents(ctx, eventIDs)
	if err != nil {
		s.logger.Error("列出出勤记录失败", zap.Error(err))
		return nil, "", err
	}
	byEvent := make(map[string][]model.Attendance, len(eventIDs))
	for _, a := range attendance {
		byEvent[a.EventID] = append(byEvent[a.EventID], a)
	}

	// 3. 展开为表格行
	var rows []rosterRow
	for _, conf := range confirmations {
		c := conf.Candidate
		if c == nil {
			continue
		}
		base := rosterRow{
			date:   fmt.Sprintf("%d/%s", c.Year, MonthDayLabel(c)),
			gym:    c.Gym,
			period: fmt.Sprintf("%s-%s", c.Start, c.End),
			name:   "-",
			status: "-",
		}
		list := byEvent[conf.ConfirmationID]
		if len(list) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, a := range list {
			r := base
			r.name = a.Name
			r.status = a.Status
			rows = append(rows, r)
		}
	}

	// 4. 生成 Excel
	buf, err := writeRoster(rows)
	if err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("出欠一覧_%s.xlsx", s.now().In(s.loc).Format("20060102"))
	return buf, filename, nil
}

func writeRoster(rows []rosterRow) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(rosterSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	f.SetColWidth(rosterSheet, "A", "A", 16)
	f.SetColWidth(rosterSheet, "B", "B", 12)
	f.SetColWidth(rosterSheet, "C", "C", 14)
	f.SetColWidth(rosterSheet, "D", "E", 10)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	header := []interface{}{"日付", "会場", "時間", "名前", "出欠"}
	if err := f.SetSheetRow(rosterSheet, "A1", &header); err != nil {
		return nil, err
	}
	f.SetCellStyle(rosterSheet, "A1", "E1", headerStyle)

	for i, r := range rows {
		line := []interface{}{r.date, r.gym, r.period, r.name, r.status}
		if err := f.SetSheetRow(rosterSheet, cell("A", i+2), &line); err != nil {
			return nil, err
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ── 辅助函数 ──

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
