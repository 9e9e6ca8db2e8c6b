package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/matsumurashin0125/event-app7/internal/dto"
	"github.com/matsumurashin0125/event-app7/internal/model"
)

// ── 日期展示与排序辅助 ──

// weekdayLabels 星期显示表，下标 0=周一 … 6=周日
var weekdayLabels = [7]string{"月", "火", "水", "木", "金", "土", "日"}

// weekdayUnknown 日期不存在时的星期占位
const weekdayUnknown = "?"

// WeekdayLabel 按公历计算星期并返回显示字符；不存在的日期返回占位符
func WeekdayLabel(year, month, day int) string {
	if !model.IsCalendarDate(year, month, day) {
		return weekdayUnknown
	}
	wd := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Weekday()
	// time.Weekday 以周日为 0，转为周一为 0
	return weekdayLabels[(int(wd)+6)%7]
}

// MonthDayLabel 形如 4/10（木）
func MonthDayLabel(c *model.Candidate) string {
	return fmt.Sprintf("%d/%d（%s）", c.Month, c.Day, WeekdayLabel(c.Year, c.Month, c.Day))
}

// sortCandidates 按 (年, 月, 日, 开始时间) 升序稳定排序，相同键保持存储顺序
func sortCandidates(list []model.Candidate) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Less(&list[j])
	})
}

// sortConfirmations 按所属候选的日期稳定排序；候选缺失的记录排在最后
func sortConfirmations(list []model.Confirmation) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i].Candidate, list[j].Candidate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return a.Less(b)
	})
}

func toCandidateView(c *model.Candidate, confirmed bool) dto.CandidateView {
	return dto.CandidateView{
		ID:        c.CandidateID,
		Year:      c.Year,
		Month:     c.Month,
		Day:       c.Day,
		Gym:       c.Gym,
		Start:     c.Start,
		End:       c.End,
		MonthDay:  MonthDayLabel(c),
		Confirmed: confirmed,
	}
}

// proposalBase 提案页默认日期：约三个月后的那个月 1 日
func proposalBase(now time.Time) time.Time {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	ahead := first.AddDate(0, 0, 92)
	return time.Date(ahead.Year(), ahead.Month(), 1, 0, 0, 0, 0, now.Location())
}

func intRange(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}
