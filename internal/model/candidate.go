package model

import "time"

// Candidate 练习候选时段，对应 candidates
// 日期三元组不在实体层校验；相同内容的候选允许重复
type Candidate struct {
	CandidateID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"candidate_id"`
	Year        int    `gorm:"not null"                                       json:"year"`
	Month       int    `gorm:"not null"                                       json:"month"`
	Day         int    `gorm:"not null"                                       json:"day"`
	Gym         string `gorm:"type:varchar(255)"                              json:"gym"`
	Start       string `gorm:"column:start;type:varchar(50)"                  json:"start"`
	End         string `gorm:"column:end;type:varchar(50)"                    json:"end"`
	BaseModel
}

// TableName 指定表名
func (Candidate) TableName() string { return "candidates" }

// IsCalendarDate 年月日能否构成真实日期（如 2025/2/30 不能）；time.Date 会把越界日期顺延，顺延后与输入不一致即非法
func IsCalendarDate(year, month, day int) bool {
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return d.Year() == year && int(d.Month()) == month && d.Day() == day
}

// Less 列表排序：年、月、日、开始时间升序
func (c *Candidate) Less(o *Candidate) bool {
	if c.Year != o.Year {
		return c.Year < o.Year
	}
	if c.Month != o.Month {
		return c.Month < o.Month
	}
	if c.Day != o.Day {
		return c.Day < o.Day
	}
	return c.Start < o.Start
}
