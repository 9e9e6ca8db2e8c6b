package model

// 出勤状态（自由文本，页面上只提供这两个值）
const (
	StatusAttending    = "参加"
	StatusNotAttending = "不参加"
)

// Attendance 出勤登记，对应 attendance
// EventID 指向 confirmed.confirmation_id，但不建外键：取消确认后记录保留
type Attendance struct {
	AttendanceID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"attendance_id"`
	EventID      string `gorm:"type:uuid;not null;index:idx_attendance_event"  json:"event_id"`
	Name         string `gorm:"type:varchar(255);not null"                     json:"name"`
	Status       string `gorm:"type:varchar(50);not null"                      json:"status"`
	BaseModel
}

// TableName 指定表名
func (Attendance) TableName() string { return "attendance" }

// IsAttending 是否为"参加"
func (a *Attendance) IsAttending() bool {
	return a.Status == StatusAttending
}
