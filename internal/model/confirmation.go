package model

// Confirmation 确认记录，对应 confirmed
// candidate_id 上有唯一约束，一个候选至多一条
type Confirmation struct {
	ConfirmationID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"confirmation_id"`
	CandidateID    string `gorm:"type:uuid;not null;uniqueIndex:uq_confirmed_candidate" json:"candidate_id"`
	BaseModel

	// 关联
	Candidate *Candidate `gorm:"foreignKey:CandidateID;references:CandidateID" json:"candidate,omitempty"`
}

// TableName 指定表名
func (Confirmation) TableName() string { return "confirmed" }
