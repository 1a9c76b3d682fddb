package models

// Subject is a named topic a user studies
type Subject struct {
	SubjectID   string    `gorm:"column:subject_id;primaryKey" json:"subject_id"`
	SubjectName string    `gorm:"column:subject_name" json:"subject_name"`
	AddedTime   Timestamp `gorm:"column:added_time" json:"added_time"`
	UpdatedTime Timestamp `gorm:"column:updated_time" json:"updated_time"`
}

// TableName overrides the gorm default
func (Subject) TableName() string {
	return "dim_subject"
}

// SubjectSummary aggregates finished sessions per subject
type SubjectSummary struct {
	SubjectID    string `json:"subject_id"`
	SubjectName  string `json:"subject_name"`
	Sessions     int64  `json:"sessions"`
	TotalSeconds int64  `json:"total_seconds"`
}
