package store

import (
	"time"

	"github.com/teachlens/teachlens-pipeline/analysis"
	"github.com/teachlens/teachlens-pipeline/report"
)

type Teacher struct {
	ID               uint   `gorm:"primaryKey"`
	Email            string `gorm:"uniqueIndex;not null"`
	PasswordHash     string `gorm:"not null"`
	FirstName        string `gorm:"not null"`
	LastName         string `gorm:"not null"`
	EducationDetails string `gorm:"type:text"`
	CreatedAt        time.Time
	Reports          []Report `gorm:"constraint:OnDelete:CASCADE"`
}

func (t Teacher) Info() report.TeacherInfo {
	return report.TeacherInfo{
		FirstName:        t.FirstName,
		LastName:         t.LastName,
		Email:            t.Email,
		EducationDetails: t.EducationDetails,
	}
}

type Report struct {
	ID         string                    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Filename   string                    `gorm:"not null" json:"filename"`
	Timestamp  time.Time                 `gorm:"index" json:"timestamp"`
	Rubric     analysis.EvaluationResult `gorm:"serializer:json;not null" json:"rubric"`
	Transcript string                    `gorm:"type:text;not null" json:"transcript"`
	PDFData    []byte                    `gorm:"not null" json:"-"`
	TeacherID  uint                      `gorm:"index" json:"teacher_id"`
}

// ReportSummary is the listing row of a report, without blobs.
type ReportSummary struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Timestamp time.Time `json:"timestamp"`
}
