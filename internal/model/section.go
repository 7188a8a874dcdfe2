package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	SectionTypeTeaser       = "teaser"
	SectionTypeIntroduction = "introduction"
	SectionTypeModule       = "module"
	SectionTypeConclusion   = "conclusion"
)

// Section is an ordered block of lessons inside a course. At most one quiz
// hangs off each section.
type Section struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CourseID  uint           `json:"course_id" gorm:"not null;index;uniqueIndex:idx_course_sequence"`
	Title     string         `json:"title" gorm:"not null"`
	Type      string         `json:"type" gorm:"default:'module'"`
	Sequence  int            `json:"sequence" gorm:"not null;uniqueIndex:idx_course_sequence"`
	Lessons   []Lesson       `json:"lessons,omitempty" gorm:"foreignKey:SectionID"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
