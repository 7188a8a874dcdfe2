package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	LessonTypeSlide = "slide"
	LessonTypeVideo = "video"
	LessonTypeText  = "text"
	LessonTypeAudio = "audio"
)

type Lesson struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	SectionID       uint           `json:"section_id" gorm:"not null;index;uniqueIndex:idx_section_sequence"`
	Title           string         `json:"title" gorm:"not null"`
	Type            string         `json:"type" gorm:"default:'slide'"`
	Sequence        int            `json:"sequence" gorm:"not null;uniqueIndex:idx_section_sequence"`
	DurationSeconds uint           `json:"duration_seconds"`
	Content         datatypes.JSON `json:"content,omitempty"`
	SlideType       string         `json:"slide_type,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
