package model

import (
	"time"
)

// LessonProgress is the per-lesson autosave record. CurrentSlide only moves
// forward, LastPosition is last-write-wins, TimeSpent accumulates deltas and
// Completed flips false to true exactly once.
type LessonProgress struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	EnrollmentID uint       `json:"enrollment_id" gorm:"not null;index;uniqueIndex:idx_enrollment_lesson"`
	LessonID     uint       `json:"lesson_id" gorm:"not null;uniqueIndex:idx_enrollment_lesson"`
	CurrentSlide int        `json:"current_slide"`
	LastPosition int        `json:"last_position"` // playback position in seconds
	TimeSpent    int        `json:"time_spent"`    // total seconds
	Completed    bool       `json:"completed"`
	StartedAt    time.Time  `json:"started_at" gorm:"autoCreateTime"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// LessonNote is a user note pinned to a slide inside a lesson.
type LessonNote struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	EnrollmentID uint      `json:"enrollment_id" gorm:"not null;index"`
	LessonID     uint      `json:"lesson_id" gorm:"not null;index"`
	Content      string    `json:"content" gorm:"type:text;not null"`
	SlideIndex   int       `json:"slide_index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
