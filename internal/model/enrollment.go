package model

import (
	"time"
)

const (
	EnrollmentStatusActive    = "active"
	EnrollmentStatusCompleted = "completed"
	EnrollmentStatusCancelled = "cancelled"
	EnrollmentStatusExpired   = "expired"
)

// Enrollment ties a user to a course. Progress is the aggregate completion
// percentage (two decimals); once Status reaches completed it never goes
// back below 100.
type Enrollment struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	UserID      uint       `json:"user_id" gorm:"not null;index;uniqueIndex:idx_user_course"`
	CourseID    uint       `json:"course_id" gorm:"not null;uniqueIndex:idx_user_course"`
	Course      Course     `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	Progress    float64    `json:"progress"` // 0-100, two decimal places
	Status      string     `json:"status" gorm:"default:'active';index"`
	EnrolledAt  time.Time  `json:"enrolled_at" gorm:"autoCreateTime"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
