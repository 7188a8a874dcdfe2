package model

import (
	"time"
)

// Certificate is the completion credential, at most one per (user, course).
// Code is the globally unique verification string; rows are never updated
// or deleted.
type Certificate struct {
	ID       uint      `gorm:"primarykey" json:"id"`
	UserID   uint      `json:"user_id" gorm:"not null;index;uniqueIndex:idx_cert_user_course"`
	CourseID uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_cert_user_course"`
	Course   Course    `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	Score    float64   `json:"score"`
	Code     string    `json:"code" gorm:"size:40;not null;uniqueIndex"`
	IssuedAt time.Time `json:"issued_at" gorm:"autoCreateTime"`
}
