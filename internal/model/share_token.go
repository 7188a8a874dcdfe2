package model

import (
	"time"
)

const (
	ShareVisibilityPublic  = "public"
	ShareVisibilityPrivate = "private"
	ShareVisibilityToken   = "token"
)

// ShareToken grants bounded access to a course via an unguessable token
// string. Validity is derived on read, never stored.
type ShareToken struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	CourseID    uint       `json:"course_id" gorm:"not null;index"`
	Course      Course     `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	CreatedByID uint       `json:"created_by_id" gorm:"not null;index"`
	Token       string     `json:"token" gorm:"size:64;not null;uniqueIndex"`
	Visibility  string     `json:"visibility" gorm:"default:'token'"`
	MaxUses     uint       `json:"max_uses"` // 0 = unlimited
	UsesCount   uint       `json:"uses_count"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	IsActive    bool       `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time  `json:"created_at"`
}

// IsValid reports whether the token can still be consumed at the given
// instant.
func (t *ShareToken) IsValid(now time.Time) bool {
	if !t.IsActive {
		return false
	}
	if t.MaxUses > 0 && t.UsesCount >= t.MaxUses {
		return false
	}
	if t.ExpiresAt != nil && now.After(*t.ExpiresAt) {
		return false
	}
	return true
}
