package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	CourseStatusDraft     = "draft"
	CourseStatusPublished = "published"
	CourseStatusArchived  = "archived"
)

const (
	CourseLevelBeginner     = "beginner"
	CourseLevelIntermediate = "intermediate"
	CourseLevelAdvanced     = "advanced"
)

type Course struct {
	ID            uint                        `gorm:"primarykey" json:"id"`
	Title         string                      `json:"title" gorm:"not null"`
	Slug          string                      `json:"slug" gorm:"not null;uniqueIndex"`
	Description   string                      `json:"description,omitempty" gorm:"type:text"`
	Prerequisites datatypes.JSONSlice[string] `json:"prerequisites,omitempty"`
	WhatYouLearn  datatypes.JSONSlice[string] `json:"what_you_learn,omitempty"`
	Level         string                      `json:"level" gorm:"default:'beginner'"`
	Status        string                      `json:"status" gorm:"default:'draft';index"`
	Language      string                      `json:"language" gorm:"default:'English'"`
	Duration      uint                        `json:"duration"` // total hours
	Price         uint                        `json:"price"`
	OriginalPrice uint                        `json:"original_price"`
	Rating        float64                     `json:"rating"`
	Reviews       uint                        `json:"reviews"`
	Students      uint                        `json:"students"`
	Certificate   bool                        `json:"certificate" gorm:"default:true"`
	Sections      []Section                   `json:"sections,omitempty" gorm:"foreignKey:CourseID"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
	DeletedAt     gorm.DeletedAt              `gorm:"index" json:"-"`
}
