package dto

import "time"

// --- Admin course management ---

type LessonCreateRequest struct {
	Title           string `json:"title" binding:"required"`
	Type            string `json:"type" binding:"omitempty,oneof=slide video text audio"`
	Sequence        int    `json:"sequence" binding:"required"`
	DurationSeconds uint   `json:"duration_seconds"`
	SlideType       string `json:"slide_type"`
}

type SectionCreateRequest struct {
	Title    string                `json:"title" binding:"required"`
	Type     string                `json:"type" binding:"omitempty,oneof=teaser introduction module conclusion"`
	Sequence int                   `json:"sequence" binding:"required"`
	Lessons  []LessonCreateRequest `json:"lessons" binding:"dive"`
}

type CourseCreateRequest struct {
	Title         string                 `json:"title" binding:"required"`
	Slug          string                 `json:"slug" binding:"required"`
	Description   string                 `json:"description"`
	Level         string                 `json:"level" binding:"omitempty,oneof=beginner intermediate advanced"`
	Language      string                 `json:"language"`
	Duration      uint                   `json:"duration"`
	Price         uint                   `json:"price"`
	OriginalPrice uint                   `json:"original_price"`
	Prerequisites []string               `json:"prerequisites"`
	WhatYouLearn  []string               `json:"what_you_learn"`
	Certificate   *bool                  `json:"certificate"`
	Sections      []SectionCreateRequest `json:"sections" binding:"dive"`
}

type QuizQuestionCreateRequest struct {
	Type          string   `json:"type" binding:"omitempty,oneof=multiple_choice true_false scenario"`
	Question      string   `json:"question" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Category      string   `json:"category"`
	Sequence      int      `json:"sequence"`
}

type QuizCreateRequest struct {
	Title         string                      `json:"title" binding:"required"`
	IntroText     string                      `json:"intro_text"`
	PassThreshold uint                        `json:"pass_threshold" binding:"max=100"`
	MaxAttempts   uint                        `json:"max_attempts"`
	XPReward      uint                        `json:"xp_reward"`
	Questions     []QuizQuestionCreateRequest `json:"questions" binding:"required,min=1,dive"`
}

type FinalQuizCreateRequest struct {
	Title         string `json:"title"`
	NumQuestions  uint   `json:"num_questions" binding:"required,min=1"`
	PassThreshold uint   `json:"pass_threshold" binding:"max=100"`
	MaxAttempts   uint   `json:"max_attempts"`
	XPReward      uint   `json:"xp_reward"`
}

// --- Admin responses ---

type LessonResponse struct {
	ID              uint   `json:"id"`
	SectionID       uint   `json:"section_id"`
	Title           string `json:"title"`
	Type            string `json:"type"`
	Sequence        int    `json:"sequence"`
	DurationSeconds uint   `json:"duration_seconds"`
	SlideType       string `json:"slide_type,omitempty"`
}

type SectionResponse struct {
	ID       uint             `json:"id"`
	CourseID uint             `json:"course_id"`
	Title    string           `json:"title"`
	Type     string           `json:"type"`
	Sequence int              `json:"sequence"`
	Lessons  []LessonResponse `json:"lessons,omitempty"`
}

type CourseResponse struct {
	ID            uint              `json:"id"`
	Title         string            `json:"title"`
	Slug          string            `json:"slug"`
	Description   string            `json:"description,omitempty"`
	Level         string            `json:"level"`
	Status        string            `json:"status"`
	Language      string            `json:"language"`
	Duration      uint              `json:"duration"`
	Price         uint              `json:"price"`
	OriginalPrice uint              `json:"original_price"`
	Students      uint              `json:"students"`
	Certificate   bool              `json:"certificate"`
	Sections      []SectionResponse `json:"sections,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

type QuizQuestionResponse struct {
	ID            uint     `json:"id"`
	QuizID        uint     `json:"quiz_id"`
	Type          string   `json:"type"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
	Difficulty    string   `json:"difficulty"`
	Category      string   `json:"category,omitempty"`
	Sequence      int      `json:"sequence"`
}

type QuizResponse struct {
	ID            uint                   `json:"id"`
	SectionID     uint                   `json:"section_id"`
	Title         string                 `json:"title"`
	IntroText     string                 `json:"intro_text,omitempty"`
	PassThreshold uint                   `json:"pass_threshold"`
	MaxAttempts   uint                   `json:"max_attempts"`
	XPReward      uint                   `json:"xp_reward"`
	Questions     []QuizQuestionResponse `json:"questions,omitempty"`
}
