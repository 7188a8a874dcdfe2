package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeTrueFalse      = "true_false"
	QuestionTypeScenario       = "scenario"
)

// Quiz is the per-section quiz configuration. MaxAttempts of 0 means
// unlimited attempts.
type Quiz struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	SectionID     uint           `json:"section_id" gorm:"not null;uniqueIndex"`
	Title         string         `json:"title" gorm:"not null"`
	IntroText     string         `json:"intro_text,omitempty" gorm:"type:text"`
	PassThreshold uint           `json:"pass_threshold" gorm:"default:70"` // percentage 0-100
	MaxAttempts   uint           `json:"max_attempts" gorm:"default:3"`
	XPReward      uint           `json:"xp_reward" gorm:"default:10"`
	Questions     []QuizQuestion `json:"questions,omitempty" gorm:"foreignKey:QuizID"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// QuizQuestion holds the answer key: Options is the ordered option list and
// CorrectAnswer the 0-based index into it. Reference data for scoring,
// immutable once students start attempting.
type QuizQuestion struct {
	ID            uint                        `gorm:"primarykey" json:"id"`
	QuizID        uint                        `json:"quiz_id" gorm:"not null;index"`
	Type          string                      `json:"type" gorm:"default:'multiple_choice'"`
	Question      string                      `json:"question" gorm:"type:text;not null"`
	Options       datatypes.JSONSlice[string] `json:"options"`
	CorrectAnswer int                         `json:"correct_answer" gorm:"not null"`
	Explanation   string                      `json:"explanation,omitempty" gorm:"type:text"`
	Difficulty    string                      `json:"difficulty" gorm:"default:'easy'"`
	Category      string                      `json:"category,omitempty"`
	Sequence      int                         `json:"sequence"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
	DeletedAt     gorm.DeletedAt              `gorm:"index" json:"-"`
}

// FinalQuiz is the course-level exam. Its question set is sampled at attempt
// time from the union of all section-quiz questions in the course.
type FinalQuiz struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	CourseID      uint           `json:"course_id" gorm:"not null;uniqueIndex"`
	Title         string         `json:"title" gorm:"default:'Final Exam'"`
	NumQuestions  uint           `json:"num_questions" gorm:"default:20"`
	PassThreshold uint           `json:"pass_threshold" gorm:"default:70"`
	MaxAttempts   uint           `json:"max_attempts" gorm:"default:3"`
	XPReward      uint           `json:"xp_reward" gorm:"default:50"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
