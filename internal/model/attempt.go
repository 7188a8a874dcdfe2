package model

import (
	"time"

	"gorm.io/datatypes"
)

// AnswerFeedback is one per-question correctness record inside an attempt's
// feedback list. Selected is nil when the question was left unanswered.
type AnswerFeedback struct {
	QuestionID    uint   `json:"question_id"`
	Selected      *int   `json:"selected"`
	CorrectAnswer int    `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
	Explanation   string `json:"explanation,omitempty"`
}

// QuizAttempt is one scored submission against a section quiz. Rows are
// append-only; AttemptNumber is 1-based and strictly increasing per
// (enrollment, quiz) pair.
type QuizAttempt struct {
	ID            uint                                `gorm:"primarykey" json:"id"`
	EnrollmentID  uint                                `json:"enrollment_id" gorm:"not null;index:idx_quiz_attempt_pair"`
	QuizID        uint                                `json:"quiz_id" gorm:"not null;index:idx_quiz_attempt_pair"`
	Score         float64                             `json:"score"` // percentage, two decimal places
	Answers       datatypes.JSONType[map[uint]int]    `json:"answers"`
	Passed        bool                                `json:"passed"`
	XPEarned      uint                                `json:"xp_earned"`
	Feedback      datatypes.JSONSlice[AnswerFeedback] `json:"feedback"`
	AttemptNumber uint                                `json:"attempt_number" gorm:"default:1"`
	SubmittedAt   time.Time                           `json:"submitted_at" gorm:"autoCreateTime"`
}

// FinalQuizAttempt is one scored submission against a course's final quiz.
// QuestionsSnapshot records the sampled question ids the student was shown;
// scoring runs against exactly that echoed list.
type FinalQuizAttempt struct {
	ID                uint                                `gorm:"primarykey" json:"id"`
	EnrollmentID      uint                                `json:"enrollment_id" gorm:"not null;index:idx_final_attempt_pair"`
	FinalQuizID       uint                                `json:"final_quiz_id" gorm:"not null;index:idx_final_attempt_pair"`
	Score             float64                             `json:"score"`
	Answers           datatypes.JSONType[map[uint]int]    `json:"answers"`
	QuestionsSnapshot datatypes.JSONSlice[uint]           `json:"questions_snapshot"`
	Passed            bool                                `json:"passed"`
	XPEarned          uint                                `json:"xp_earned"`
	Feedback          datatypes.JSONSlice[AnswerFeedback] `json:"feedback"`
	AttemptNumber     uint                                `json:"attempt_number" gorm:"default:1"`
	SubmittedAt       time.Time                           `json:"submitted_at" gorm:"autoCreateTime"`
}
