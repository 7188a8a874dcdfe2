package dto

import "time"

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type EnrollmentResponse struct {
	ID          uint       `json:"id"`
	UserID      uint       `json:"user_id"`
	CourseID    uint       `json:"course_id"`
	CourseTitle string     `json:"course_title,omitempty"`
	Progress    float64    `json:"progress"`
	Status      string     `json:"status"`
	EnrolledAt  time.Time  `json:"enrolled_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type LessonProgressResponse struct {
	ID           uint       `json:"id"`
	EnrollmentID uint       `json:"enrollment_id"`
	LessonID     uint       `json:"lesson_id"`
	CurrentSlide int        `json:"current_slide"`
	LastPosition int        `json:"last_position"`
	TimeSpent    int        `json:"time_spent"`
	Completed    bool       `json:"completed"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// CourseProgressResponse bundles the aggregate percentage with the per-lesson
// records for a progress screen.
type CourseProgressResponse struct {
	Enrollment EnrollmentResponse       `json:"enrollment"`
	Lessons    []LessonProgressResponse `json:"lessons"`
}

// AnswerFeedbackResponse mirrors one per-question correctness record.
// Selected is null for unanswered questions.
type AnswerFeedbackResponse struct {
	QuestionID    uint   `json:"question_id"`
	Selected      *int   `json:"selected"`
	CorrectAnswer int    `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
	Explanation   string `json:"explanation,omitempty"`
}

type QuizAttemptResponse struct {
	ID            uint                     `json:"id"`
	EnrollmentID  uint                     `json:"enrollment_id"`
	QuizID        uint                     `json:"quiz_id"`
	Score         float64                  `json:"score"`
	Passed        bool                     `json:"passed"`
	XPEarned      uint                     `json:"xp_earned"`
	AttemptNumber uint                     `json:"attempt_number"`
	Feedback      []AnswerFeedbackResponse `json:"feedback"`
	SubmittedAt   time.Time                `json:"submitted_at"`
}

// RemainingAttemptsResponse reports how many attempts are left; Remaining is
// null for quizzes with unlimited attempts.
type RemainingAttemptsResponse struct {
	Remaining *int64 `json:"remaining"`
}

// FinalQuizQuestionResponse is a sampled exam question as shown to the
// student. It deliberately omits the correct answer.
type FinalQuizQuestionResponse struct {
	ID         uint     `json:"id"`
	Type       string   `json:"type"`
	Question   string   `json:"question"`
	Options    []string `json:"options"`
	Difficulty string   `json:"difficulty"`
	Category   string   `json:"category,omitempty"`
}

// FinalQuizGenerateResponse carries the sampled set; QuestionIDs must be
// echoed verbatim on submission.
type FinalQuizGenerateResponse struct {
	QuestionIDs []uint                      `json:"question_ids"`
	Questions   []FinalQuizQuestionResponse `json:"questions"`
}

type FinalQuizConfigResponse struct {
	ID            uint   `json:"id"`
	CourseID      uint   `json:"course_id"`
	Title         string `json:"title"`
	NumQuestions  uint   `json:"num_questions"`
	PassThreshold uint   `json:"pass_threshold"`
	MaxAttempts   uint   `json:"max_attempts"`
	XPReward      uint   `json:"xp_reward"`
}

type FinalQuizAttemptResponse struct {
	ID                uint                     `json:"id"`
	EnrollmentID      uint                     `json:"enrollment_id"`
	FinalQuizID       uint                     `json:"final_quiz_id"`
	Score             float64                  `json:"score"`
	Passed            bool                     `json:"passed"`
	XPEarned          uint                     `json:"xp_earned"`
	AttemptNumber     uint                     `json:"attempt_number"`
	QuestionsSnapshot []uint                   `json:"questions_snapshot"`
	Feedback          []AnswerFeedbackResponse `json:"feedback"`
	SubmittedAt       time.Time                `json:"submitted_at"`
	Certificate       *CertificateResponse     `json:"certificate,omitempty"`
}

type CertificateResponse struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	CourseID    uint      `json:"course_id"`
	CourseTitle string    `json:"course_title,omitempty"`
	Score       float64   `json:"score"`
	Code        string    `json:"code"`
	IssuedAt    time.Time `json:"issued_at"`
}

// ShareTokenResponse includes the derived IsValid flag alongside the stored
// state so callers do not re-implement the validity predicate.
type ShareTokenResponse struct {
	ID         uint       `json:"id"`
	CourseID   uint       `json:"course_id"`
	Token      string     `json:"token"`
	Visibility string     `json:"visibility"`
	MaxUses    uint       `json:"max_uses"`
	UsesCount  uint       `json:"uses_count"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	IsActive   bool       `json:"is_active"`
	IsValid    bool       `json:"is_valid"`
	CreatedAt  time.Time  `json:"created_at"`
}

type LessonNoteResponse struct {
	ID           uint      `json:"id"`
	EnrollmentID uint      `json:"enrollment_id"`
	LessonID     uint      `json:"lesson_id"`
	Content      string    `json:"content"`
	SlideIndex   int       `json:"slide_index"`
	CreatedAt    time.Time `json:"created_at"`
}
