package dto

// EnrollRequest registers a user in a course.
type EnrollRequest struct {
	UserID   uint `json:"user_id" binding:"required"`
	CourseID uint `json:"course_id" binding:"required"`
}

// AutosaveProgressRequest is the periodic lesson-state save sent by the
// player. TimeSpentDelta is the seconds elapsed since the previous save, not
// a running total.
type AutosaveProgressRequest struct {
	LessonID       uint `json:"lesson_id" binding:"required"`
	CurrentSlide   int  `json:"current_slide"`
	LastPosition   int  `json:"last_position"`
	TimeSpentDelta int  `json:"time_spent_delta"`
	Completed      bool `json:"completed"`
}

// QuizSubmitRequest carries the answer map for a section quiz:
// question id -> selected 0-based option index.
type QuizSubmitRequest struct {
	EnrollmentID uint         `json:"enrollment_id" binding:"required"`
	Answers      map[uint]int `json:"answers" binding:"required"`
}

// FinalQuizGenerateRequest asks for a sampled question set for the course's
// final quiz. CourseID comes from the URL path.
type FinalQuizGenerateRequest struct {
	UserID   uint `json:"user_id" binding:"required"`
	CourseID uint `json:"-"`
}

// FinalQuizSubmitRequest must echo the exact question id list returned by
// generate; the engine scores only those ids. CourseID comes from the URL
// path.
type FinalQuizSubmitRequest struct {
	UserID      uint         `json:"user_id" binding:"required"`
	CourseID    uint         `json:"-"`
	QuestionIDs []uint       `json:"question_ids" binding:"required,min=1"`
	Answers     map[uint]int `json:"answers" binding:"required"`
}

// ShareTokenCreateRequest creates a course access token. MaxUses of 0 means
// unlimited; ExpiresInDays of nil means no expiry.
type ShareTokenCreateRequest struct {
	UserID        uint   `json:"user_id" binding:"required"`
	CourseID      uint   `json:"course_id" binding:"required"`
	Visibility    string `json:"visibility" binding:"omitempty,oneof=public private token"`
	MaxUses       uint   `json:"max_uses"`
	ExpiresInDays *int   `json:"expires_in_days"`
}

// ShareTokenValidateRequest consumes one use of a token.
type ShareTokenValidateRequest struct {
	Token string `json:"token" binding:"required"`
}

// LessonNoteCreateRequest pins a note to a slide of a lesson.
type LessonNoteCreateRequest struct {
	LessonID   uint   `json:"lesson_id" binding:"required"`
	Content    string `json:"content" binding:"required"`
	SlideIndex int    `json:"slide_index"`
}
