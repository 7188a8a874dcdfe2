package service

import "errors"

// Domain errors. All of these are expected, recoverable-by-caller conditions;
// controllers map them to HTTP statuses with errors.Is. Infrastructure
// failures pass through untouched.
var (
	ErrAlreadyEnrolled          = errors.New("user is already enrolled in this course")
	ErrCourseNotCompleted       = errors.New("course is not completed")
	ErrAttemptLimitExceeded     = errors.New("maximum attempts reached")
	ErrCertificateAlreadyIssued = errors.New("certificate already issued for this course")
	ErrNoQuestionsConfigured    = errors.New("no questions configured")
	ErrFinalQuizNotConfigured   = errors.New("no final quiz configured for this course")
	ErrInvalidContent           = errors.New("invalid content structure")
	ErrAlreadyExists            = errors.New("resource already exists")
)
