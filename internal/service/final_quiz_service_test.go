package service

import (
	"testing"

	"github.com/ooskills/formation-api/internal/dto"
	"github.com/ooskills/formation-api/internal/model"
	"github.com/ooskills/formation-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newFinalQuizService(db *gorm.DB) FinalQuizService {
	return NewFinalQuizService(
		repository.NewEnrollmentRepository(db),
		repository.NewFinalQuizRepository(db),
		repository.NewFinalQuizAttemptRepository(db),
		repository.NewQuestionRepository(db),
		NewCertificateService(repository.NewCertificateRepository(db), db),
		db,
	)
}

func seedFinalQuiz(t *testing.T, db *gorm.DB, courseID uint, cfg model.FinalQuiz) *model.FinalQuiz {
	t.Helper()

	finalQuiz := model.FinalQuiz{
		CourseID:      courseID,
		NumQuestions:  cfg.NumQuestions,
		PassThreshold: cfg.PassThreshold,
		MaxAttempts:   cfg.MaxAttempts,
		XPReward:      cfg.XPReward,
	}
	require.NoError(t, db.Create(&finalQuiz).Error)
	return &finalQuiz
}

func TestFinalQuizGenerateRequiresCompletedCourse(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	enrollment := seedEnrollment(t, db, 1, course.ID)
	seedQuiz(t, db, course.Sections[0].ID, model.Quiz{PassThreshold: 70, MaxAttempts: 3})
	seedFinalQuiz(t, db, course.ID, model.FinalQuiz{NumQuestions: 2, PassThreshold: 70, MaxAttempts: 3})
	svc := newFinalQuizService(db)

	_, err := svc.GenerateQuestions(enrollment.UserID, course.ID)
	assert.ErrorIs(t, err, ErrCourseNotCompleted)
}

func TestFinalQuizGenerateWithoutConfig(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	enrollment := seedEnrollment(t, db, 1, course.ID)
	completeEnrollment(t, db, enrollment)
	svc := newFinalQuizService(db)

	_, err := svc.GenerateQuestions(enrollment.UserID, course.ID)
	assert.ErrorIs(t, err, ErrFinalQuizNotConfigured)
}

func TestFinalQuizGenerateSamplesFromPool(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	enrollment := seedEnrollment(t, db, 1, course.ID)
	completeEnrollment(t, db, enrollment)
	quiz := seedQuiz(t, db, course.Sections[0].ID, model.Quiz{PassThreshold: 70, MaxAttempts: 3})
	seedFinalQuiz(t, db, course.ID, model.FinalQuiz{NumQuestions: 2, PassThreshold: 70, MaxAttempts: 3})
	svc := newFinalQuizService(db)

	resp, err := svc.GenerateQuestions(enrollment.UserID, course.ID)
	require.NoError(t, err)
	require.Len(t, resp.QuestionIDs, 2)
	require.Len(t, resp.Questions, 2)

	poolIDs := make(map[uint]bool)
	for _, q := range quiz.Questions {
		poolIDs[q.ID] = true
	}
	seen := make(map[uint]bool)
	for _, id := range resp.QuestionIDs {
		assert.True(t, poolIDs[id], "sampled id must come from the course pool")
		assert.False(t, seen[id], "sampling is without replacement")
		seen[id] = true
	}
}

func TestFinalQuizGenerateClampsToPoolSize(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	enrollment := seedEnrollment(t, db, 1, course.ID)
	completeEnrollment(t, db, enrollment)
	seedQuiz(t, db, course.Sections[0].ID, model.Quiz{PassThreshold: 70, MaxAttempts: 3})
	seedFinalQuiz(t, db, course.ID, model.FinalQuiz{NumQuestions: 50, PassThreshold: 70, MaxAttempts: 3})
	svc := newFinalQuizService(db)

	resp, err := svc.GenerateQuestions(enrollment.UserID, course.ID)
	require.NoError(t, err)
	assert.Len(t, resp.QuestionIDs, 3, "only three questions exist in the pool")
}

func TestFinalQuizGenerateEmptyPool(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	enrollment := seedEnrollment(t, db, 1, course.ID)
	completeEnrollment(t, db, enrollment)
	seedFinalQuiz(t, db, course.ID, model.FinalQuiz{NumQuestions: 5, PassThreshold: 70, MaxAttempts: 3})
	svc := newFinalQuizService(db)

	_, err := svc.GenerateQuestions(enrollment.UserID, course.ID)
	assert.ErrorIs(t, err, ErrNoQuestionsConfigured)
}

func TestFinalQuizSubmitPassIssuesCertificate(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	enrollment := seedEnrollment(t, db, 1, course.ID)
	completeEnrollment(t, db, enrollment)
	quiz := seedQuiz(t, db, course.Sections[0].ID, model.Quiz{PassThreshold: 70, MaxAttempts: 3})
	seedFinalQuiz(t, db, course.ID, model.FinalQuiz{NumQuestions: 3, PassThreshold: 70, MaxAttempts: 3, XPReward: 50})
	svc := newFinalQuizService(db)

	questionIDs := make([]uint, 0, 3)
	for _, q := range quiz.Questions {
		questionIDs = append(questionIDs, q.ID)
	}

	resp, err := svc.Submit(dto.FinalQuizSubmitRequest{
		UserID:      enrollment.UserID,
		CourseID:    course.ID,
		QuestionIDs: questionIDs,
		Answers:     correctAnswers(quiz),
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, resp.Score)
	assert.True(t, resp.Passed)
	assert.Equal(t, uint(50), resp.XPEarned)
	require.NotNil(t, resp.Certificate)
	assert.Equal(t, enrollment.UserID, resp.Certificate.UserID)

	var certCount int64
	require.NoError(t, db.Model(&model.Certificate{}).Count(&certCount).Error)
	assert.Equal(t, int64(1), certCount)

	// Passing again keeps the single certificate and attaches none.
	resp, err = svc.Submit(dto.FinalQuizSubmitRequest{
		UserID:      enrollment.UserID,
		CourseID:    course.ID,
		QuestionIDs: questionIDs,
		Answers:     correctAnswers(quiz),
	})
	require.NoError(t, err)
	assert.Nil(t, resp.Certificate)

	require.NoError(t, db.Model(&model.Certificate{}).Count(&certCount).Error)
	assert.Equal(t, int64(1), certCount)
}

func TestFinalQuizSubmitFailNoCertificate(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	enrollment := seedEnrollment(t, db, 1, course.ID)
	completeEnrollment(t, db, enrollment)
	quiz := seedQuiz(t, db, course.Sections[0].ID, model.Quiz{PassThreshold: 70, MaxAttempts: 3})
	seedFinalQuiz(t, db, course.ID, model.FinalQuiz{NumQuestions: 3, PassThreshold: 70, MaxAttempts: 3})
	svc := newFinalQuizService(db)

	questionIDs := []uint{quiz.Questions[0].ID, quiz.Questions[1].ID, quiz.Questions[2].ID}

	resp, err := svc.Submit(dto.FinalQuizSubmitRequest{
		UserID:      enrollment.UserID,
		CourseID:    course.ID,
		QuestionIDs: questionIDs,
		Answers:     map[uint]int{},
	})
	require.NoError(t, err)
	assert.False(t, resp.Passed)
	assert.Nil(t, resp.Certificate)

	var certCount int64
	require.NoError(t, db.Model(&model.Certificate{}).Count(&certCount).Error)
	assert.Equal(t, int64(0), certCount)
}

func TestFinalQuizSubmitUnknownQuestionCountsWrong(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	enrollment := seedEnrollment(t, db, 1, course.ID)
	completeEnrollment(t, db, enrollment)
	quiz := seedQuiz(t, db, course.Sections[0].ID, model.Quiz{PassThreshold: 70, MaxAttempts: 3})
	seedFinalQuiz(t, db, course.ID, model.FinalQuiz{NumQuestions: 2, PassThreshold: 70, MaxAttempts: 3})
	svc := newFinalQuizService(db)

	known := quiz.Questions[0]
	resp, err := svc.Submit(dto.FinalQuizSubmitRequest{
		UserID:      enrollment.UserID,
		CourseID:    course.ID,
		QuestionIDs: []uint{known.ID, 9999},
		Answers:     map[uint]int{known.ID: known.CorrectAnswer},
	})
	require.NoError(t, err)
	assert.Equal(t, 50.0, resp.Score, "the unknown id counts toward the total as wrong")
	assert.Len(t, resp.Feedback, 1, "unknown ids get no feedback entry")
	assert.Equal(t, []uint{known.ID, 9999}, resp.QuestionsSnapshot)
}

func TestFinalQuizSubmitAttemptLimit(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	enrollment := seedEnrollment(t, db, 1, course.ID)
	completeEnrollment(t, db, enrollment)
	quiz := seedQuiz(t, db, course.Sections[0].ID, model.Quiz{PassThreshold: 70, MaxAttempts: 3})
	seedFinalQuiz(t, db, course.ID, model.FinalQuiz{NumQuestions: 3, PassThreshold: 70, MaxAttempts: 1})
	svc := newFinalQuizService(db)

	questionIDs := []uint{quiz.Questions[0].ID}
	req := dto.FinalQuizSubmitRequest{
		UserID:      enrollment.UserID,
		CourseID:    course.ID,
		QuestionIDs: questionIDs,
		Answers:     map[uint]int{},
	}

	_, err := svc.Submit(req)
	require.NoError(t, err)

	_, err = svc.Submit(req)
	assert.ErrorIs(t, err, ErrAttemptLimitExceeded)

	// Generate is also blocked once the limit is reached.
	_, err = svc.GenerateQuestions(enrollment.UserID, course.ID)
	assert.ErrorIs(t, err, ErrAttemptLimitExceeded)
}

func TestFinalQuizUserAttempts(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	enrollment := seedEnrollment(t, db, 42, course.ID)
	completeEnrollment(t, db, enrollment)
	quiz := seedQuiz(t, db, course.Sections[0].ID, model.Quiz{PassThreshold: 70, MaxAttempts: 3})
	seedFinalQuiz(t, db, course.ID, model.FinalQuiz{NumQuestions: 3, PassThreshold: 70, MaxAttempts: 3})
	svc := newFinalQuizService(db)

	_, err := svc.Submit(dto.FinalQuizSubmitRequest{
		UserID:      42,
		CourseID:    course.ID,
		QuestionIDs: []uint{quiz.Questions[0].ID},
		Answers:     map[uint]int{},
	})
	require.NoError(t, err)

	attempts, err := svc.UserAttempts(42)
	require.NoError(t, err)
	require.Len(t, attempts, 1)

	attempts, err = svc.UserAttempts(7)
	require.NoError(t, err)
	assert.Empty(t, attempts)
}

func TestFinalQuizGetConfig(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	seedFinalQuiz(t, db, course.ID, model.FinalQuiz{NumQuestions: 10, PassThreshold: 80, MaxAttempts: 2})
	svc := newFinalQuizService(db)

	config, err := svc.GetConfig(course.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(10), config.NumQuestions)
	assert.Equal(t, uint(80), config.PassThreshold)

	_, err = svc.GetConfig(9999)
	assert.ErrorIs(t, err, ErrFinalQuizNotConfigured)
}
