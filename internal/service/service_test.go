package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ooskills/formation-api/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory database. The database is named after
// the test so parallel tests never share state, and cache=shared keeps it
// alive across the connections gorm pools.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Course{},
		&model.Section{},
		&model.Lesson{},
		&model.Quiz{},
		&model.QuizQuestion{},
		&model.FinalQuiz{},
		&model.Enrollment{},
		&model.LessonProgress{},
		&model.LessonNote{},
		&model.QuizAttempt{},
		&model.FinalQuizAttempt{},
		&model.Certificate{},
		&model.ShareToken{},
	))
	return db
}

// seedCourse creates a published course with one section holding two lessons.
func seedCourse(t *testing.T, db *gorm.DB) *model.Course {
	t.Helper()

	course := model.Course{
		Title:  "Workplace Safety Fundamentals",
		Slug:   "workplace-safety-" + strings.ToLower(strings.ReplaceAll(t.Name(), "/", "-")),
		Status: model.CourseStatusPublished,
		Sections: []model.Section{
			{
				Title:    "Getting Started",
				Type:     model.SectionTypeModule,
				Sequence: 1,
				Lessons: []model.Lesson{
					{Title: "Introduction", Type: model.LessonTypeSlide, Sequence: 1},
					{Title: "Core Concepts", Type: model.LessonTypeSlide, Sequence: 2},
				},
			},
		},
	}
	require.NoError(t, db.Create(&course).Error)
	return &course
}

func seedEnrollment(t *testing.T, db *gorm.DB, userID, courseID uint) *model.Enrollment {
	t.Helper()

	enrollment := model.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		Status:   model.EnrollmentStatusActive,
	}
	require.NoError(t, db.Create(&enrollment).Error)
	return &enrollment
}

func completeEnrollment(t *testing.T, db *gorm.DB, enrollment *model.Enrollment) {
	t.Helper()

	now := time.Now()
	enrollment.Status = model.EnrollmentStatusCompleted
	enrollment.Progress = 100
	enrollment.CompletedAt = &now
	require.NoError(t, db.Save(enrollment).Error)
}

// seedQuiz attaches a quiz with three questions to the section. Correct
// answers are option 0 for every question.
func seedQuiz(t *testing.T, db *gorm.DB, sectionID uint, cfg model.Quiz) *model.Quiz {
	t.Helper()

	quiz := model.Quiz{
		SectionID:     sectionID,
		Title:         "Section Quiz",
		PassThreshold: cfg.PassThreshold,
		MaxAttempts:   cfg.MaxAttempts,
		XPReward:      cfg.XPReward,
		Questions: []model.QuizQuestion{
			{Question: "Q1", Options: []string{"right", "wrong"}, CorrectAnswer: 0, Sequence: 1},
			{Question: "Q2", Options: []string{"right", "wrong"}, CorrectAnswer: 0, Sequence: 2},
			{Question: "Q3", Options: []string{"right", "wrong"}, CorrectAnswer: 0, Sequence: 3},
		},
	}
	require.NoError(t, db.Create(&quiz).Error)
	return &quiz
}

// correctAnswers builds an all-correct answer map for the seeded quiz.
func correctAnswers(quiz *model.Quiz) map[uint]int {
	answers := make(map[uint]int, len(quiz.Questions))
	for _, q := range quiz.Questions {
		answers[q.ID] = q.CorrectAnswer
	}
	return answers
}
