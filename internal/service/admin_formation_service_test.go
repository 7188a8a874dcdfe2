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

func newAdminFormationService(db *gorm.DB) AdminFormationService {
	return NewAdminFormationService(
		repository.NewCourseRepository(db),
		repository.NewQuizRepository(db),
		repository.NewFinalQuizRepository(db),
		db,
	)
}

func courseRequest(slug string) dto.CourseCreateRequest {
	return dto.CourseCreateRequest{
		Title: "Fire Safety",
		Slug:  slug,
		Level: model.CourseLevelBeginner,
		Sections: []dto.SectionCreateRequest{
			{
				Title:    "Basics",
				Sequence: 1,
				Lessons: []dto.LessonCreateRequest{
					{Title: "Intro", Sequence: 1},
					{Title: "Extinguishers", Sequence: 2},
				},
			},
			{Title: "Wrap Up", Sequence: 2},
		},
	}
}

func TestCreateCourseWithStructure(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminFormationService(db)

	resp, err := svc.CreateCourse(courseRequest("fire-safety"))
	require.NoError(t, err)
	assert.Equal(t, model.CourseStatusDraft, resp.Status)
	assert.True(t, resp.Certificate)

	full, err := svc.GetCourse(resp.ID)
	require.NoError(t, err)
	require.Len(t, full.Sections, 2)
	assert.Len(t, full.Sections[0].Lessons, 2)
}

func TestCreateCourseDuplicateSlug(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminFormationService(db)

	_, err := svc.CreateCourse(courseRequest("fire-safety"))
	require.NoError(t, err)

	_, err = svc.CreateCourse(courseRequest("fire-safety"))
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestCreateCourseDuplicateSectionSequence(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminFormationService(db)

	req := courseRequest("fire-safety")
	req.Sections[1].Sequence = 1

	_, err := svc.CreateCourse(req)
	assert.ErrorIs(t, err, ErrInvalidContent)
}

func TestCreateCourseDuplicateLessonSequence(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminFormationService(db)

	req := courseRequest("fire-safety")
	req.Sections[0].Lessons[1].Sequence = 1

	_, err := svc.CreateCourse(req)
	assert.ErrorIs(t, err, ErrInvalidContent)
}

func quizRequest() dto.QuizCreateRequest {
	return dto.QuizCreateRequest{
		Title:         "Module Check",
		PassThreshold: 70,
		MaxAttempts:   3,
		XPReward:      10,
		Questions: []dto.QuizQuestionCreateRequest{
			{Question: "Q1", Options: []string{"a", "b"}, CorrectAnswer: 0},
			{Question: "Q2", Options: []string{"a", "b", "c"}, CorrectAnswer: 2},
		},
	}
}

func TestCreateQuiz(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	svc := newAdminFormationService(db)

	resp, err := svc.CreateQuiz(course.Sections[0].ID, quizRequest())
	require.NoError(t, err)
	assert.Equal(t, course.Sections[0].ID, resp.SectionID)
	require.Len(t, resp.Questions, 2)
	// Unset sequences are filled in from declaration order.
	assert.Equal(t, 1, resp.Questions[0].Sequence)
	assert.Equal(t, 2, resp.Questions[1].Sequence)
}

func TestCreateQuizAnswerKeyOutOfRange(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	svc := newAdminFormationService(db)

	req := quizRequest()
	req.Questions[0].CorrectAnswer = 2 // only two options

	_, err := svc.CreateQuiz(course.Sections[0].ID, req)
	assert.ErrorIs(t, err, ErrInvalidContent)
}

func TestCreateQuizOnePerSection(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	svc := newAdminFormationService(db)

	_, err := svc.CreateQuiz(course.Sections[0].ID, quizRequest())
	require.NoError(t, err)

	_, err = svc.CreateQuiz(course.Sections[0].ID, quizRequest())
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestCreateQuizUnknownSection(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminFormationService(db)

	_, err := svc.CreateQuiz(9999, quizRequest())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCreateFinalQuiz(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db)
	svc := newAdminFormationService(db)

	resp, err := svc.CreateFinalQuiz(course.ID, dto.FinalQuizCreateRequest{
		NumQuestions:  10,
		PassThreshold: 80,
		MaxAttempts:   2,
		XPReward:      50,
	})
	require.NoError(t, err)
	assert.Equal(t, course.ID, resp.CourseID)
	assert.Equal(t, uint(10), resp.NumQuestions)

	_, err = svc.CreateFinalQuiz(course.ID, dto.FinalQuizCreateRequest{NumQuestions: 5})
	assert.ErrorIs(t, err, ErrAlreadyExists)
}
