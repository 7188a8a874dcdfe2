package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/ooskills/formation-api/internal/dto"
	"github.com/ooskills/formation-api/internal/model"
	"github.com/ooskills/formation-api/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AdminFormationService covers the authoring side: course structure, section
// quizzes and the final exam. Structural rules (unique sequences, answer key
// in range) are validated here before anything reaches the database.
type AdminFormationService interface {
	CreateCourse(req dto.CourseCreateRequest) (*dto.CourseResponse, error)
	GetCourse(id uint) (*dto.CourseResponse, error)
	ListPublishedCourses() ([]dto.CourseResponse, error)
	CreateQuiz(sectionID uint, req dto.QuizCreateRequest) (*dto.QuizResponse, error)
	CreateFinalQuiz(courseID uint, req dto.FinalQuizCreateRequest) (*dto.FinalQuizConfigResponse, error)
}

type adminFormationService struct {
	courseRepo    repository.CourseRepository
	quizRepo      repository.QuizRepository
	finalQuizRepo repository.FinalQuizRepository
	db            *gorm.DB
}

func NewAdminFormationService(
	courseRepo repository.CourseRepository,
	quizRepo repository.QuizRepository,
	finalQuizRepo repository.FinalQuizRepository,
	db *gorm.DB,
) AdminFormationService {
	return &adminFormationService{
		courseRepo:    courseRepo,
		quizRepo:      quizRepo,
		finalQuizRepo: finalQuizRepo,
		db:            db,
	}
}

func (s *adminFormationService) CreateCourse(req dto.CourseCreateRequest) (*dto.CourseResponse, error) {
	sectionSeqs := make(map[int]bool, len(req.Sections))
	for _, sec := range req.Sections {
		if sectionSeqs[sec.Sequence] {
			return nil, fmt.Errorf("%w: duplicate section sequence %d", ErrInvalidContent, sec.Sequence)
		}
		sectionSeqs[sec.Sequence] = true

		lessonSeqs := make(map[int]bool, len(sec.Lessons))
		for _, lesson := range sec.Lessons {
			if lessonSeqs[lesson.Sequence] {
				return nil, fmt.Errorf("%w: duplicate lesson sequence %d in section %q", ErrInvalidContent, lesson.Sequence, sec.Title)
			}
			lessonSeqs[lesson.Sequence] = true
		}
	}

	course := model.Course{
		Title:         req.Title,
		Slug:          req.Slug,
		Description:   req.Description,
		Status:        model.CourseStatusDraft,
		Level:         req.Level,
		Language:      req.Language,
		Duration:      req.Duration,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Prerequisites: datatypes.NewJSONSlice(req.Prerequisites),
		WhatYouLearn:  datatypes.NewJSONSlice(req.WhatYouLearn),
		Certificate:   true,
	}
	if req.Certificate != nil {
		course.Certificate = *req.Certificate
	}
	for _, sec := range req.Sections {
		section := model.Section{
			Title:    sec.Title,
			Type:     sec.Type,
			Sequence: sec.Sequence,
		}
		for _, lesson := range sec.Lessons {
			section.Lessons = append(section.Lessons, model.Lesson{
				Title:           lesson.Title,
				Type:            lesson.Type,
				Sequence:        lesson.Sequence,
				DurationSeconds: lesson.DurationSeconds,
				SlideType:       lesson.SlideType,
			})
		}
		course.Sections = append(course.Sections, section)
	}

	if err := s.courseRepo.Create(&course); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: slug %q", ErrAlreadyExists, req.Slug)
		}
		return nil, fmt.Errorf("error creating course: %w", err)
	}

	log.Info().Uint("courseID", course.ID).Str("slug", course.Slug).Msg("Course created")
	resp := toCourseResponse(&course)
	return &resp, nil
}

func (s *adminFormationService) GetCourse(id uint) (*dto.CourseResponse, error) {
	course, err := s.courseRepo.FindByIDWithSections(id)
	if err != nil {
		return nil, err
	}
	resp := toCourseResponse(course)
	return &resp, nil
}

func (s *adminFormationService) ListPublishedCourses() ([]dto.CourseResponse, error) {
	courses, err := s.courseRepo.FindAllPublished()
	if err != nil {
		return nil, fmt.Errorf("error fetching courses: %w", err)
	}
	resp := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		resp = append(resp, toCourseResponse(&courses[i]))
	}
	return resp, nil
}

func (s *adminFormationService) CreateQuiz(sectionID uint, req dto.QuizCreateRequest) (*dto.QuizResponse, error) {
	var section model.Section
	if err := s.db.First(&section, sectionID).Error; err != nil {
		return nil, err
	}

	existing, err := s.quizRepo.FindBySection(sectionID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: section %d already has a quiz", ErrAlreadyExists, sectionID)
	}

	seqs := make(map[int]bool, len(req.Questions))
	for i, q := range req.Questions {
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return nil, fmt.Errorf("%w: question %d correct_answer %d out of range", ErrInvalidContent, i, q.CorrectAnswer)
		}
		if q.Sequence != 0 && seqs[q.Sequence] {
			return nil, fmt.Errorf("%w: duplicate question sequence %d", ErrInvalidContent, q.Sequence)
		}
		seqs[q.Sequence] = true
	}

	quiz := model.Quiz{
		SectionID:     sectionID,
		Title:         req.Title,
		IntroText:     req.IntroText,
		PassThreshold: req.PassThreshold,
		MaxAttempts:   req.MaxAttempts,
		XPReward:      req.XPReward,
	}
	for i, q := range req.Questions {
		seq := q.Sequence
		if seq == 0 {
			seq = i + 1
		}
		quiz.Questions = append(quiz.Questions, model.QuizQuestion{
			Type:          q.Type,
			Question:      q.Question,
			Options:       datatypes.NewJSONSlice(q.Options),
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			Difficulty:    q.Difficulty,
			Category:      q.Category,
			Sequence:      seq,
		})
	}

	if err := s.quizRepo.Create(&quiz); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: section %d already has a quiz", ErrAlreadyExists, sectionID)
		}
		return nil, fmt.Errorf("error creating quiz: %w", err)
	}

	log.Info().Uint("quizID", quiz.ID).Uint("sectionID", sectionID).Int("questions", len(quiz.Questions)).Msg("Quiz created")
	return toQuizResponse(&quiz), nil
}

func (s *adminFormationService) CreateFinalQuiz(courseID uint, req dto.FinalQuizCreateRequest) (*dto.FinalQuizConfigResponse, error) {
	if _, err := s.courseRepo.FindByID(courseID); err != nil {
		return nil, err
	}

	existing, err := s.finalQuizRepo.FindByCourse(courseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: course %d already has a final quiz", ErrAlreadyExists, courseID)
	}

	finalQuiz := model.FinalQuiz{
		CourseID:      courseID,
		Title:         req.Title,
		NumQuestions:  req.NumQuestions,
		PassThreshold: req.PassThreshold,
		MaxAttempts:   req.MaxAttempts,
		XPReward:      req.XPReward,
	}
	if err := s.finalQuizRepo.Create(&finalQuiz); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: course %d already has a final quiz", ErrAlreadyExists, courseID)
		}
		return nil, fmt.Errorf("error creating final quiz: %w", err)
	}

	log.Info().Uint("finalQuizID", finalQuiz.ID).Uint("courseID", courseID).Msg("Final quiz created")
	var resp dto.FinalQuizConfigResponse
	copier.Copy(&resp, &finalQuiz)
	return &resp, nil
}

func toCourseResponse(course *model.Course) dto.CourseResponse {
	var resp dto.CourseResponse
	copier.Copy(&resp, course)
	return resp
}

func toQuizResponse(quiz *model.Quiz) *dto.QuizResponse {
	var resp dto.QuizResponse
	copier.Copy(&resp, quiz)
	return &resp
}
