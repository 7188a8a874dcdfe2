package service

import (
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/ooskills/formation-api/internal/dto"
	"github.com/ooskills/formation-api/internal/model"
	"github.com/ooskills/formation-api/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ProgressService autosaves per-lesson state and keeps the enrollment's
// aggregate progress in step with it.
type ProgressService interface {
	Autosave(enrollmentID uint, req dto.AutosaveProgressRequest) (*dto.LessonProgressResponse, error)
	GetCourseProgress(enrollmentID uint) (*dto.CourseProgressResponse, error)
	CreateNote(enrollmentID uint, req dto.LessonNoteCreateRequest) (*dto.LessonNoteResponse, error)
	GetNotes(enrollmentID, lessonID uint) ([]dto.LessonNoteResponse, error)
	DeleteNote(enrollmentID, noteID uint) error
}

type progressService struct {
	enrollmentRepo repository.EnrollmentRepository
	progressRepo   repository.LessonProgressRepository
	noteRepo       repository.LessonNoteRepository
	lessonRepo     repository.LessonRepository
	db             *gorm.DB
}

func NewProgressService(
	enrollmentRepo repository.EnrollmentRepository,
	progressRepo repository.LessonProgressRepository,
	noteRepo repository.LessonNoteRepository,
	lessonRepo repository.LessonRepository,
	db *gorm.DB,
) ProgressService {
	return &progressService{
		enrollmentRepo: enrollmentRepo,
		progressRepo:   progressRepo,
		noteRepo:       noteRepo,
		lessonRepo:     lessonRepo,
		db:             db,
	}
}

// Autosave creates or updates the lesson's progress record and recomputes the
// enrollment aggregate, all in one transaction. The enrollment row is locked
// first, which serializes concurrent autosaves for the same enrollment: the
// get-or-create below cannot race itself, and two lessons completing at the
// same time cannot both read a stale completed count.
//
// Update rules: current_slide only moves forward, last_position is
// last-write-wins, time_spent accumulates the delta and completed flips
// false to true exactly once.
func (s *progressService) Autosave(enrollmentID uint, req dto.AutosaveProgressRequest) (*dto.LessonProgressResponse, error) {
	var saved model.LessonProgress

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var enrollment model.Enrollment
		if err := lockForUpdate(tx).First(&enrollment, enrollmentID).Error; err != nil {
			return fmt.Errorf("enrollment not found with ID %d: %w", enrollmentID, err)
		}

		var lesson model.Lesson
		if err := tx.First(&lesson, req.LessonID).Error; err != nil {
			return fmt.Errorf("lesson not found with ID %d: %w", req.LessonID, err)
		}

		now := time.Now()
		var progress model.LessonProgress
		err := tx.Where("enrollment_id = ? AND lesson_id = ?", enrollment.ID, lesson.ID).
			First(&progress).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			progress = model.LessonProgress{
				EnrollmentID: enrollment.ID,
				LessonID:     lesson.ID,
				CurrentSlide: req.CurrentSlide,
				LastPosition: req.LastPosition,
				TimeSpent:    req.TimeSpentDelta,
				Completed:    req.Completed,
			}
			if req.Completed {
				progress.CompletedAt = &now
			}
			if err := tx.Create(&progress).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if req.CurrentSlide > progress.CurrentSlide {
				progress.CurrentSlide = req.CurrentSlide
			}
			progress.LastPosition = req.LastPosition
			progress.TimeSpent += req.TimeSpentDelta
			if req.Completed && !progress.Completed {
				progress.Completed = true
				progress.CompletedAt = &now
			}
			if err := tx.Save(&progress).Error; err != nil {
				return err
			}
		}

		saved = progress
		return recalculateEnrollmentProgress(tx, &enrollment)
	})
	if err != nil {
		return nil, err
	}

	var resp dto.LessonProgressResponse
	copier.Copy(&resp, &saved)
	return &resp, nil
}

// recalculateEnrollmentProgress recomputes the aggregate percentage from the
// completed-lesson count and transitions active enrollments to completed at
// 100. Completed enrollments are never touched again, so progress cannot drop
// back below 100 afterwards.
func recalculateEnrollmentProgress(tx *gorm.DB, enrollment *model.Enrollment) error {
	if enrollment.Status != model.EnrollmentStatusActive {
		return nil
	}

	var total int64
	err := tx.Model(&model.Lesson{}).
		Joins("JOIN sections ON sections.id = lessons.section_id").
		Where("sections.course_id = ? AND sections.deleted_at IS NULL", enrollment.CourseID).
		Count(&total).Error
	if err != nil {
		return err
	}
	if total == 0 {
		return nil
	}

	var completed int64
	err = tx.Model(&model.LessonProgress{}).
		Where("enrollment_id = ? AND completed = ?", enrollment.ID, true).
		Count(&completed).Error
	if err != nil {
		return err
	}

	enrollment.Progress = roundScore(float64(completed) * 100 / float64(total))
	if enrollment.Progress >= 100 {
		now := time.Now()
		enrollment.Status = model.EnrollmentStatusCompleted
		enrollment.CompletedAt = &now
		log.Info().Uint("enrollmentID", enrollment.ID).Msg("Enrollment completed, all lessons done")
	}
	return tx.Save(enrollment).Error
}

func (s *progressService) GetCourseProgress(enrollmentID uint) (*dto.CourseProgressResponse, error) {
	enrollment, err := s.enrollmentRepo.FindByID(enrollmentID)
	if err != nil {
		return nil, fmt.Errorf("enrollment not found with ID %d: %w", enrollmentID, err)
	}

	records, err := s.progressRepo.FindAllByEnrollment(enrollmentID)
	if err != nil {
		return nil, fmt.Errorf("error fetching lesson progress: %w", err)
	}

	resp := dto.CourseProgressResponse{
		Enrollment: toEnrollmentResponse(enrollment),
		Lessons:    make([]dto.LessonProgressResponse, len(records)),
	}
	for i := range records {
		copier.Copy(&resp.Lessons[i], &records[i])
	}
	return &resp, nil
}

func (s *progressService) CreateNote(enrollmentID uint, req dto.LessonNoteCreateRequest) (*dto.LessonNoteResponse, error) {
	if _, err := s.enrollmentRepo.FindByID(enrollmentID); err != nil {
		return nil, fmt.Errorf("enrollment not found with ID %d: %w", enrollmentID, err)
	}
	if _, err := s.lessonRepo.FindByID(req.LessonID); err != nil {
		return nil, fmt.Errorf("lesson not found with ID %d: %w", req.LessonID, err)
	}

	note := model.LessonNote{
		EnrollmentID: enrollmentID,
		LessonID:     req.LessonID,
		Content:      req.Content,
		SlideIndex:   req.SlideIndex,
	}
	if err := s.noteRepo.Create(&note); err != nil {
		return nil, err
	}

	var resp dto.LessonNoteResponse
	copier.Copy(&resp, &note)
	return &resp, nil
}

func (s *progressService) GetNotes(enrollmentID, lessonID uint) ([]dto.LessonNoteResponse, error) {
	notes, err := s.noteRepo.FindAllByEnrollmentAndLesson(enrollmentID, lessonID)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.LessonNoteResponse, len(notes))
	for i := range notes {
		copier.Copy(&resp[i], &notes[i])
	}
	return resp, nil
}

func (s *progressService) DeleteNote(enrollmentID, noteID uint) error {
	return s.noteRepo.Delete(noteID, enrollmentID)
}
