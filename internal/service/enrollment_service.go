package service

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/ooskills/formation-api/internal/dto"
	"github.com/ooskills/formation-api/internal/model"
	"github.com/ooskills/formation-api/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type EnrollmentService interface {
	Enroll(userID, courseID uint) (*dto.EnrollmentResponse, error)
	GetEnrollment(id uint) (*dto.EnrollmentResponse, error)
	GetUserEnrollments(userID uint) ([]dto.EnrollmentResponse, error)
}

type enrollmentService struct {
	enrollmentRepo repository.EnrollmentRepository
	db             *gorm.DB
}

func NewEnrollmentService(enrollmentRepo repository.EnrollmentRepository, db *gorm.DB) EnrollmentService {
	return &enrollmentService{enrollmentRepo: enrollmentRepo, db: db}
}

// Enroll registers a user in a course. The (user, course) pair is unique: a
// live enrollment makes this fail with ErrAlreadyEnrolled, while a cancelled
// one is reactivated in place rather than duplicated.
func (s *enrollmentService) Enroll(userID, courseID uint) (*dto.EnrollmentResponse, error) {
	var enrollment model.Enrollment

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var course model.Course
		if err := tx.First(&course, courseID).Error; err != nil {
			return fmt.Errorf("course not found with ID %d: %w", courseID, err)
		}

		var existing model.Enrollment
		err := lockForUpdate(tx).
			Where("user_id = ? AND course_id = ?", userID, courseID).
			First(&existing).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			enrollment = model.Enrollment{
				UserID:   userID,
				CourseID: courseID,
				Status:   model.EnrollmentStatusActive,
			}
			if err := tx.Create(&enrollment).Error; err != nil {
				return err
			}
			// Keep the course's student counter in the store, not in process
			// memory.
			return tx.Model(&model.Course{}).
				Where("id = ?", courseID).
				UpdateColumn("students", gorm.Expr("students + ?", 1)).Error
		case err != nil:
			return err
		case existing.Status != model.EnrollmentStatusCancelled:
			return ErrAlreadyEnrolled
		default:
			existing.Status = model.EnrollmentStatusActive
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			enrollment = existing
			return nil
		}
	})
	if err != nil {
		return nil, err
	}

	log.Info().Uint("userID", userID).Uint("courseID", courseID).Uint("enrollmentID", enrollment.ID).Msg("User enrolled")
	resp := toEnrollmentResponse(&enrollment)
	return &resp, nil
}

func (s *enrollmentService) GetEnrollment(id uint) (*dto.EnrollmentResponse, error) {
	enrollment, err := s.enrollmentRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("enrollment not found with ID %d: %w", id, err)
	}
	resp := toEnrollmentResponse(enrollment)
	return &resp, nil
}

func (s *enrollmentService) GetUserEnrollments(userID uint) ([]dto.EnrollmentResponse, error) {
	enrollments, err := s.enrollmentRepo.FindAllByUser(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to fetch enrollments")
		return nil, fmt.Errorf("error fetching enrollments: %w", err)
	}

	resp := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for i := range enrollments {
		resp = append(resp, toEnrollmentResponse(&enrollments[i]))
	}
	return resp, nil
}

func toEnrollmentResponse(enrollment *model.Enrollment) dto.EnrollmentResponse {
	var resp dto.EnrollmentResponse
	copier.Copy(&resp, enrollment)
	if enrollment.Course.ID != 0 {
		resp.CourseTitle = enrollment.Course.Title
	}
	return resp
}
