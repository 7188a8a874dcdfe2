package repository

import (
	"github.com/ooskills/formation-api/internal/model"
	"gorm.io/gorm"
)

type EnrollmentRepository interface {
	FindByID(id uint) (*model.Enrollment, error)
	FindByUserAndCourse(userID, courseID uint) (*model.Enrollment, error)
	FindAllByUser(userID uint) ([]model.Enrollment, error)
}

type enrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) FindByID(id uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	if err := r.db.First(&enrollment, id).Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// FindByUserAndCourse returns (nil, nil) when no enrollment exists for the
// pair, so callers can distinguish absence from store failure.
func (r *enrollmentRepository) FindByUserAndCourse(userID, courseID uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *enrollmentRepository) FindAllByUser(userID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.db.Preload("Course").
		Where("user_id = ?", userID).
		Order("enrolled_at DESC").
		Find(&enrollments).Error
	return enrollments, err
}
