package repository

import (
	"github.com/ooskills/formation-api/internal/model"
	"gorm.io/gorm"
)

type LessonProgressRepository interface {
	FindAllByEnrollment(enrollmentID uint) ([]model.LessonProgress, error)
	CountCompleted(enrollmentID uint) (int64, error)
}

type lessonProgressRepository struct {
	db *gorm.DB
}

func NewLessonProgressRepository(db *gorm.DB) LessonProgressRepository {
	return &lessonProgressRepository{db: db}
}

func (r *lessonProgressRepository) FindAllByEnrollment(enrollmentID uint) ([]model.LessonProgress, error) {
	var records []model.LessonProgress
	err := r.db.Where("enrollment_id = ?", enrollmentID).
		Order("lesson_id ASC").
		Find(&records).Error
	return records, err
}

func (r *lessonProgressRepository) CountCompleted(enrollmentID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.LessonProgress{}).
		Where("enrollment_id = ? AND completed = ?", enrollmentID, true).
		Count(&count).Error
	return count, err
}
