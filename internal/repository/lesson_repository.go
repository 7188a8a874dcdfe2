package repository

import (
	"github.com/ooskills/formation-api/internal/model"
	"gorm.io/gorm"
)

type LessonRepository interface {
	FindByID(id uint) (*model.Lesson, error)
	CountByCourse(courseID uint) (int64, error)
}

type lessonRepository struct {
	db *gorm.DB
}

func NewLessonRepository(db *gorm.DB) LessonRepository {
	return &lessonRepository{db: db}
}

func (r *lessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	if err := r.db.First(&lesson, id).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *lessonRepository) CountByCourse(courseID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Lesson{}).
		Joins("JOIN sections ON sections.id = lessons.section_id").
		Where("sections.course_id = ? AND sections.deleted_at IS NULL", courseID).
		Count(&count).Error
	return count, err
}
