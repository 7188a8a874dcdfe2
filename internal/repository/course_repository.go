package repository

import (
	"github.com/ooskills/formation-api/internal/model"
	"gorm.io/gorm"
)

type CourseRepository interface {
	Create(course *model.Course) error
	FindByID(id uint) (*model.Course, error)
	FindByIDWithSections(id uint) (*model.Course, error)
	FindAllPublished() ([]model.Course, error)
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(course *model.Course) error {
	// GORM creates nested sections/lessons when they are populated.
	return r.db.Create(course).Error
}

func (r *courseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	if err := r.db.First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) FindByIDWithSections(id uint) (*model.Course, error) {
	var course model.Course
	err := r.db.
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("sections.sequence ASC")
		}).
		Preload("Sections.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lessons.sequence ASC")
		}).
		First(&course, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) FindAllPublished() ([]model.Course, error) {
	var courses []model.Course
	err := r.db.Where("status = ?", model.CourseStatusPublished).
		Order("created_at DESC").
		Find(&courses).Error
	return courses, err
}
