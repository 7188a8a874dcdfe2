package repository

import (
	"github.com/ooskills/formation-api/internal/model"
	"gorm.io/gorm"
)

type LessonNoteRepository interface {
	Create(note *model.LessonNote) error
	FindAllByEnrollmentAndLesson(enrollmentID, lessonID uint) ([]model.LessonNote, error)
	Delete(id, enrollmentID uint) error
}

type lessonNoteRepository struct {
	db *gorm.DB
}

func NewLessonNoteRepository(db *gorm.DB) LessonNoteRepository {
	return &lessonNoteRepository{db: db}
}

func (r *lessonNoteRepository) Create(note *model.LessonNote) error {
	return r.db.Create(note).Error
}

func (r *lessonNoteRepository) FindAllByEnrollmentAndLesson(enrollmentID, lessonID uint) ([]model.LessonNote, error) {
	var notes []model.LessonNote
	err := r.db.Where("enrollment_id = ? AND lesson_id = ?", enrollmentID, lessonID).
		Order("slide_index ASC, created_at ASC").
		Find(&notes).Error
	return notes, err
}

func (r *lessonNoteRepository) Delete(id, enrollmentID uint) error {
	res := r.db.Where("id = ? AND enrollment_id = ?", id, enrollmentID).Delete(&model.LessonNote{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
