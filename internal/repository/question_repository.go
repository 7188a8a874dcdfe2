package repository

import (
	"github.com/ooskills/formation-api/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	FindByQuiz(quizID uint) ([]model.QuizQuestion, error)
	FindByIDs(ids []uint) ([]model.QuizQuestion, error)
	FindByCourse(courseID uint) ([]model.QuizQuestion, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) FindByQuiz(quizID uint) ([]model.QuizQuestion, error) {
	var questions []model.QuizQuestion
	err := r.db.Where("quiz_id = ?", quizID).Order("sequence ASC").Find(&questions).Error
	return questions, err
}

func (r *questionRepository) FindByIDs(ids []uint) ([]model.QuizQuestion, error) {
	var questions []model.QuizQuestion
	err := r.db.Where("id IN ?", ids).Find(&questions).Error
	return questions, err
}

// FindByCourse returns the union of every section-quiz's questions in the
// course. This is the pool the final quiz samples from.
func (r *questionRepository) FindByCourse(courseID uint) ([]model.QuizQuestion, error) {
	var questions []model.QuizQuestion
	err := r.db.
		Joins("JOIN quizzes ON quizzes.id = quiz_questions.quiz_id").
		Joins("JOIN sections ON sections.id = quizzes.section_id").
		Where("sections.course_id = ? AND quizzes.deleted_at IS NULL AND sections.deleted_at IS NULL", courseID).
		Find(&questions).Error
	return questions, err
}
