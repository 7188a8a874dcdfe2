package repository

import (
	"github.com/ooskills/formation-api/internal/model"
	"gorm.io/gorm"
)

type QuizAttemptRepository interface {
	FindAllByPair(enrollmentID, quizID uint) ([]model.QuizAttempt, error)
	CountByPair(enrollmentID, quizID uint) (int64, error)
	BestScore(enrollmentID, quizID uint) (float64, error)
}

type quizAttemptRepository struct {
	db *gorm.DB
}

func NewQuizAttemptRepository(db *gorm.DB) QuizAttemptRepository {
	return &quizAttemptRepository{db: db}
}

func (r *quizAttemptRepository) FindAllByPair(enrollmentID, quizID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.db.Where("enrollment_id = ? AND quiz_id = ?", enrollmentID, quizID).
		Order("attempt_number ASC").
		Find(&attempts).Error
	return attempts, err
}

func (r *quizAttemptRepository) CountByPair(enrollmentID, quizID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.QuizAttempt{}).
		Where("enrollment_id = ? AND quiz_id = ?", enrollmentID, quizID).
		Count(&count).Error
	return count, err
}

func (r *quizAttemptRepository) BestScore(enrollmentID, quizID uint) (float64, error) {
	var best *float64
	err := r.db.Model(&model.QuizAttempt{}).
		Where("enrollment_id = ? AND quiz_id = ?", enrollmentID, quizID).
		Select("MAX(score)").
		Scan(&best).Error
	if err != nil || best == nil {
		return 0, err
	}
	return *best, nil
}
