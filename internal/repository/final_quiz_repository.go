package repository

import (
	"github.com/ooskills/formation-api/internal/model"
	"gorm.io/gorm"
)

type FinalQuizRepository interface {
	Create(quiz *model.FinalQuiz) error
	FindByCourse(courseID uint) (*model.FinalQuiz, error)
}

type finalQuizRepository struct {
	db *gorm.DB
}

func NewFinalQuizRepository(db *gorm.DB) FinalQuizRepository {
	return &finalQuizRepository{db: db}
}

func (r *finalQuizRepository) Create(quiz *model.FinalQuiz) error {
	return r.db.Create(quiz).Error
}

// FindByCourse returns (nil, nil) when the course has no final quiz
// configured.
func (r *finalQuizRepository) FindByCourse(courseID uint) (*model.FinalQuiz, error) {
	var quiz model.FinalQuiz
	err := r.db.Where("course_id = ?", courseID).First(&quiz).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

type FinalQuizAttemptRepository interface {
	CountByPair(enrollmentID, finalQuizID uint) (int64, error)
	FindAllByUser(userID uint) ([]model.FinalQuizAttempt, error)
}

type finalQuizAttemptRepository struct {
	db *gorm.DB
}

func NewFinalQuizAttemptRepository(db *gorm.DB) FinalQuizAttemptRepository {
	return &finalQuizAttemptRepository{db: db}
}

func (r *finalQuizAttemptRepository) CountByPair(enrollmentID, finalQuizID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.FinalQuizAttempt{}).
		Where("enrollment_id = ? AND final_quiz_id = ?", enrollmentID, finalQuizID).
		Count(&count).Error
	return count, err
}

func (r *finalQuizAttemptRepository) FindAllByUser(userID uint) ([]model.FinalQuizAttempt, error) {
	var attempts []model.FinalQuizAttempt
	err := r.db.
		Joins("JOIN enrollments ON enrollments.id = final_quiz_attempts.enrollment_id").
		Where("enrollments.user_id = ?", userID).
		Order("final_quiz_attempts.submitted_at DESC").
		Find(&attempts).Error
	return attempts, err
}
