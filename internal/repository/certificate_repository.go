package repository

import (
	"github.com/ooskills/formation-api/internal/model"
	"gorm.io/gorm"
)

type CertificateRepository interface {
	FindByUserAndCourse(userID, courseID uint) (*model.Certificate, error)
	FindByCode(code string) (*model.Certificate, error)
	FindAllByUser(userID uint) ([]model.Certificate, error)
}

type certificateRepository struct {
	db *gorm.DB
}

func NewCertificateRepository(db *gorm.DB) CertificateRepository {
	return &certificateRepository{db: db}
}

func (r *certificateRepository) FindByUserAndCourse(userID, courseID uint) (*model.Certificate, error) {
	var cert model.Certificate
	err := r.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&cert).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

// FindByCode is the public verification lookup; an unknown code is a plain
// (nil, nil) result, not an error.
func (r *certificateRepository) FindByCode(code string) (*model.Certificate, error) {
	var cert model.Certificate
	err := r.db.Preload("Course").Where("code = ?", code).First(&cert).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

func (r *certificateRepository) FindAllByUser(userID uint) ([]model.Certificate, error) {
	var certs []model.Certificate
	err := r.db.Preload("Course").
		Where("user_id = ?", userID).
		Order("issued_at DESC").
		Find(&certs).Error
	return certs, err
}
