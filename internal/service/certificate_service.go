package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/ooskills/formation-api/internal/dto"
	"github.com/ooskills/formation-api/internal/model"
	"github.com/ooskills/formation-api/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CertificateService issues the one completion credential a (user, course)
// pair can ever hold.
type CertificateService interface {
	Issue(enrollment *model.Enrollment, score float64) (*model.Certificate, error)
	GetUserCertificates(userID uint) ([]dto.CertificateResponse, error)
	VerifyByCode(code string) (*dto.CertificateResponse, error)
}

type certificateService struct {
	certRepo repository.CertificateRepository
	db       *gorm.DB
}

func NewCertificateService(certRepo repository.CertificateRepository, db *gorm.DB) CertificateService {
	return &certificateService{certRepo: certRepo, db: db}
}

// Issue creates the certificate for a completed enrollment. The existence
// pre-check is an optimization; the unique index on (user_id, course_id) is
// the authoritative guard, so a concurrent duplicate insert comes back as
// gorm.ErrDuplicatedKey and is mapped to the same domain error.
func (s *certificateService) Issue(enrollment *model.Enrollment, score float64) (*model.Certificate, error) {
	if enrollment.Status != model.EnrollmentStatusCompleted {
		return nil, ErrCourseNotCompleted
	}

	existing, err := s.certRepo.FindByUserAndCourse(enrollment.UserID, enrollment.CourseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCertificateAlreadyIssued
	}

	code, err := newCertificateCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate certificate code: %w", err)
	}

	cert := model.Certificate{
		UserID:   enrollment.UserID,
		CourseID: enrollment.CourseID,
		Score:    score,
		Code:     code,
	}
	if err := s.db.Create(&cert).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCertificateAlreadyIssued
		}
		return nil, err
	}

	log.Info().
		Uint("userID", enrollment.UserID).
		Uint("courseID", enrollment.CourseID).
		Str("code", cert.Code).
		Msg("Certificate issued")
	return &cert, nil
}

func (s *certificateService) GetUserCertificates(userID uint) ([]dto.CertificateResponse, error) {
	certs, err := s.certRepo.FindAllByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching certificates: %w", err)
	}

	resp := make([]dto.CertificateResponse, 0, len(certs))
	for i := range certs {
		resp = append(resp, toCertificateResponse(&certs[i]))
	}
	return resp, nil
}

// VerifyByCode is the public verification lookup. An unknown code yields
// (nil, nil): invalid credential, not a system failure.
func (s *certificateService) VerifyByCode(code string) (*dto.CertificateResponse, error) {
	cert, err := s.certRepo.FindByCode(code)
	if err != nil {
		return nil, err
	}
	if cert == nil {
		return nil, nil
	}
	resp := toCertificateResponse(cert)
	return &resp, nil
}

func toCertificateResponse(cert *model.Certificate) dto.CertificateResponse {
	var resp dto.CertificateResponse
	copier.Copy(&resp, cert)
	if cert.Course.ID != 0 {
		resp.CourseTitle = cert.Course.Title
	}
	return resp
}
