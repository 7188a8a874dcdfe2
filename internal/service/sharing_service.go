package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/ooskills/formation-api/internal/dto"
	"github.com/ooskills/formation-api/internal/model"
	"github.com/ooskills/formation-api/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SharingService manages course share tokens. Validation both checks and
// consumes: a valid token has its use counter bumped atomically, so two
// concurrent consumers of a one-use token cannot both succeed.
type SharingService interface {
	Create(req dto.ShareTokenCreateRequest) (*dto.ShareTokenResponse, error)
	ValidateAndConsume(token string) (*dto.ShareTokenResponse, error)
	ListByCreator(creatorID uint) ([]dto.ShareTokenResponse, error)
	Revoke(id, creatorID uint) error
}

type sharingService struct {
	tokenRepo  repository.ShareTokenRepository
	courseRepo repository.CourseRepository
	db         *gorm.DB
}

func NewSharingService(tokenRepo repository.ShareTokenRepository, courseRepo repository.CourseRepository, db *gorm.DB) SharingService {
	return &sharingService{tokenRepo: tokenRepo, courseRepo: courseRepo, db: db}
}

func (s *sharingService) Create(req dto.ShareTokenCreateRequest) (*dto.ShareTokenResponse, error) {
	if _, err := s.courseRepo.FindByID(req.CourseID); err != nil {
		return nil, err
	}

	raw, err := randomToken(32)
	if err != nil {
		return nil, fmt.Errorf("error generating share token: %w", err)
	}

	token := model.ShareToken{
		CourseID:    req.CourseID,
		CreatedByID: req.UserID,
		Token:       raw,
		Visibility:  req.Visibility,
		MaxUses:     req.MaxUses,
		IsActive:    true,
	}
	if token.Visibility == "" {
		token.Visibility = model.ShareVisibilityToken
	}
	if req.ExpiresInDays != nil {
		expiry := time.Now().AddDate(0, 0, *req.ExpiresInDays)
		token.ExpiresAt = &expiry
	}

	if err := s.tokenRepo.Create(&token); err != nil {
		return nil, fmt.Errorf("error creating share token: %w", err)
	}

	log.Info().Uint("courseID", token.CourseID).Uint("createdByID", token.CreatedByID).Msg("Share token created")
	resp := toShareTokenResponse(&token)
	return &resp, nil
}

// ValidateAndConsume returns (nil, nil) for every invalid case: unknown,
// revoked, expired, or exhausted tokens are indistinguishable to the caller.
func (s *sharingService) ValidateAndConsume(raw string) (*dto.ShareTokenResponse, error) {
	var token model.ShareToken
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := lockForUpdate(tx).
			Where("token = ? AND is_active = ?", raw, true).
			First(&token).Error
		if err != nil {
			return err
		}
		if !token.IsValid(time.Now()) {
			return gorm.ErrRecordNotFound
		}
		token.UsesCount++
		return tx.Save(&token).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	resp := toShareTokenResponse(&token)
	return &resp, nil
}

func (s *sharingService) ListByCreator(creatorID uint) ([]dto.ShareTokenResponse, error) {
	tokens, err := s.tokenRepo.FindAllByCreator(creatorID)
	if err != nil {
		return nil, fmt.Errorf("error fetching share tokens: %w", err)
	}

	resp := make([]dto.ShareTokenResponse, 0, len(tokens))
	for i := range tokens {
		resp = append(resp, toShareTokenResponse(&tokens[i]))
	}
	return resp, nil
}

func (s *sharingService) Revoke(id, creatorID uint) error {
	token, err := s.tokenRepo.FindByIDAndCreator(id, creatorID)
	if err != nil {
		return err
	}
	if !token.IsActive {
		return nil
	}
	token.IsActive = false
	if err := s.tokenRepo.Save(token); err != nil {
		return fmt.Errorf("error revoking share token: %w", err)
	}
	log.Info().Uint("tokenID", token.ID).Msg("Share token revoked")
	return nil
}

func toShareTokenResponse(token *model.ShareToken) dto.ShareTokenResponse {
	var resp dto.ShareTokenResponse
	copier.Copy(&resp, token)
	resp.IsValid = token.IsValid(time.Now())
	return resp
}
