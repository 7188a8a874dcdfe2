package repository

import (
	"github.com/ooskills/formation-api/internal/model"
	"gorm.io/gorm"
)

type ShareTokenRepository interface {
	Create(token *model.ShareToken) error
	FindAllByCreator(creatorID uint) ([]model.ShareToken, error)
	FindByIDAndCreator(id, creatorID uint) (*model.ShareToken, error)
	Save(token *model.ShareToken) error
}

type shareTokenRepository struct {
	db *gorm.DB
}

func NewShareTokenRepository(db *gorm.DB) ShareTokenRepository {
	return &shareTokenRepository{db: db}
}

func (r *shareTokenRepository) Create(token *model.ShareToken) error {
	return r.db.Create(token).Error
}

func (r *shareTokenRepository) FindAllByCreator(creatorID uint) ([]model.ShareToken, error) {
	var tokens []model.ShareToken
	err := r.db.Preload("Course").
		Where("created_by_id = ?", creatorID).
		Order("created_at DESC").
		Find(&tokens).Error
	return tokens, err
}

func (r *shareTokenRepository) FindByIDAndCreator(id, creatorID uint) (*model.ShareToken, error) {
	var token model.ShareToken
	err := r.db.Where("id = ? AND created_by_id = ?", id, creatorID).First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *shareTokenRepository) Save(token *model.ShareToken) error {
	return r.db.Save(token).Error
}
