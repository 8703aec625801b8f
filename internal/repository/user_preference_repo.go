package repository

import (
	"Tipside/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserPreferenceRepo interface {
	SavePreference(ctx context.Context, pref *model.UserPreference) error
	GetPreference(ctx context.Context, userID uint64) (*model.UserPreference, error)
}

type UserPreferenceRepoImpl struct {
	db *gorm.DB
}

func NewUserPreferenceRepo(db *gorm.DB) UserPreferenceRepo {
	return &UserPreferenceRepoImpl{db}
}

// SavePreference Upsert 全量覆盖用户偏好快照
func (s *UserPreferenceRepoImpl) SavePreference(ctx context.Context, pref *model.UserPreference) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(pref).Error
}

// GetPreference 无偏好时返回 nil 而不是错误, 上层按零加成退化处理
func (s *UserPreferenceRepoImpl) GetPreference(ctx context.Context, userID uint64) (*model.UserPreference, error) {
	var pref model.UserPreference
	err := s.db.WithContext(ctx).First(&pref, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pref, nil
}
