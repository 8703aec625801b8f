package service

import (
	"Tipside/internal/api/dto"
	"Tipside/internal/model"
	"Tipside/internal/repository"
	"context"
	"time"
)

type PreferenceService interface {
	SavePreference(ctx context.Context, userID uint64, req *dto.PreferenceSaveDTO) error
	GetPreference(ctx context.Context, userID uint64) (*dto.PreferenceDTO, error)

	BlockUser(ctx context.Context, userID, blockedID uint64) error
	UnblockUser(ctx context.Context, userID, blockedID uint64) error
	HidePostForUser(ctx context.Context, userID, postID uint64) error
}

type preferenceServiceImpl struct {
	prefRepo     repository.UserPreferenceRepo
	relationRepo repository.UserRelationRepo
	postRepo     repository.PostRepo
}

func NewPreferenceService(
	prefRepo repository.UserPreferenceRepo,
	relationRepo repository.UserRelationRepo,
	postRepo repository.PostRepo,
) PreferenceService {
	return &preferenceServiceImpl{
		prefRepo:     prefRepo,
		relationRepo: relationRepo,
		postRepo:     postRepo,
	}
}

func (s *preferenceServiceImpl) SavePreference(ctx context.Context, userID uint64, req *dto.PreferenceSaveDTO) error {
	pref := &model.UserPreference{
		UserID:           userID,
		FavoriteSports:   req.FavoriteSports,
		FavoriteBetTypes: req.FavoriteBetTypes,
		Weights:          req.Weights,
		UpdatedAt:        time.Now(),
	}
	if pref.FavoriteSports == nil {
		pref.FavoriteSports = model.StringList{}
	}
	if pref.FavoriteBetTypes == nil {
		pref.FavoriteBetTypes = model.StringList{}
	}
	return s.prefRepo.SavePreference(ctx, pref)
}

func (s *preferenceServiceImpl) GetPreference(ctx context.Context, userID uint64) (*dto.PreferenceDTO, error) {
	pref, err := s.prefRepo.GetPreference(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pref == nil {
		return &dto.PreferenceDTO{
			FavoriteSports:   []string{},
			FavoriteBetTypes: []string{},
		}, nil
	}
	return &dto.PreferenceDTO{
		FavoriteSports:   pref.FavoriteSports,
		FavoriteBetTypes: pref.FavoriteBetTypes,
		Weights:          pref.Weights,
		UpdatedAt:        pref.UpdatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

func (s *preferenceServiceImpl) BlockUser(ctx context.Context, userID, blockedID uint64) error {
	if userID == blockedID {
		return ErrBlockSelf
	}
	err := s.relationRepo.CreateBlock(ctx, &model.UserBlock{
		UserID:    userID,
		BlockedID: blockedID,
		CreatedAt: time.Now(),
	})
	if err != nil && !isDuplicateError(err) {
		return err
	}
	return nil
}

func (s *preferenceServiceImpl) UnblockUser(ctx context.Context, userID, blockedID uint64) error {
	return s.relationRepo.DeleteBlock(ctx, userID, blockedID)
}

func (s *preferenceServiceImpl) HidePostForUser(ctx context.Context, userID, postID uint64) error {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil || post == nil || post.IsDeleted {
		return ErrPostNotFound
	}
	err = s.relationRepo.CreateHide(ctx, &model.PostHide{
		UserID:    userID,
		PostID:    postID,
		CreatedAt: time.Now(),
	})
	if err != nil && !isDuplicateError(err) {
		return err
	}
	return nil
}
