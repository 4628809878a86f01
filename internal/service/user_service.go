package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "artfeeds/internal/errors"
	"artfeeds/internal/model"
	"artfeeds/internal/repository"
)

// ProfileUpdate carries partial profile data; empty fields keep existing values.
type ProfileUpdate struct {
	FirstName string
	LastName  string
	Phone     string
	DOB       *time.Time
}

// UserService handles profile, preference and password settings.
type UserService interface {
	GetProfile(ctx context.Context, userID uint) (*model.User, error)
	UpdateProfile(ctx context.Context, userID uint, upd ProfileUpdate) (*model.User, error)
	UpdatePreferences(ctx context.Context, userID uint, preferences []string) (*model.User, error)
	ChangePassword(ctx context.Context, userID uint, newPassword string) error
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// GetProfile loads a user by id.
func (s *userService) GetProfile(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies non-empty profile fields and returns the fresh user.
func (s *userService) UpdateProfile(ctx context.Context, userID uint, upd ProfileUpdate) (*model.User, error) {
	if _, err := s.GetProfile(ctx, userID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if upd.FirstName != "" {
		updates["first_name"] = upd.FirstName
	}
	if upd.LastName != "" {
		updates["last_name"] = upd.LastName
	}
	if upd.Phone != "" {
		updates["phone"] = upd.Phone
	}
	if upd.DOB != nil {
		updates["dob"] = upd.DOB
	}

	if len(updates) > 0 {
		if _, err := s.repo.UpdateProfile(ctx, userID, updates); err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
	}

	return s.GetProfile(ctx, userID)
}

// UpdatePreferences replaces the user's category preferences; at least one
// category must remain selected.
func (s *userService) UpdatePreferences(ctx context.Context, userID uint, preferences []string) (*model.User, error) {
	if len(preferences) == 0 {
		return nil, apperrors.ErrPreferencesRequired
	}

	if _, err := s.GetProfile(ctx, userID); err != nil {
		return nil, err
	}

	if _, err := s.repo.UpdatePreferences(ctx, userID, preferences); err != nil {
		return nil, fmt.Errorf("update preferences: %w", err)
	}

	return s.GetProfile(ctx, userID)
}

// ChangePassword sets a new password for an authenticated session. Unlike the
// recovery reset flow this does not re-check the previous password.
func (s *userService) ChangePassword(ctx context.Context, userID uint, newPassword string) error {
	if _, err := s.GetProfile(ctx, userID); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if _, err := s.repo.UpdatePassword(ctx, userID, string(hashed)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return nil
}
