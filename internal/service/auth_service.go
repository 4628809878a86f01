package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"artfeeds/internal/auth"
	apperrors "artfeeds/internal/errors"
	"artfeeds/internal/mail"
	"artfeeds/internal/model"
	"artfeeds/internal/repository"
)

const bcryptCost = 10

// RegisterInput carries validated registration data into the service.
type RegisterInput struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	DOB         *time.Time
	Password    string
	Preferences []string
}

// AuthService handles registration, sessions and password recovery.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, user *model.User, err error)
	Refresh(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken, accessToken string) error
	ForgotPassword(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, code string) error
	ResetPassword(ctx context.Context, email, currentPassword, newPassword string) error
	ResetPasswordByEmail(ctx context.Context, email, newPassword string) error
	GetUserByID(ctx context.Context, id uint) (*model.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	otpStore   auth.OTPStoreInterface
	mailer     mail.Mailer
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	otpStore auth.OTPStoreInterface,
	mailer mail.Mailer,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
		otpStore:   otpStore,
		mailer:     mailer,
	}
}

// Register creates a new user with a hashed password. Duplicate emails are
// rejected before any document is written.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		Phone:        input.Phone,
		DOB:          input.DOB,
		PasswordHash: string(hashedPassword),
		Preferences:  model.StringList(input.Preferences),
		Role:         "user",
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user and returns access and refresh tokens. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, email, password string) (accessToken, refreshToken string, user *model.User, err error) {
	user, err = s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", "", nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", nil, apperrors.ErrInvalidCredentials
	}

	accessToken, err = s.jwtService.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.ID, user.Email, auth.RefreshTokenExpiry); err != nil {
		return "", "", nil, fmt.Errorf("store refresh token: %w", err)
	}

	return accessToken, refreshToken, user, nil
}

// Refresh validates a refresh token and returns a new access token.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return "", apperrors.ErrInvalidRefreshToken
	}

	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return "", apperrors.ErrInvalidRefreshToken
	}

	storedUserID, storedEmail, err := s.tokenStore.GetRefreshToken(ctx, tokenID)
	if err != nil {
		return "", apperrors.ErrInvalidRefreshToken
	}

	if storedUserID != claims.UserID || storedEmail != claims.Email {
		return "", apperrors.ErrInvalidRefreshToken
	}

	accessToken, err := s.jwtService.GenerateAccessToken(claims.UserID, claims.Email, claims.Role)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}

	return accessToken, nil
}

// Logout invalidates the refresh token and blacklists the current access token
// for the remainder of its lifetime.
func (s *authService) Logout(ctx context.Context, refreshToken, accessToken string) error {
	if refreshToken != "" {
		if tokenID, err := s.jwtService.ExtractTokenID(refreshToken); err == nil {
			if err := s.tokenStore.DeleteRefreshToken(ctx, tokenID); err != nil {
				return err
			}
		}
	}

	if accessToken != "" {
		if claims, err := s.jwtService.ValidateToken(accessToken); err == nil && claims.ID != "" {
			ttl := time.Until(claims.ExpiresAt.Time)
			if ttl > 0 {
				return s.tokenStore.BlacklistAccessToken(ctx, claims.ID, ttl)
			}
		}
	}

	return nil
}

// ForgotPassword generates a time-boxed OTP for the email and mails it.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	if _, err := s.userRepo.FindByEmail(ctx, email); err != nil {
		return apperrors.ErrUserNotFound
	}

	code, err := s.otpStore.Generate(ctx, email)
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}

	if err := s.mailer.SendOTP(email, code); err != nil {
		return fmt.Errorf("send otp: %w", err)
	}

	return nil
}

// VerifyOTP checks the code against the stored, unexpired OTP for the email.
func (s *authService) VerifyOTP(ctx context.Context, email, code string) error {
	ok, err := s.otpStore.Verify(ctx, email, code)
	if err != nil {
		return fmt.Errorf("verify otp: %w", err)
	}
	if !ok {
		return apperrors.ErrInvalidOTP
	}
	return nil
}

// ResetPassword is the current-password-checked flow: the stored hash must
// match currentPassword before the new one is accepted.
func (s *authService) ResetPassword(ctx context.Context, email, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return apperrors.ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return apperrors.ErrPasswordMismatch
	}

	return s.setPassword(ctx, user, newPassword)
}

// ResetPasswordByEmail is the OTP recovery flow: no current-password check.
// The active OTP for the email is consumed on success.
func (s *authService) ResetPasswordByEmail(ctx context.Context, email, newPassword string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return apperrors.ErrUserNotFound
	}

	if err := s.setPassword(ctx, user, newPassword); err != nil {
		return err
	}

	return s.otpStore.Delete(ctx, email)
}

// GetUserByID loads a user's profile data.
func (s *authService) GetUserByID(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) setPassword(ctx context.Context, user *model.User, newPassword string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if _, err := s.userRepo.UpdatePassword(ctx, user.ID, string(hashed)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}
