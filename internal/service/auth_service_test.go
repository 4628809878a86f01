package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"artfeeds/internal/auth"
	apperrors "artfeeds/internal/errors"
	"artfeeds/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id uint, updates map[string]interface{}) (int64, error) {
	args := m.Called(ctx, id, updates)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) UpdatePreferences(ctx context.Context, id uint, preferences []string) (int64, error) {
	args := m.Called(ctx, id, preferences)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) (int64, error) {
	args := m.Called(ctx, id, passwordHash)
	return args.Get(0).(int64), args.Error(1)
}

// MockTokenStore is a mock implementation of auth.TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, email string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, email, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uint, string, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uint), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func (m *MockTokenStore) BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsAccessTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

// MockOTPStore is a mock implementation of auth.OTPStoreInterface.
type MockOTPStore struct {
	mock.Mock
}

func (m *MockOTPStore) Generate(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *MockOTPStore) Verify(ctx context.Context, email, code string) (bool, error) {
	args := m.Called(ctx, email, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockOTPStore) Delete(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// MockMailer is a mock implementation of mail.Mailer.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendOTP(to, code string) error {
	args := m.Called(to, code)
	return args.Error(0)
}

func newTestAuthService(userRepo *MockUserRepository, tokenStore *MockTokenStore, otpStore *MockOTPStore, mailer *MockMailer) AuthService {
	return NewAuthService(userRepo, auth.NewJWTService("test-secret"), tokenStore, otpStore, mailer)
}

func TestAuthService_Register(t *testing.T) {
	dob := time.Date(1995, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		input         RegisterInput
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name: "successful registration",
			input: RegisterInput{
				FirstName:   "Alice",
				LastName:    "Smith",
				Email:       "alice@example.com",
				Phone:       "5551234567",
				DOB:         &dob,
				Password:    "password1",
				Preferences: []string{"Sports", "Space"},
			},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name: "email already taken",
			input: RegisterInput{
				FirstName:   "Bob",
				LastName:    "Jones",
				Email:       "taken@example.com",
				Phone:       "5557654321",
				Password:    "password1",
				Preferences: []string{"Tech"},
			},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "taken@example.com").Return(&model.User{Email: "taken@example.com"}, nil)
			},
			expectedError: apperrors.ErrEmailExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := newTestAuthService(mockRepo, new(MockTokenStore), new(MockOTPStore), new(MockMailer))
			user, err := service.Register(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.input.Email, user.Email)
				assert.Equal(t, "user", user.Role)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, tt.input.Password, user.PasswordHash)
				assert.ElementsMatch(t, tt.input.Preferences, []string(user.Preferences))
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password1"), bcryptCost)

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "alice@example.com",
			password: "password1",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(&model.User{
					ID:           7,
					Email:        "alice@example.com",
					PasswordHash: string(hashed),
					Role:         "user",
				}, nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, uint(7), "alice@example.com", auth.RefreshTokenExpiry).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "wrong password",
			email:    "alice@example.com",
			password: "wrongpass1",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(&model.User{
					ID:           7,
					Email:        "alice@example.com",
					PasswordHash: string(hashed),
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "unknown email looks the same as wrong password",
			email:    "nobody@example.com",
			password: "password1",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(mockRepo, mockTokenStore)

			service := newTestAuthService(mockRepo, mockTokenStore, new(MockOTPStore), new(MockMailer))
			accessToken, refreshToken, user, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, accessToken)
				assert.Empty(t, refreshToken)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
			}

			mockRepo.AssertExpectations(t)
			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_Refresh(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")

	t.Run("valid refresh token yields a new access token", func(t *testing.T) {
		tokenID, refreshToken, err := jwtService.GenerateRefreshToken(7, "alice@example.com", "user")
		assert.NoError(t, err)

		mockTokenStore := new(MockTokenStore)
		mockTokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(uint(7), "alice@example.com", nil)

		service := NewAuthService(new(MockUserRepository), jwtService, mockTokenStore, new(MockOTPStore), new(MockMailer))
		accessToken, err := service.Refresh(context.Background(), refreshToken)

		assert.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		mockTokenStore.AssertExpectations(t)
	})

	t.Run("refresh token unknown to the store is rejected", func(t *testing.T) {
		tokenID, refreshToken, err := jwtService.GenerateRefreshToken(7, "alice@example.com", "user")
		assert.NoError(t, err)

		mockTokenStore := new(MockTokenStore)
		mockTokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(uint(0), "", assert.AnError)

		service := NewAuthService(new(MockUserRepository), jwtService, mockTokenStore, new(MockOTPStore), new(MockMailer))
		accessToken, err := service.Refresh(context.Background(), refreshToken)

		assert.Equal(t, apperrors.ErrInvalidRefreshToken, err)
		assert.Empty(t, accessToken)
	})

	t.Run("garbage refresh token is rejected", func(t *testing.T) {
		service := NewAuthService(new(MockUserRepository), jwtService, new(MockTokenStore), new(MockOTPStore), new(MockMailer))
		accessToken, err := service.Refresh(context.Background(), "not-a-token")

		assert.Equal(t, apperrors.ErrInvalidRefreshToken, err)
		assert.Empty(t, accessToken)
	})
}

func TestAuthService_ForgotPassword(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		setupMock     func(*MockUserRepository, *MockOTPStore, *MockMailer)
		expectedError error
	}{
		{
			name:  "otp generated and mailed",
			email: "alice@example.com",
			setupMock: func(mRepo *MockUserRepository, mOTP *MockOTPStore, mMail *MockMailer) {
				mRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(&model.User{Email: "alice@example.com"}, nil)
				mOTP.On("Generate", mock.Anything, "alice@example.com").Return("123456", nil)
				mMail.On("SendOTP", "alice@example.com", "123456").Return(nil)
			},
			expectedError: nil,
		},
		{
			name:  "unknown email",
			email: "nobody@example.com",
			setupMock: func(mRepo *MockUserRepository, mOTP *MockOTPStore, mMail *MockMailer) {
				mRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockOTPStore := new(MockOTPStore)
			mockMailer := new(MockMailer)
			tt.setupMock(mockRepo, mockOTPStore, mockMailer)

			service := newTestAuthService(mockRepo, new(MockTokenStore), mockOTPStore, mockMailer)
			err := service.ForgotPassword(context.Background(), tt.email)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
			mockOTPStore.AssertExpectations(t)
			mockMailer.AssertExpectations(t)
		})
	}
}

func TestAuthService_VerifyOTP(t *testing.T) {
	t.Run("matching code", func(t *testing.T) {
		mockOTPStore := new(MockOTPStore)
		mockOTPStore.On("Verify", mock.Anything, "alice@example.com", "123456").Return(true, nil)

		service := newTestAuthService(new(MockUserRepository), new(MockTokenStore), mockOTPStore, new(MockMailer))
		assert.NoError(t, service.VerifyOTP(context.Background(), "alice@example.com", "123456"))
	})

	t.Run("wrong or expired code", func(t *testing.T) {
		mockOTPStore := new(MockOTPStore)
		mockOTPStore.On("Verify", mock.Anything, "alice@example.com", "000000").Return(false, nil)

		service := newTestAuthService(new(MockUserRepository), new(MockTokenStore), mockOTPStore, new(MockMailer))
		err := service.VerifyOTP(context.Background(), "alice@example.com", "000000")
		assert.Equal(t, apperrors.ErrInvalidOTP, err)
	})
}

func TestAuthService_ResetPassword(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("oldpass1"), bcryptCost)
	user := &model.User{ID: 7, Email: "alice@example.com", PasswordHash: string(hashed)}

	t.Run("current password must match", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(user, nil)

		service := newTestAuthService(mockRepo, new(MockTokenStore), new(MockOTPStore), new(MockMailer))
		err := service.ResetPassword(context.Background(), "alice@example.com", "wrongpass", "newpass1")

		assert.Equal(t, apperrors.ErrPasswordMismatch, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("matching current password updates the hash", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(user, nil)
		mockRepo.On("UpdatePassword", mock.Anything, uint(7), mock.AnythingOfType("string")).Return(int64(1), nil)

		service := newTestAuthService(mockRepo, new(MockTokenStore), new(MockOTPStore), new(MockMailer))
		err := service.ResetPassword(context.Background(), "alice@example.com", "oldpass1", "newpass1")

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("recovery flow skips the current-password check and consumes the otp", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(user, nil)
		mockRepo.On("UpdatePassword", mock.Anything, uint(7), mock.AnythingOfType("string")).Return(int64(1), nil)

		mockOTPStore := new(MockOTPStore)
		mockOTPStore.On("Delete", mock.Anything, "alice@example.com").Return(nil)

		service := newTestAuthService(mockRepo, new(MockTokenStore), mockOTPStore, new(MockMailer))
		err := service.ResetPasswordByEmail(context.Background(), "alice@example.com", "newpass1")

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
		mockOTPStore.AssertExpectations(t)
	})
}

func TestAuthService_Logout(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")

	t.Run("refresh token removed and access token blacklisted", func(t *testing.T) {
		tokenID, refreshToken, err := jwtService.GenerateRefreshToken(7, "alice@example.com", "user")
		assert.NoError(t, err)
		accessToken, err := jwtService.GenerateAccessToken(7, "alice@example.com", "user")
		assert.NoError(t, err)

		mockTokenStore := new(MockTokenStore)
		mockTokenStore.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)
		mockTokenStore.On("BlacklistAccessToken", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("time.Duration")).Return(nil)

		service := NewAuthService(new(MockUserRepository), jwtService, mockTokenStore, new(MockOTPStore), new(MockMailer))
		assert.NoError(t, service.Logout(context.Background(), refreshToken, accessToken))
		mockTokenStore.AssertExpectations(t)
	})

	t.Run("missing cookies are a no-op", func(t *testing.T) {
		service := NewAuthService(new(MockUserRepository), jwtService, new(MockTokenStore), new(MockOTPStore), new(MockMailer))
		assert.NoError(t, service.Logout(context.Background(), "", ""))
	})
}
