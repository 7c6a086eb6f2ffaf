package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"parampara/internal/auth"
	"parampara/internal/errors"
	"parampara/internal/model"
	"parampara/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration, login, and session lifecycle.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*model.User, error)
	Login(ctx context.Context, usernameOrEmail, password string) (accessToken, refreshToken string, user *model.User, err error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
	DeleteAccount(ctx context.Context, userID uint) error
}

type authService struct {
	userRepo     repository.UserRepository
	jwtService   *auth.JWTService
	sessionStore auth.SessionStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, sessionStore auth.SessionStoreInterface) AuthService {
	return &authService{
		userRepo:     userRepo,
		jwtService:   jwtService,
		sessionStore: sessionStore,
	}
}

// Register creates a new user with a bcrypt password hash. The plaintext
// password never leaves this method.
func (s *authService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, errors.ErrInvalidInput
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, errors.ErrInvalidInput
	}

	taken, err := s.userRepo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, fmt.Errorf("check identity: %w", err)
	}
	if taken {
		return nil, errors.ErrDuplicateIdentity
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Two concurrent registrations can pass the pre-check; the unique
		// index decides the race.
		if err == gorm.ErrDuplicatedKey {
			return nil, errors.ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login authenticates by username or email and returns session tokens. Unknown
// identity and wrong password produce the same error so callers cannot tell
// which part was wrong.
func (s *authService) Login(ctx context.Context, usernameOrEmail, password string) (string, string, *model.User, error) {
	user, err := s.userRepo.FindByIdentity(ctx, usernameOrEmail)
	if err != nil {
		return "", "", nil, errors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", nil, errors.ErrInvalidCredentials
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Username)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.sessionStore.StoreRefreshToken(ctx, tokenID, user.ID, user.Username, auth.RefreshTokenExpiry); err != nil {
		return "", "", nil, fmt.Errorf("store refresh token: %w", err)
	}

	return accessToken, refreshToken, user, nil
}

// RefreshToken validates a refresh token against the session store and issues
// a new access token.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return "", errors.ErrInvalidCredentials
	}

	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return "", errors.ErrInvalidCredentials
	}

	storedUserID, storedUsername, err := s.sessionStore.GetRefreshToken(ctx, tokenID)
	if err != nil {
		return "", errors.ErrInvalidCredentials
	}
	if storedUserID != claims.UserID || storedUsername != claims.Username {
		return "", errors.ErrInvalidCredentials
	}

	accessToken, err := s.jwtService.GenerateAccessToken(claims.UserID, claims.Username)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout ends the refresh session.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return errors.ErrInvalidCredentials
	}
	return s.sessionStore.DeleteRefreshToken(ctx, tokenID)
}

// DeleteAccount removes the user; locations and submissions follow via the
// database cascade.
func (s *authService) DeleteAccount(ctx context.Context, userID uint) error {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}
	return s.userRepo.Delete(ctx, userID)
}
