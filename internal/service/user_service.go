package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/MonksterFX/fermentation-station/internal/domain"
	"github.com/MonksterFX/fermentation-station/internal/service/auth"
	"github.com/MonksterFX/fermentation-station/internal/store"
)

// TokenPair bundles the access and refresh tokens issued on login and
// refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserService provides account registration and authentication.
type UserService interface {
	// Register creates a new account and issues an initial token pair.
	// Returns store.ErrEmailExists if the email is already registered.
	Register(ctx context.Context, email, password string) (*domain.User, *TokenPair, error)

	// Login verifies the credentials and issues a token pair. Returns
	// ErrInvalidCredentials on unknown email or wrong password.
	Login(ctx context.Context, email, password string) (*domain.User, *TokenPair, error)

	// Refresh validates a refresh token and issues a fresh token pair.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)

	// GetUser retrieves a user by their ID.
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface.
type UserServiceImpl struct {
	users    store.UserStore
	jwt      auth.JWTService
	verifier auth.PasswordVerifier
	logger   *slog.Logger
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService.
func NewUserService(
	users store.UserStore,
	jwt auth.JWTService,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) *UserServiceImpl {
	return &UserServiceImpl{
		users:    users,
		jwt:      jwt,
		verifier: verifier,
		logger:   logger.With("component", "user_service"),
	}
}

// Register creates a new account and issues an initial token pair.
func (s *UserServiceImpl) Register(
	ctx context.Context,
	email, password string,
) (*domain.User, *TokenPair, error) {
	user, err := domain.NewUser(email, password)
	if err != nil {
		s.logger.Debug("registration rejected by validation",
			"error", err,
			"email", email)
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("attempted to register an existing email",
				"email", email)
		} else {
			s.logger.Error("failed to save user",
				"error", err,
				"email", email)
		}
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	tokens, err := s.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("user registered",
		"user_id", user.ID,
		"email", user.Email)

	return user, tokens, nil
}

// Login verifies the credentials and issues a token pair.
func (s *UserServiceImpl) Login(
	ctx context.Context,
	email, password string,
) (*domain.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("login attempt for unknown email", "email", email)
			return nil, nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to retrieve user for login",
			"error", err,
			"email", email)
		return nil, nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("login attempt with wrong password", "user_id", user.ID)
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("user logged in", "user_id", user.ID)

	return user, tokens, nil
}

// Refresh validates a refresh token and issues a fresh token pair.
func (s *UserServiceImpl) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.jwt.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		s.logger.Debug("refresh token rejected", "error", err)
		return nil, err
	}

	// The account may have been removed since the token was issued.
	if _, err := s.users.GetByID(ctx, claims.UserID); err != nil {
		s.logger.Debug("refresh for unknown user", "user_id", claims.UserID)
		return nil, auth.ErrInvalidRefreshToken
	}

	tokens, err := s.issueTokens(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("token pair refreshed", "user_id", claims.UserID)

	return tokens, nil
}

// GetUser retrieves a user by their ID.
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to retrieve user",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

func (s *UserServiceImpl) issueTokens(ctx context.Context, userID uuid.UUID) (*TokenPair, error) {
	access, err := s.jwt.GenerateToken(ctx, userID)
	if err != nil {
		s.logger.Error("failed to generate access token",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refresh, err := s.jwt.GenerateRefreshToken(ctx, userID)
	if err != nil {
		s.logger.Error("failed to generate refresh token",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
