package services

import (
	"context"
	"errors"

	"github.com/lams-capstone/lams-admin/internal/app/models"
	"github.com/lams-capstone/lams-admin/internal/pkg/apperrors"
	"github.com/lams-capstone/lams-admin/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// LoginResult is returned by a successful login
type LoginResult struct {
	AccessToken string
	ExpiresIn   int
	User        *models.User
}

// AuthService handles authentication operations
type AuthService struct {
	users      UserStore
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(users UserStore, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:      users,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login checks the credentials of an admin user and issues an access token
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			s.logger.Warn().Str("username", username).Msg("Login attempt for unknown user")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, password) {
		s.logger.Warn().Str("username", username).Msg("Login attempt with wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.Role != models.RoleAdmin {
		return nil, apperrors.NewForbiddenError("Admin access required")
	}

	token, expiresIn, err := s.jwtService.GenerateToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, err
	}

	user.Password = ""
	s.logger.Info().Int64("userID", user.ID).Msg("Admin logged in")
	return &LoginResult{AccessToken: token, ExpiresIn: expiresIn, User: user}, nil
}
