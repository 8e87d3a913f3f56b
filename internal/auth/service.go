package auth

import (
	"errors"
	"log/slog"
	"strings"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUserInactive       = errors.New("user is inactive")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrSamePassword       = errors.New("new password must differ from the current one")
	ErrPasswordLocked     = errors.New("password change not available for this account")
)

type Service struct {
	repo       RepositoryAPI
	tokens     TokenGeneratorAPI
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, tokens TokenGeneratorAPI, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *Service) Authenticate(dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	record, err := s.repo.GetByEmail(strings.ToLower(strings.TrimSpace(dto.Email)))
	if err != nil {
		s.logger.Warn("login failed: user lookup", "email", dto.Email, "error", err)
		return AuthTokens{}, ErrInvalidCredentials
	}

	// Deactivated accounts have their password hash cleared.
	if record.PasswordHash == nil {
		return AuthTokens{}, ErrInvalidCredentials
	}
	if err := VerifyPassword(*record.PasswordHash, dto.Password); err != nil {
		return AuthTokens{}, ErrInvalidCredentials
	}
	if !record.IsActive {
		return AuthTokens{}, ErrUserInactive
	}

	return s.issueTokens(record.ID, record.Email, record.Role)
}

func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	record, err := s.repo.GetByID(claims.UserID)
	if err != nil {
		return AuthTokens{}, ErrInvalidToken
	}
	if !record.IsActive {
		return AuthTokens{}, ErrUserInactive
	}

	return s.issueTokens(record.ID, record.Email, record.Role)
}

// ChangePassword verifies the caller's current password before storing a
// new hash. Accounts with a cleared hash cannot change their password.
func (s *Service) ChangePassword(userID string, dto ChangePasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	record, err := s.repo.GetByID(userID)
	if err != nil {
		return err
	}
	if record.PasswordHash == nil {
		return ErrPasswordLocked
	}
	if err := VerifyPassword(*record.PasswordHash, dto.CurrentPassword); err != nil {
		return ErrWrongPassword
	}
	if dto.CurrentPassword == dto.NewPassword {
		return ErrSamePassword
	}

	hash, err := HashPassword(dto.NewPassword, s.bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash new password", "error", err, "user_id", userID)
		return err
	}
	return s.repo.UpdatePassword(userID, hash)
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokens.ValidateAccessToken(tokenString)
}

func (s *Service) GetUser(userID string) (*User, error) {
	record, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	return &User{
		ID:       record.ID,
		Email:    record.Email,
		Name:     record.Name,
		Role:     record.Role,
		IsActive: record.IsActive,
	}, nil
}

func (s *Service) issueTokens(userID, email, role string) (AuthTokens, error) {
	access, err := s.tokens.GenerateAccessToken(userID, email, role)
	if err != nil {
		s.logger.Error("failed to sign access token", "error", err, "user_id", userID)
		return AuthTokens{}, err
	}

	refresh, err := s.tokens.GenerateRefreshToken(userID, email, role)
	if err != nil {
		s.logger.Error("failed to sign refresh token", "error", err, "user_id", userID)
		return AuthTokens{}, err
	}

	return AuthTokens{AccessToken: access, RefreshToken: refresh}, nil
}
