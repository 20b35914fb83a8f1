package auth

import (
	"context"

	"github.com/folha-audit/payroll-audit-go/internal/config"
	"github.com/folha-audit/payroll-audit-go/internal/domain/auth"
	"github.com/folha-audit/payroll-audit-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// AuthService authenticates the audit operator account configured via
// environment and issues the JWT pair session handlers work with.
type AuthService struct {
	operator config.OperatorConfig
	jwt      jwt.Service
}

func NewAuthService(operator config.OperatorConfig, jwtService jwt.Service) *AuthService {
	return &AuthService{operator: operator, jwt: jwtService}
}

// Login verifies the operator credentials and returns the access token plus
// the refresh token and its expiry for the cookie.
func (s *AuthService) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, string, int64, error) {
	if req.Username != s.operator.Username {
		return auth.TokenResponse{}, "", 0, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.operator.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, "", 0, auth.ErrInvalidCredentials
	}

	accessToken, accessExpiry, err := s.jwt.GenerateAccessToken(req.Username)
	if err != nil {
		return auth.TokenResponse{}, "", 0, err
	}
	refreshToken, refreshExpiry, err := s.jwt.GenerateRefreshToken(req.Username)
	if err != nil {
		return auth.TokenResponse{}, "", 0, err
	}

	return auth.TokenResponse{
		AccessToken: accessToken,
		ExpiresAt:   accessExpiry,
	}, refreshToken, refreshExpiry, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	if s.jwt.IsTokenRevoked(refreshToken) {
		return auth.TokenResponse{}, auth.ErrTokenRevoked
	}
	username, err := s.jwt.ParseRefreshToken(refreshToken)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	accessToken, expiresAt, err := s.jwt.GenerateAccessToken(username)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	return auth.TokenResponse{AccessToken: accessToken, ExpiresAt: expiresAt}, nil
}

// Logout revokes the refresh token so it cannot mint further access tokens.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) {
	if refreshToken != "" {
		s.jwt.RevokeToken(refreshToken)
	}
}
