package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/fraud-desk/internal/auth"
	"github.com/spec-kit/fraud-desk/internal/config"
	"github.com/spec-kit/fraud-desk/internal/domain"
	apperrors "github.com/spec-kit/fraud-desk/pkg/util/errorutil"
)

// AuthService coordinates operator login and logout.
type AuthService struct {
	operator domain.Operator
	tokenMgr *auth.TokenManager
	revoked  auth.RevocationStore
	logger   *zap.Logger
	now      func() time.Time
}

// NewAuthService builds the service. A plaintext operator password from the
// environment is hashed once at startup.
func NewAuthService(cfg config.AuthConfig, revoked auth.RevocationStore, logger *zap.Logger) (*AuthService, error) {
	hash := cfg.OperatorPasswordHash
	if hash != "" {
		if err := auth.CheckHash(hash); err != nil {
			return nil, err
		}
	} else {
		if cfg.OperatorPassword == "" {
			return nil, errors.New("operator password not configured")
		}
		var err error
		hash, err = auth.HashPassword(cfg.OperatorPassword, cfg.BcryptCost)
		if err != nil {
			return nil, err
		}
	}
	if revoked == nil {
		revoked = auth.NewMemoryRevocations()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		operator: domain.Operator{Username: cfg.OperatorUsername, PasswordHash: hash},
		tokenMgr: auth.NewTokenManager(cfg.JWTSecret, cfg.SessionTTL()),
		revoked:  revoked,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Login checks the operator credentials and issues a session token.
func (s *AuthService) Login(_ context.Context, username, password string) (string, domain.Session, error) {
	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.operator.Username)) == 1
	passwordErr := auth.ComparePassword(s.operator.PasswordHash, password)
	if !usernameOK || passwordErr != nil {
		s.logger.Warn("operator login rejected", zap.String("username", username))
		return "", domain.Session{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, session, err := s.tokenMgr.Issue(s.operator.Username)
	if err != nil {
		return "", domain.Session{}, apperrors.NewInternalError(err)
	}
	s.logger.Info("operator signed in", zap.String("operator", session.Operator), zap.String("session_id", session.ID))
	return token, session, nil
}

// Logout revokes the session for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, session domain.Session) error {
	if err := s.revoked.Revoke(ctx, session.ID, session.Remaining(s.now())); err != nil {
		return err
	}
	s.logger.Info("operator signed out", zap.String("operator", session.Operator), zap.String("session_id", session.ID))
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Revocations exposes the revocation store for middleware usage.
func (s *AuthService) Revocations() auth.RevocationStore {
	return s.revoked
}
