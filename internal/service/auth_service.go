package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/config"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/dto"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/model"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/internal/repository"
	pkgerrors "github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/errors"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/jwt"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/metrics"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/password"
	"github.com/TUNUNIVERSITY/Tununiversity-version-1.1/pkg/redis"
)

// ── auth errors ──

var (
	ErrInvalidCredentials = pkgerrors.New(pkgerrors.KindUnauthorized, 20001, "Incorrect email, CIN or password")
	ErrAccountDisabled    = pkgerrors.New(pkgerrors.KindForbidden, 20002, "Account is disabled")
	ErrTokenInvalid       = pkgerrors.New(pkgerrors.KindUnauthorized, 20007, "invalid or expired token")
	ErrTokenRevoked       = pkgerrors.New(pkgerrors.KindUnauthorized, 20008, "token has been revoked")
)

// AuthService credential checks and token lifecycle
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Verify(ctx context.Context, token string) (*dto.VerifyResponse, error)
	Me(ctx context.Context, userID int) (*dto.UserResponse, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	hasher *password.Hasher
	logger *zap.Logger
}

// NewAuthService creates an AuthService. rdb may be nil.
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	hasher *password.Hasher,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		hasher: hasher,
		logger: logger,
	}
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.lookup(ctx, strings.TrimSpace(req.Identifier))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.LoginAttempts.WithLabelValues("failure").Inc()
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to look up user", zap.Error(err))
		return nil, err
	}

	if !s.hasher.Verify(user.PasswordHash, req.Password) {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		return nil, ErrAccountDisabled
	}

	token, err := s.jwtMgr.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		s.logger.Error("failed to sign access token", zap.Int("user_id", user.ID), zap.Error(err))
		return nil, err
	}
	metrics.LoginAttempts.WithLabelValues("success").Inc()

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(s.jwtMgr.AccessTokenTTL().Seconds()),
		User:        *toUserResponse(user),
	}, nil
}

// lookup tries the identifier as an email first when it looks like one, then as a CIN.
func (s *authService) lookup(ctx context.Context, identifier string) (*model.User, error) {
	if strings.Contains(identifier, "@") {
		user, err := s.repo.User.GetByEmail(ctx, identifier)
		if err == nil || !errors.Is(err, gorm.ErrRecordNotFound) {
			return user, err
		}
	}
	return s.repo.User.GetByCIN(ctx, identifier)
}

// ────────────────────── Verify ──────────────────────

func (s *authService) Verify(ctx context.Context, token string) (*dto.VerifyResponse, error) {
	claims, err := s.jwtMgr.ParseToken(token)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	if s.rdb != nil {
		revoked, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("blacklist lookup failed", zap.Error(err))
		} else if revoked {
			return nil, ErrTokenRevoked
		}
	}

	resp := &dto.VerifyResponse{
		Valid:  true,
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Time.Format(time.RFC3339)
	}
	return resp, nil
}

// ────────────────────── Me ──────────────────────

func (s *authService) Me(ctx context.Context, userID int) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("failed to get current user", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	return toUserResponse(user), nil
}

// ────────────────────── Logout ──────────────────────

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.rdb == nil || jti == "" {
		return nil
	}
	if err := s.rdb.BlacklistToken(ctx, jti, time.Until(expiresAt)); err != nil {
		s.logger.Error("failed to revoke token", zap.String("jti", jti), zap.Error(err))
		return err
	}
	return nil
}
