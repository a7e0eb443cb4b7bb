// Package auth implements the credential and session lifecycle: registration,
// login, and refresh token rotation. Refresh tokens are single-use; their
// server-side records are deleted on redemption, expiry, or hash mismatch,
// so a spent or stolen token always fails closed.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/jrsteele09/taskflow-server/internal/apperrors"
	"github.com/jrsteele09/taskflow-server/internal/config"
	"github.com/jrsteele09/taskflow-server/token"
	"github.com/jrsteele09/taskflow-server/users"
)

// Identical message for unknown email and for wrong password, so a caller
// cannot probe which check failed.
const invalidCredentialsMsg = "Invalid credentials"

// Repos holds all repository dependencies for the Service
type Repos struct {
	Users         users.Repo
	SessionTokens SessionTokenRepo
}

// AuthResponse is the wire shape returned by register, login, and refresh.
type AuthResponse struct {
	AccessToken          string           `json:"accessToken"`
	RefreshToken         string           `json:"refreshToken"`
	AccessTokenExpiresIn int              `json:"accessTokenExpiresIn"` // whole seconds
	User                 users.PublicUser `json:"user"`
}

// RegisterRequest carries the registration payload.
type RegisterRequest struct {
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	DisplayName  string  `json:"displayName"`
	ProfileColor *string `json:"profileColor,omitempty"`
}

type tokensPayload struct {
	accessToken          string
	refreshToken         string
	accessTokenExpiresIn int
}

// Service issues, verifies, and rotates the access/refresh token pairs.
type Service struct {
	repos         Repos
	accessSigner  token.Signer
	refreshSigner token.Signer
	accessTTL     time.Duration
	refreshTTL    time.Duration
	nowTime       func() time.Time // nowTime function (injectable for testing)
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// NewService initializes the auth Service with required dependencies.
func NewService(repos Repos, cfg config.AuthConfig, options ...ServiceOption) (*Service, error) {
	if repos.Users == nil {
		return nil, errors.New("[auth.NewService] Users repo is required")
	}
	if repos.SessionTokens == nil {
		return nil, errors.New("[auth.NewService] SessionTokens repo is required")
	}
	if cfg == nil {
		return nil, errors.New("[auth.NewService] auth config is required")
	}

	service := &Service{
		repos:         repos,
		accessSigner:  token.NewHMACSigner(cfg.GetAccessTokenSecret()),
		refreshSigner: token.NewHMACSigner(cfg.GetRefreshTokenSecret()),
		accessTTL:     cfg.GetAccessTokenTTL(),
		refreshTTL:    cfg.GetRefreshTokenTTL(),
		nowTime:       time.Now,
	}

	for _, opt := range options {
		opt(service)
	}

	return service, nil
}

// Register creates a new user account and signs it in.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	passwordHash, err := users.HashPassword(req.Password)
	if err != nil {
		return nil, errors.Wrap(err, "[auth.Service.Register] HashPassword")
	}

	user, err := s.repos.Users.Create(ctx, &users.User{
		Email:        strings.ToLower(req.Email),
		PasswordHash: passwordHash,
		DisplayName:  req.DisplayName,
		ProfileColor: req.ProfileColor,
	})
	if err != nil {
		return nil, err
	}

	return s.buildAuthResponse(ctx, user)
}

// Login verifies credentials and issues a fresh token pair.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	user, err := s.repos.Users.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, errors.Wrap(err, "[auth.Service.Login] GetByEmail")
	}

	if user == nil {
		return nil, apperrors.Unauthorized(invalidCredentialsMsg)
	}

	if !users.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.Unauthorized(invalidCredentialsMsg)
	}

	return s.buildAuthResponse(ctx, user)
}

// Refresh redeems a refresh token for a new token pair. Redemption is
// at-most-once: whatever the outcome, a found record is deleted before the
// method returns, and a concurrent second redemption sees the record gone
// and fails with Unauthorized.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := token.Parse(s.refreshSigner, refreshToken)
	if err != nil || claims.UserID == "" || claims.JTI == "" {
		return nil, apperrors.Unauthorized("Invalid refresh token")
	}

	record, err := s.repos.SessionTokens.GetByID(ctx, claims.JTI)
	if err != nil {
		return nil, errors.Wrap(err, "[auth.Service.Refresh] GetByID")
	}
	if record == nil {
		return nil, apperrors.Unauthorized("Refresh token revoked")
	}

	now := s.nowTime()
	if !record.ExpiresAt.After(now) {
		if _, err := s.repos.SessionTokens.Delete(ctx, record.ID); err != nil {
			return nil, errors.Wrap(err, "[auth.Service.Refresh] Delete expired")
		}
		return nil, apperrors.Unauthorized("Refresh token expired")
	}

	// The jti alone is not proof of possession; the presented token must
	// match the stored hash.
	if HashRefreshToken(refreshToken) != record.RefreshTokenHash {
		if _, err := s.repos.SessionTokens.Delete(ctx, record.ID); err != nil {
			return nil, errors.Wrap(err, "[auth.Service.Refresh] Delete mismatched")
		}
		return nil, apperrors.Unauthorized("Refresh token revoked")
	}

	deleted, err := s.repos.SessionTokens.Delete(ctx, record.ID)
	if err != nil {
		return nil, errors.Wrap(err, "[auth.Service.Refresh] Delete")
	}
	if !deleted {
		// Lost the race against another redemption of the same token.
		return nil, apperrors.Unauthorized("Refresh token revoked")
	}

	user, err := s.repos.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "[auth.Service.Refresh] GetByID user")
	}
	if user == nil {
		return nil, apperrors.Unauthorized("User no longer exists")
	}

	return s.buildAuthResponse(ctx, user)
}

// CurrentUser resolves an authenticated user id to its public projection.
func (s *Service) CurrentUser(ctx context.Context, userID string) (*users.PublicUser, error) {
	user, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "[auth.Service.CurrentUser] GetByID")
	}
	if user == nil {
		return nil, apperrors.Unauthorized("Authenticated user not found")
	}
	public := user.Public()
	return &public, nil
}

// VerifyAccessToken checks a bearer access token and returns the user id it
// was issued for.
func (s *Service) VerifyAccessToken(rawToken string) (string, error) {
	claims, err := token.Parse(s.accessSigner, rawToken)
	if err != nil || claims.UserID == "" {
		return "", apperrors.Unauthorized("Invalid access token")
	}
	return claims.UserID, nil
}

func (s *Service) buildAuthResponse(ctx context.Context, user *users.User) (*AuthResponse, error) {
	// Lazy hygiene: drop this user's already-expired records while we are
	// here anyway. Best-effort, not required for correctness.
	_ = s.repos.SessionTokens.DeleteExpiredForUser(ctx, user.ID, s.nowTime())

	tokens, err := s.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "[auth.Service.buildAuthResponse] issueTokens")
	}

	return &AuthResponse{
		AccessToken:          tokens.accessToken,
		RefreshToken:         tokens.refreshToken,
		AccessTokenExpiresIn: tokens.accessTokenExpiresIn,
		User:                 user.Public(),
	}, nil
}

func (s *Service) issueTokens(ctx context.Context, userID string) (*tokensPayload, error) {
	now := s.nowTime()
	jti := uuid.New().String()

	accessToken, err := token.NewAccessToken(s.accessSigner, userID, now, s.accessTTL)
	if err != nil {
		return nil, errors.Wrap(err, "[auth.Service.issueTokens] NewAccessToken")
	}

	refreshToken, err := token.NewRefreshToken(s.refreshSigner, userID, jti, now, s.refreshTTL)
	if err != nil {
		return nil, errors.Wrap(err, "[auth.Service.issueTokens] NewRefreshToken")
	}

	if err := s.repos.SessionTokens.Create(ctx, &SessionToken{
		ID:               jti,
		UserID:           userID,
		RefreshTokenHash: HashRefreshToken(refreshToken),
		ExpiresAt:        now.Add(s.refreshTTL),
		CreatedAt:        now,
	}); err != nil {
		return nil, errors.Wrap(err, "[auth.Service.issueTokens] Create")
	}

	return &tokensPayload{
		accessToken:          accessToken,
		refreshToken:         refreshToken,
		accessTokenExpiresIn: int(s.accessTTL.Seconds()),
	}, nil
}
