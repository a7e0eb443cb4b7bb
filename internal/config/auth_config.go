package config

import (
	"time"

	"github.com/pkg/errors"
)

const (
	accessSecretVar  = "JWT_ACCESS_TOKEN_SECRET"
	accessTTLVar     = "JWT_ACCESS_TOKEN_TTL"
	refreshSecretVar = "JWT_REFRESH_TOKEN_SECRET"
	refreshTTLVar    = "JWT_REFRESH_TOKEN_TTL"

	defaultAccessTTL  = "15m"
	defaultRefreshTTL = "168h" // 7 days
)

type AuthConfig interface {
	GetAccessTokenSecret() string
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenSecret() string
	GetRefreshTokenTTL() time.Duration
}

// Auth carries the token signing configuration. Both TTLs are parsed once at
// startup; the process refuses to start on an unparsable duration.
type Auth struct {
	accessSecret  string
	accessTTL     time.Duration
	refreshSecret string
	refreshTTL    time.Duration
}

var _ AuthConfig = (*Auth)(nil)

// NewAuth builds token settings directly, bypassing the environment.
func NewAuth(accessSecret string, accessTTL time.Duration, refreshSecret string, refreshTTL time.Duration) *Auth {
	return &Auth{
		accessSecret:  accessSecret,
		accessTTL:     accessTTL,
		refreshSecret: refreshSecret,
		refreshTTL:    refreshTTL,
	}
}

func NewAuthFromEnv() (*Auth, error) {
	accessTTL, err := time.ParseDuration(GetEnv(accessTTLVar, defaultAccessTTL))
	if err != nil {
		return nil, errors.Wrapf(err, "[config.NewAuthFromEnv] invalid %s", accessTTLVar)
	}

	refreshTTL, err := time.ParseDuration(GetEnv(refreshTTLVar, defaultRefreshTTL))
	if err != nil {
		return nil, errors.Wrapf(err, "[config.NewAuthFromEnv] invalid %s", refreshTTLVar)
	}

	return &Auth{
		accessSecret:  GetEnv(accessSecretVar, "access-secret"),
		accessTTL:     accessTTL,
		refreshSecret: GetEnv(refreshSecretVar, "refresh-secret"),
		refreshTTL:    refreshTTL,
	}, nil
}

func (a *Auth) GetAccessTokenSecret() string {
	return a.accessSecret
}

func (a *Auth) GetAccessTokenTTL() time.Duration {
	return a.accessTTL
}

func (a *Auth) GetRefreshTokenSecret() string {
	return a.refreshSecret
}

func (a *Auth) GetRefreshTokenTTL() time.Duration {
	return a.refreshTTL
}
