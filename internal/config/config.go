package config

type Config interface {
	EnvConfig
	CorsConfig
	AuthConfig
	DBConfig
	StorageConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type DBConfig interface {
	GetDatabaseURL() string
}

type mainConfig struct {
	EnvVars
	Cors
	*Auth
	DB
	Storage
}

// New builds the process configuration from the environment. Token secrets
// and TTLs are resolved eagerly so that a bad duration fails startup rather
// than the first login.
func New() (Config, error) {
	auth, err := NewAuthFromEnv()
	if err != nil {
		return nil, err
	}
	return mainConfig{Auth: auth}, nil
}
