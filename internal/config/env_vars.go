package config

import (
	"fmt"
	"os"
)

const (
	portEnvVar    = "PORT"
	appNameVar    = "APP_NAME"
	environVar    = "ENV"
	defaultDev    = "DEV"
	defaultPort   = "8080"
	defaultAppStr = "TaskFlow"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, defaultPort)
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, defaultAppStr)
}

func (EnvVars) GetEnv() string {
	env := os.Getenv(environVar)
	if env == "" {
		return defaultDev
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
