package config

import (
	"fmt"
	"os"
)

const (
	portEnvVar     = "PORT"
	appNameVar     = "APP_NAME"
	portalBaseVar  = "PORTAL_BASE_URL"
	gatewayBaseVar = "GATEWAY_BASE_URL"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Coop Gateway")
}

// GetPortalBaseURL returns the public origin of the member portal frontend.
// Relative post-login redirect targets are resolved against this origin.
func (EnvVars) GetPortalBaseURL() string {
	return GetEnv(portalBaseVar, "http://localhost:3000")
}

// GetGatewayBaseURL returns the base URL of this gateway, used to build the
// OAuth callback URL registered with the record service.
func (EnvVars) GetGatewayBaseURL() string {
	return GetEnv(gatewayBaseVar, "http://localhost:8080")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
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
