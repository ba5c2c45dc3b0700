package config

import "time"

type AuthConfig interface {
	GetOAuthClientID() string
	GetOAuthClientSecret() string
	GetOAuthAuthorizeURL() string
	GetOAuthTokenURL() string
	GetOAuthScope() string
	GetSigningSecret() string
	GetSessionLifetime() time.Duration
	GetHandshakeCookieMaxAge() int
}

type Auth struct{}

var _ AuthConfig = Auth{}

func (Auth) GetOAuthClientID() string {
	return GetEnv("OAUTH_CLIENT_ID", "")
}

func (Auth) GetOAuthClientSecret() string {
	return GetEnv("OAUTH_CLIENT_SECRET", "")
}

func (Auth) GetOAuthAuthorizeURL() string {
	return GetEnv("OAUTH_AUTHORIZE_URL", "")
}

func (Auth) GetOAuthTokenURL() string {
	return GetEnv("OAUTH_TOKEN_URL", "")
}

// GetOAuthScope returns the scope requested from the record service.
// Read-only record access is the minimum the proxy layer needs.
func (Auth) GetOAuthScope() string {
	return GetEnv("OAUTH_SCOPE", "k:app_record:read")
}

func (Auth) GetSigningSecret() string {
	return GetEnv("SESSION_SIGNING_SECRET", "")
}

func (Auth) GetSessionLifetime() time.Duration {
	return 7 * 24 * time.Hour
}

// GetHandshakeCookieMaxAge returns the lifetime in seconds of the state and
// redirect cookies set at login start. Long enough for the user to complete
// the upstream login, short enough to limit replay.
func (Auth) GetHandshakeCookieMaxAge() int {
	return 600
}
