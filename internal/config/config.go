package config

type Config interface {
	EnvConfig
	CorsConfig
	AuthConfig
	RecordsConfig
	ContentConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetPortalBaseURL() string
	GetGatewayBaseURL() string
	GetEnv() string
}

type CorsConfig interface {
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	Auth
	Records
	Content
}

func New() Config {
	return mainConfig{}
}
