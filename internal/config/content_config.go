package config

type ContentConfig interface {
	GetContentBaseURL() string
	GetContentAPIKey() string
}

type Content struct{}

var _ ContentConfig = Content{}

func (Content) GetContentBaseURL() string {
	return GetEnv("CONTENT_BASE_URL", "")
}

func (Content) GetContentAPIKey() string {
	return GetEnv("CONTENT_API_KEY", "")
}
