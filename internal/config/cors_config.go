package config

type Cors struct{}

var _ CorsConfig = Cors{}

// The proxy endpoints authenticate with bearer tokens rather than cookies, so
// the CORS policy is deliberately permissive and credential-free.
func (Cors) GetAllowedMethods() string {
	return "GET, OPTIONS"
}

func (Cors) GetAllowedHeaders() string {
	return "Content-Type, Authorization"
}
