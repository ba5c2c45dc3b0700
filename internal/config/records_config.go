package config

import "strings"

type RecordsConfig interface {
	GetRecordsBaseURL() string
	GetRecordsAppID(resource string) string
	GetRecordsAPIToken(resource string) string
}

type Records struct{}

var _ RecordsConfig = Records{}

func (Records) GetRecordsBaseURL() string {
	return GetEnv("RECORDS_BASE_URL", "")
}

// GetRecordsAppID resolves the upstream collection identifier for a resource,
// e.g. resource "announcements" reads ANNOUNCEMENTS_APP_ID.
func (Records) GetRecordsAppID(resource string) string {
	return GetEnv(strings.ToUpper(resource)+"_APP_ID", "")
}

// GetRecordsAPIToken resolves the collection-scoped upstream credential for a
// resource. The token never leaves server configuration.
func (Records) GetRecordsAPIToken(resource string) string {
	return GetEnv(strings.ToUpper(resource)+"_API_TOKEN", "")
}
