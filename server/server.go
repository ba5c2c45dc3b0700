package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/midorigaoka/coop-gateway/content"
	"github.com/midorigaoka/coop-gateway/internal/config"
	apperrors "github.com/midorigaoka/coop-gateway/internal/errors"
	"github.com/midorigaoka/coop-gateway/records"
	"github.com/midorigaoka/coop-gateway/token"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// Server is the member portal gateway. Every handler is stateless: a request
// authenticates itself with its own bearer token and owns its own upstream
// calls, so there is no server-side session store.
type Server struct {
	env    string // Environment (e.g., "DEV", "production")
	mux    *http.ServeMux
	routes []string
	config config.Config
}

func New(cfg config.Config) *Server {
	s := &Server{
		mux:    http.NewServeMux(),
		config: cfg,
	}
	s.env = cfg.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			log.Debug().Str("method", parts[0]).Str("path", parts[1]).Msg("route")
		} else {
			log.Debug().Str("path", parts[0]).Msg("route")
		}
	}
}

// sessionCodec builds the token codec from deployment configuration. A
// missing signing secret is a request-time configuration error, never a
// silent fallback.
func (s *Server) sessionCodec() (*token.Codec, error) {
	secret := s.config.GetSigningSecret()
	if secret == "" {
		return nil, apperrors.ErrServerConfiguration
	}
	return token.NewCodec(secret, s.config.GetSessionLifetime()), nil
}

// oauthConfig builds the upstream authorization-code exchange configuration.
func (s *Server) oauthConfig() (*oauth2.Config, error) {
	clientID := s.config.GetOAuthClientID()
	clientSecret := s.config.GetOAuthClientSecret()
	authURL := s.config.GetOAuthAuthorizeURL()
	tokenURL := s.config.GetOAuthTokenURL()
	if clientID == "" || clientSecret == "" || authURL == "" || tokenURL == "" {
		return nil, apperrors.ErrServerConfiguration
	}

	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:   authURL,
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
		RedirectURL: s.config.GetGatewayBaseURL() + RouteCallback,
		Scopes:      strings.Fields(s.config.GetOAuthScope()),
	}, nil
}

// recordsClient builds the upstream client for one resource. The collection
// credential and identifiers live only in server configuration.
func (s *Server) recordsClient(resource string) (*records.Client, error) {
	baseURL := s.config.GetRecordsBaseURL()
	appID := s.config.GetRecordsAppID(resource)
	apiToken := s.config.GetRecordsAPIToken(resource)
	if baseURL == "" || appID == "" || apiToken == "" {
		log.Error().
			Str("resource", resource).
			Bool("baseURLPresent", baseURL != "").
			Bool("appIDPresent", appID != "").
			Bool("tokenPresent", apiToken != "").
			Msg("records configuration incomplete")
		return nil, apperrors.ErrServerConfiguration
	}
	return records.NewClient(baseURL, appID, apiToken), nil
}

func (s *Server) contentClient() (*content.Client, error) {
	baseURL := s.config.GetContentBaseURL()
	apiKey := s.config.GetContentAPIKey()
	if baseURL == "" || apiKey == "" {
		log.Error().
			Bool("baseURLPresent", baseURL != "").
			Bool("apiKeyPresent", apiKey != "").
			Msg("content configuration incomplete")
		return nil, apperrors.ErrServerConfiguration
	}
	return content.NewClient(baseURL, apiKey), nil
}

// today truncates the server clock to its calendar date at UTC midnight,
// the form record date fields parse to, for temporal partitioning decisions.
func today() time.Time {
	now := token.NowTimeFunc()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
