package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/midorigaoka/coop-gateway/internal/config"
	"github.com/midorigaoka/coop-gateway/records"
	"github.com/midorigaoka/coop-gateway/server"
	"github.com/midorigaoka/coop-gateway/token"
	"github.com/stretchr/testify/require"
)

const (
	testSigningSecret = "test-signing-secret"
	testPortalBase    = "https://portal.example.com"
	testGatewayBase   = "https://gateway.example.com"
)

// setupGateway wires a gateway against fake upstreams. Nil handlers get a
// benign default.
func setupGateway(t *testing.T, recordsHandler, oauthTokenHandler http.HandlerFunc) *server.Server {
	t.Helper()

	if recordsHandler == nil {
		recordsHandler = func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"records": []any{}})
		}
	}
	if oauthTokenHandler == nil {
		oauthTokenHandler = func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"access_token": "upstream-access-token",
				"token_type":   "Bearer",
			})
		}
	}

	recordsSrv := httptest.NewServer(recordsHandler)
	t.Cleanup(recordsSrv.Close)
	oauthSrv := httptest.NewServer(oauthTokenHandler)
	t.Cleanup(oauthSrv.Close)

	t.Setenv("SESSION_SIGNING_SECRET", testSigningSecret)
	t.Setenv("OAUTH_CLIENT_ID", "gateway-client")
	t.Setenv("OAUTH_CLIENT_SECRET", "gateway-client-secret")
	t.Setenv("OAUTH_AUTHORIZE_URL", "https://records.example.com/oauth2/authorization")
	t.Setenv("OAUTH_TOKEN_URL", oauthSrv.URL+"/oauth2/token")
	t.Setenv("PORTAL_BASE_URL", testPortalBase)
	t.Setenv("GATEWAY_BASE_URL", testGatewayBase)
	t.Setenv("RECORDS_BASE_URL", recordsSrv.URL)
	for _, res := range records.Resources {
		prefix := strings.ToUpper(res.Name)
		t.Setenv(prefix+"_APP_ID", "10")
		t.Setenv(prefix+"_API_TOKEN", "records-api-token")
	}

	return server.New(config.New())
}

func withFixedClock(t *testing.T, now time.Time) {
	t.Helper()
	prev := token.NowTimeFunc
	token.NowTimeFunc = func() time.Time { return now }
	t.Cleanup(func() { token.NowTimeFunc = prev })
}

// mintSessionToken creates a token the gateway will accept.
func mintSessionToken(t *testing.T) string {
	t.Helper()
	codec := token.NewCodec(testSigningSecret, 0)
	raw, err := codec.Encode(codec.NewSession("member-1", "Alice", "alice@example.com"))
	require.NoError(t, err)
	return raw
}

func doRequest(s *server.Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func cookieByName(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	resp := w.Result()
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}
