package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContentPosts_PassthroughWithoutAuth(t *testing.T) {
	s := setupGateway(t, nil, nil)
	contentSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "content-api-key", r.Header.Get("X-MICROCMS-API-KEY"))
		require.Equal(t, "/api/v1/posts", r.URL.Path)
		require.Equal(t, "5", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode(map[string]any{
			"contents": []any{
				map[string]any{"id": "p1", "title": "理事会だより"},
			},
			"totalCount": 1,
		})
	}))
	t.Cleanup(contentSrv.Close)
	t.Setenv("CONTENT_BASE_URL", contentSrv.URL)
	t.Setenv("CONTENT_API_KEY", "content-api-key")

	w := doRequest(s, httptest.NewRequest(http.MethodGet, "/content/posts?limit=5", nil))

	require.Equal(t, http.StatusOK, w.Code)
	contents := decodeBody(t, w)["contents"].([]any)
	require.Len(t, contents, 1)
	require.Equal(t, "p1", contents[0].(map[string]any)["id"])
}

func TestContentPosts_MissingConfiguration(t *testing.T) {
	s := setupGateway(t, nil, nil)

	w := doRequest(s, httptest.NewRequest(http.MethodGet, "/content/posts", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "Server configuration error", decodeBody(t, w)["error"])
}

func TestContentPosts_UpstreamFailure(t *testing.T) {
	s := setupGateway(t, nil, nil)
	contentSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid key", http.StatusForbidden)
	}))
	t.Cleanup(contentSrv.Close)
	t.Setenv("CONTENT_BASE_URL", contentSrv.URL)
	t.Setenv("CONTENT_API_KEY", "content-api-key")

	w := doRequest(s, httptest.NewRequest(http.MethodGet, "/content/posts", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "Upstream fetch failed", decodeBody(t, w)["error"])
}
