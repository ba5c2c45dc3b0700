package server

import (
	"encoding/json"
	"net/http"

	"github.com/midorigaoka/coop-gateway/records"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const contentTypeJSON = "application/json; charset=utf-8"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeUpstreamError surfaces an upstream failure with enough detail to
// diagnose (status and message) without leaking the credential used.
func writeUpstreamError(w http.ResponseWriter, err error) {
	var upErr *records.UpstreamError
	if errors.As(err, &upErr) {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":           "Upstream fetch failed",
			"upstreamStatus":  upErr.StatusCode,
			"upstreamMessage": upErr.Message,
		})
		return
	}
	writeError(w, http.StatusInternalServerError, "Upstream fetch failed")
}

func writeServerConfigError(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, "Server configuration error")
}
