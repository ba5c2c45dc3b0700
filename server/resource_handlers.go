package server

import (
	"io"
	"net/http"

	"github.com/midorigaoka/coop-gateway/records"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// listQueryLimit caps how many records one listing pulls from upstream.
const listQueryLimit = "limit 500"

// ResourceListHandler serves the listing endpoint of one record collection.
// The caller's token has already been verified by RequireAuth, so the only
// remaining work is fetch, reshape, and sort.
func (s *Server) ResourceListHandler(res records.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, err := s.recordsClient(res.Name)
		if err != nil {
			writeServerConfigError(w)
			return
		}

		raw, err := client.GetRecords(r.Context(), listQueryLimit)
		if err != nil {
			log.Error().Err(err).Str("resource", res.Name).Msg("upstream listing failed")
			writeUpstreamError(w, err)
			return
		}

		items := res.ReshapeAll(raw)
		res.Sort(items, today())

		writeJSON(w, http.StatusOK, map[string]any{res.Name: items})
	}
}

// ResourceYearsHandler derives the periods that have published records,
// excluding periods entirely in the future relative to server today.
func (s *Server) ResourceYearsHandler(res records.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, err := s.recordsClient(res.Name)
		if err != nil {
			writeServerConfigError(w)
			return
		}

		raw, err := client.GetRecords(r.Context(), listQueryLimit)
		if err != nil {
			log.Error().Err(err).Str("resource", res.Name).Msg("upstream listing failed")
			writeUpstreamError(w, err)
			return
		}

		items := res.ReshapeAll(raw)
		writeJSON(w, http.StatusOK, map[string]any{
			"yearMonths": records.YearMonths(items, today()),
		})
	}
}

// ResourceFileHandler streams one attachment through the proxy. Upstream
// Content-Type and Content-Disposition are relayed verbatim and the body is
// copied without buffering or re-encoding.
func (s *Server) ResourceFileHandler(res records.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fileKey := r.URL.Query().Get("fileKey")
		if fileKey == "" {
			writeError(w, http.StatusBadRequest, "fileKey is required")
			return
		}

		client, err := s.recordsClient(res.Name)
		if err != nil {
			writeServerConfigError(w)
			return
		}

		if claims, ok := sessionClaims(r); ok {
			log.Info().Str("member", claims.MemberID()).Str("resource", res.Name).Msg("attachment download")
		}

		stream, err := client.FetchFile(r.Context(), fileKey)
		if err != nil {
			log.Error().Err(err).Str("resource", res.Name).Msg("upstream file fetch failed")
			var upErr *records.UpstreamError
			if errors.As(err, &upErr) {
				// The file sub-route proxies the upstream status.
				writeError(w, upErr.StatusCode, "Upstream file fetch failed")
				return
			}
			writeError(w, http.StatusInternalServerError, "Upstream file fetch failed")
			return
		}
		defer stream.Body.Close()

		if stream.ContentType != "" {
			w.Header().Set("Content-Type", stream.ContentType)
		}
		if stream.ContentDisposition != "" {
			w.Header().Set("Content-Disposition", stream.ContentDisposition)
		}
		if _, err := io.Copy(w, stream.Body); err != nil {
			log.Error().Err(err).Str("resource", res.Name).Msg("file relay interrupted")
		}
	}
}
