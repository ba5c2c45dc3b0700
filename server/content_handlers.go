package server

import (
	"net/http"
	"strconv"

	"github.com/midorigaoka/coop-gateway/content"
	"github.com/rs/zerolog/log"
)

// ContentPostsHandler is the stateless passthrough in front of the headless
// content store. It serves public marketing content, so no session token is
// required.
func (s *Server) ContentPostsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, err := s.contentClient()
		if err != nil {
			writeServerConfigError(w)
			return
		}

		q := r.URL.Query()
		params := content.ListParams{
			Category: q.Get("category"),
			Orders:   q.Get("orders"),
			All:      q.Get("all") == "true",
		}
		if v := q.Get("limit"); v != "" {
			params.Limit, _ = strconv.Atoi(v)
		}
		if v := q.Get("offset"); v != "" {
			params.Offset, _ = strconv.Atoi(v)
		}

		posts, err := client.ListPosts(r.Context(), params)
		if err != nil {
			log.Error().Err(err).Msg("content fetch failed")
			writeUpstreamError(w, err)
			return
		}

		if posts == nil {
			posts = []content.Post{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"contents": posts})
	}
}
