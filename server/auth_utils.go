package server

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"net/url"
	"strings"
)

const (
	// stateCookieName holds the CSRF state nonce during the handshake
	stateCookieName = "oauth_state"
	// redirectCookieName holds the post-login redirect target during the handshake
	redirectCookieName = "oauth_redirect"

	stateNonceLength = 32
)

// generateRandomString creates a random base64url string
func generateRandomString(length int) string {
	b := make([]byte, length)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

// setHandshakeCookies persists the handshake state across the upstream
// round-trip. SameSite=None because the authorization server is a different
// origin and the callback arrives as a cross-site navigation.
func (s *Server) setHandshakeCookies(w http.ResponseWriter, state, redirectTarget string) {
	maxAge := s.config.GetHandshakeCookieMaxAge()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
		MaxAge:   maxAge,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     redirectCookieName,
		Value:    url.QueryEscape(redirectTarget),
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
		MaxAge:   maxAge,
	})
}

// clearHandshakeCookies deletes the handshake cookies once the callback has
// consumed them.
func (s *Server) clearHandshakeCookies(w http.ResponseWriter) {
	for _, name := range []string{stateCookieName, redirectCookieName} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteNoneMode,
			MaxAge:   -1, // serialized as Max-Age=0
		})
	}
}

// normalizeRedirect resolves a requested post-login target to an absolute
// URL. Relative paths resolve against the portal origin, which may differ
// from the authorization server's origin.
func (s *Server) normalizeRedirect(target string) string {
	portalBase := s.config.GetPortalBaseURL()
	if target == "" {
		return portalBase
	}
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return target
	}

	base, err := url.Parse(portalBase)
	if err != nil {
		return portalBase
	}
	ref, err := url.Parse(target)
	if err != nil {
		return portalBase
	}
	return base.ResolveReference(ref).String()
}

// appendTokenParam attaches the freshly minted session token to the redirect
// target as a query parameter.
func appendTokenParam(target, tok string) string {
	u, err := url.Parse(target)
	if err != nil {
		return target
	}
	q := u.Query()
	q.Set("token", tok)
	u.RawQuery = q.Encode()
	return u.String()
}
