package server

import (
	"github.com/midorigaoka/coop-gateway/records"
)

func (s *Server) initRoutes() {
	// Authorization front door
	s.RegisterRouteHandler(RouteLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler(RouteCallback, ChainMiddleware(s.CallbackHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler(RouteVerify, ChainMiddleware(s.VerifyHandler(), s.APIMiddleware()...))

	// Authenticated record proxies. Six structurally identical endpoints,
	// registered from one parameterized handler set. Patterns carry no
	// method so the CORS middleware can answer OPTIONS preflights; the
	// method gate returns 405 for everything else.
	for _, res := range records.Resources {
		proxyChain := append(s.APIMiddleware(), s.RequireGet(), s.RequireAuth())

		s.RegisterRouteHandler("/"+res.Name, ChainMiddleware(s.ResourceListHandler(res), proxyChain...))
		s.RegisterRouteHandler("/"+res.Name+"/file", ChainMiddleware(s.ResourceFileHandler(res), proxyChain...))
		if res.HasPeriods {
			s.RegisterRouteHandler("/"+res.Name+"/years", ChainMiddleware(s.ResourceYearsHandler(res), proxyChain...))
		}
	}

	// Public content passthrough (no session verifier involved)
	contentChain := append(s.APIMiddleware(), s.RequireGet())
	s.RegisterRouteHandler(RouteContentPosts, ChainMiddleware(s.ContentPostsHandler(), contentChain...))
}
