package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Authorization front door
	RouteLogin    = "/login"
	RouteCallback = "/callback"
	RouteVerify   = "/verify"

	// Public content passthrough
	RouteContentPosts = "/content/posts"
)
