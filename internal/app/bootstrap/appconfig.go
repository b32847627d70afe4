// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig covers the listener (http_port), logging level and
// format, and request-level framework settings. Everything the course API
// itself needs lives here and is loaded in LoadConfig.
type AppConfig struct {
	// Store selects the course backend: "mongo" (default) or "memory".
	Store string

	// MongoDB connection configuration
	MongoURI            string        // e.g. mongodb://localhost:27017
	MongoDatabase       string        // database holding the courses collection
	MongoMaxPoolSize    uint64        // driver pool upper bound
	MongoMinPoolSize    uint64        // driver pool lower bound
	MongoConnectTimeout time.Duration // dial + initial ping deadline

	// HTTP surface
	FrontendURL    string   // the single origin allowed by CORS
	CORSMethods    []string // methods allowed by CORS
	WelcomeMessage string   // body text of GET /
	MaxBodyBytes   int64    // JSON request body limit

	// Per-IP limit on the course API; RateLimit 0 disables it.
	RateLimit       int
	RateLimitWindow time.Duration
	// TrustProxy keys the limit on X-Forwarded-For / X-Real-IP. Enable only
	// behind a proxy that overwrites those headers.
	TrustProxy bool

	// Store call deadlines applied per request
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
}
