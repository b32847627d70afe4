// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.uber.org/zap"
)

// DefaultWelcomeMessage is returned by GET / unless welcome_message is set.
const DefaultWelcomeMessage = "Welcome to ChaiCode API ☕️"

// Store backends.
const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

// appConfigKeys defines the configuration keys for coursehub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, frontend_url, etc.
//   - Environment variables: COURSEHUB_MONGO_URI, COURSEHUB_FRONTEND_URL, etc.
//   - Command-line flags: --mongo_uri, --frontend_url, etc.
var appConfigKeys = []config.AppKey{
	{Name: "store", Default: StoreMongo, Desc: "Course backend: 'mongo' or 'memory'"},
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "coursehub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 0, Desc: "MongoDB min connection pool size"},
	{Name: "mongo_connect_timeout", Default: "10s", Desc: "MongoDB connect and initial ping timeout"},

	{Name: "frontend_url", Default: "http://localhost:3000", Desc: "Origin allowed by CORS"},
	{Name: "cors_methods", Default: "GET,POST,PUT,DELETE,OPTIONS", Desc: "Comma-separated methods allowed by CORS"},
	{Name: "welcome_message", Default: DefaultWelcomeMessage, Desc: "Message returned by GET /"},
	{Name: "max_body_bytes", Default: 1 << 20, Desc: "Maximum JSON request body size in bytes"},

	{Name: "rate_limit", Default: 300, Desc: "Course API requests allowed per client IP per window (0 disables)"},
	{Name: "rate_limit_window", Default: "1m", Desc: "Rate limit window"},
	{Name: "trust_proxy", Default: false, Desc: "Key the rate limit on X-Forwarded-For (only behind a trusted proxy)"},

	{Name: "timeout_short", Default: "5s", Desc: "Deadline for single-course store calls"},
	{Name: "timeout_medium", Default: "10s", Desc: "Deadline for listing courses"},
}

// envAliases maps the plain variable names used by existing deployments onto
// the keys WAFFLE reads. An alias only applies when the target is unset.
var envAliases = []struct{ from, to string }{
	{"PORT", "WAFFLE_HTTP_PORT"},
	{"FRONTEND_URL", "COURSEHUB_FRONTEND_URL"},
	{"MONGODB_URI", "COURSEHUB_MONGO_URI"},
	{"MONGO_URI", "COURSEHUB_MONGO_URI"},
}

// applyEnvAliases copies alias values into their targets and returns the
// names of the targets it set.
func applyEnvAliases() []string {
	var applied []string
	for _, a := range envAliases {
		v, ok := os.LookupEnv(a.from)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		if _, set := os.LookupEnv(a.to); set {
			continue
		}
		if err := os.Setenv(a.to, v); err == nil {
			applied = append(applied, a.to)
		}
	}
	return applied
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// PORT is mapped onto WAFFLE's http_port before loading, so the port the
// listener binds is always the port that was configured.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	for _, name := range applyEnvAliases() {
		logger.Info("applied environment alias", zap.String("target", name))
	}

	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "COURSEHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		Store: strings.ToLower(strings.TrimSpace(appValues.String("store"))),

		MongoURI:            appValues.String("mongo_uri"),
		MongoDatabase:       strings.TrimSpace(appValues.String("mongo_database")),
		MongoMaxPoolSize:    uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize:    uint64(appValues.Int("mongo_min_pool_size")),
		MongoConnectTimeout: appValues.Duration("mongo_connect_timeout", 10*time.Second),

		FrontendURL:    strings.TrimRight(strings.TrimSpace(appValues.String("frontend_url")), "/"),
		CORSMethods:    splitList(appValues.String("cors_methods")),
		WelcomeMessage: appValues.String("welcome_message"),
		MaxBodyBytes:   int64(appValues.Int("max_body_bytes")),

		RateLimit:       appValues.Int("rate_limit"),
		RateLimitWindow: appValues.Duration("rate_limit_window", time.Minute),
		TrustProxy:      appValues.Bool("trust_proxy"),

		TimeoutShort:  appValues.Duration("timeout_short", 5*time.Second),
		TimeoutMedium: appValues.Duration("timeout_medium", 10*time.Second),
	}

	return coreCfg, appCfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.ToUpper(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	switch appCfg.Store {
	case StoreMongo:
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
		if appCfg.MongoDatabase == "" {
			return fmt.Errorf("mongo_database must not be empty")
		}
	case StoreMemory:
		logger.Warn("using in-memory course store; data is lost on restart")
	default:
		return fmt.Errorf("store must be %q or %q, got %q", StoreMongo, StoreMemory, appCfg.Store)
	}

	if !urlutil.IsValidAbsHTTPURL(appCfg.FrontendURL) {
		return fmt.Errorf("frontend_url must be an absolute http(s) URL, got %q", appCfg.FrontendURL)
	}
	if appCfg.RateLimit < 0 {
		return fmt.Errorf("rate_limit must not be negative")
	}
	if appCfg.RateLimit > 0 && appCfg.RateLimitWindow <= 0 {
		return fmt.Errorf("rate_limit_window must be positive when rate_limit is set")
	}
	if len(appCfg.CORSMethods) == 0 {
		return fmt.Errorf("cors_methods must name at least one method")
	}
	return nil
}
