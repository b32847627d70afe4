// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"

	coursesfeature "github.com/dalemusser/coursehub/internal/app/features/courses"
	healthfeature "github.com/dalemusser/coursehub/internal/app/features/health"
	homefeature "github.com/dalemusser/coursehub/internal/app/features/home"
	"github.com/dalemusser/coursehub/internal/app/system/ratelimit"
	"github.com/dalemusser/coursehub/internal/app/system/requestlog"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/logging"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// CoursesPath is where the course API is mounted.
const CoursesPath = "/api/v1/courses"

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// Every request passes through request id, access log, panic recovery, and
// CORS (one allowed origin) before reaching a feature router.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	return newRouter(appCfg, deps, logger), nil
}

func newRouter(appCfg AppConfig, deps DBDeps, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(requestlog.EchoRequestID)
	r.Use(logging.RequestLogger(logger))
	r.Use(requestlog.Recoverer(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{appCfg.FrontendURL},
		AllowedMethods: appCfg.CORSMethods,
		AllowedHeaders: []string{"Content-Type", requestlog.HeaderRequestID},
		ExposedHeaders: []string{requestlog.HeaderRequestID, "Location"},
		MaxAge:         300,
	}))

	// Set before mounting so mounted subrouters inherit JSON fallbacks.
	r.NotFound(coursesfeature.NotFound)
	r.MethodNotAllowed(coursesfeature.MethodNotAllowed)

	// Health check endpoint for load balancers and orchestrators
	var pinger healthfeature.Pinger = alwaysUp{}
	if deps.Mongo != nil {
		pinger = deps.Mongo
	}
	r.Mount("/health", healthfeature.Routes(healthfeature.NewHandler(pinger, logger)))

	coursesHandler := coursesfeature.NewHandler(deps.Courses, appCfg.MaxBodyBytes, logger)
	r.Route(CoursesPath, func(r chi.Router) {
		if deps.Limiter != nil {
			r.Use(ratelimit.Middleware(deps.Limiter, appCfg.TrustProxy, logger))
		}
		r.Mount("/", coursesfeature.Routes(coursesHandler))
	})

	homeHandler := homefeature.NewHandler(appCfg.WelcomeMessage, logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	return r
}

// alwaysUp reports healthy; used when no external store is configured.
type alwaysUp struct{}

func (alwaysUp) Ping(context.Context) error { return nil }
