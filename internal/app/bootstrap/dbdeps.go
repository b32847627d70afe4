// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	coursesfeature "github.com/dalemusser/coursehub/internal/app/features/courses"
	"github.com/dalemusser/coursehub/internal/app/system/mongoconn"
	"github.com/dalemusser/coursehub/internal/app/system/ratelimit"
)

// DBDeps holds database/back-end dependencies for the app.
//
// Mongo is nil when the in-memory store is selected. Courses is the only
// writer of the courses collection. Limiter is nil when rate limiting is off;
// it lives here so Shutdown can stop its cleanup goroutine.
type DBDeps struct {
	Mongo   *mongoconn.Provider
	Courses coursesfeature.Repository
	Limiter *ratelimit.Limiter
}
