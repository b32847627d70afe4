// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	coursestore "github.com/dalemusser/coursehub/internal/app/store/courses"
	"github.com/dalemusser/coursehub/internal/app/system/indexes"
	"github.com/dalemusser/coursehub/internal/app/system/mongoconn"
	"github.com/dalemusser/coursehub/internal/app/system/ratelimit"
	"github.com/dalemusser/coursehub/internal/app/system/validators"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// ConnectDB builds the course backend. For the Mongo backend it dials through
// the connection provider; a failure is returned so WAFFLE aborts startup.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	if appCfg.Store == StoreMemory {
		return DBDeps{
			Courses: coursestore.NewMemory(),
			Limiter: newLimiter(appCfg),
		}, nil
	}

	provider := mongoconn.New(mongoconn.Options{
		Database:       appCfg.MongoDatabase,
		MaxPoolSize:    appCfg.MongoMaxPoolSize,
		MinPoolSize:    appCfg.MongoMinPoolSize,
		ConnectTimeout: appCfg.MongoConnectTimeout,
	}, logger)

	if _, err := provider.Connect(ctx, appCfg.MongoURI); err != nil {
		logger.Error("MongoDB connection failed; aborting startup", zap.Error(err))
		return DBDeps{}, err
	}

	return DBDeps{
		Mongo:   provider,
		Courses: coursestore.New(provider, logger),
		Limiter: newLimiter(appCfg),
	}, nil
}

func newLimiter(appCfg AppConfig) *ratelimit.Limiter {
	if appCfg.RateLimit <= 0 {
		return nil
	}
	return ratelimit.New(appCfg.RateLimit, appCfg.RateLimitWindow)
}

// EnsureSchema creates the courses collection with its validator and indexes.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Mongo == nil {
		return nil
	}
	db, err := deps.Mongo.Database()
	if err != nil {
		return err
	}
	if err := validators.EnsureAll(ctx, db, logger); err != nil {
		logger.Error("ensure collection validators failed", zap.Error(err))
		return err
	}
	if err := indexes.EnsureAll(ctx, db, logger); err != nil {
		logger.Error("ensure indexes failed", zap.Error(err))
		return err
	}
	return nil
}
