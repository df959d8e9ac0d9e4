// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"github.com/raiden-network/scenario-services/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB connects the optional MongoDB client and verifies it with a
// ping. A blank mongo_uri leaves DBDeps empty.
//
// WAFFLE runs ConnectDB before Startup, so environment timeout overrides
// are applied here, before the connect deadline is taken.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		cur := timeouts.Current()
		logger.Info("timeouts configured from environment",
			zap.Int("count", n),
			zap.Duration("ping", cur.Ping),
			zap.Duration("connect", cur.Connect),
			zap.Duration("shutdown", cur.Shutdown))
	}

	if appCfg.MongoURI == "" {
		logger.Info("mongo_uri not set, running without a data-store client")
		return DBDeps{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Connect())
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(appCfg.MongoURI))
	if err != nil {
		logger.Error("MongoDB connect failed", zap.Error(err))
		return DBDeps{}, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logger.Error("MongoDB ping failed", zap.Error(err))
		_ = client.Disconnect(context.Background())
		return DBDeps{}, fmt.Errorf("ping mongo: %w", err)
	}

	logger.Info("connected to MongoDB", zap.String("database", appCfg.Database))
	return DBDeps{MongoClient: client}, nil
}

// EnsureSchema is a no-op: the scenario services own no collections.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	return nil
}
