// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"github.com/raiden-network/scenario-services/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Shutdown cleanly tears down the data-store client, if any.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.MongoClient == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Shutdown())
	defer cancel()

	logger.Info("disconnecting MongoDB client")
	if err := deps.MongoClient.Disconnect(ctx); err != nil {
		logger.Error("MongoDB disconnect failed", zap.Error(err))
		return err
	}
	return nil
}
