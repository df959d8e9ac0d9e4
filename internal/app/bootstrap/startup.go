// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"github.com/raiden-network/scenario-services/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Startup logs the effective runtime settings before the handler is
// built. Timeouts were already applied by ConnectDB.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	cur := timeouts.Current()
	logger.Info("starting scenario services",
		zap.String("env", coreCfg.Env),
		zap.String("instance_path", appCfg.InstancePath),
		zap.Bool("data_store", deps.MongoClient != nil),
		zap.Duration("ping_timeout", cur.Ping),
		zap.Duration("shutdown_timeout", cur.Shutdown))
	return nil
}
