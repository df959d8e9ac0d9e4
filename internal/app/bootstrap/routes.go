// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/raiden-network/scenario-services/internal/app/factory"
	metricsfeature "github.com/raiden-network/scenario-services/internal/app/features/metrics"
	statusfeature "github.com/raiden-network/scenario-services/internal/app/features/status"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler for the scenario services.
//
// WAFFLE calls this after configuration, DB connection and Startup. The
// application factory builds the instance; route groups are registered
// in the order listed in routeGroups.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	a, err := factory.Construct(appCfg.options(logger), routeGroups(deps, logger)...)
	if err != nil {
		logger.Error("application construction failed", zap.Error(err))
		return nil, err
	}

	// The instance config file may have replaced the validated secret.
	if coreCfg.Env == "prod" && (a.Secret() == "" || a.Secret() == factory.DefaultSecret) {
		logger.Error("refusing to start with development secret in prod",
			zap.String("instance_path", a.InstancePath()))
		return nil, errDevSecretInProd
	}
	return a, nil
}

// routeGroups lists the groups every scenario service mounts.
func routeGroups(deps DBDeps, logger *zap.Logger) []factory.RouteGroup {
	var store statusfeature.Pinger
	if deps.MongoClient != nil {
		store = deps.MongoClient
	}

	return []factory.RouteGroup{
		statusfeature.NewHandler(store, logger),
		metricsfeature.NewHandler(logger),
	}
}
