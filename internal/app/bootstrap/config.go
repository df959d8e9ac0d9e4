// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dalemusser/waffle/config"
	wafflemetrics "github.com/dalemusser/waffle/metrics"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/raiden-network/scenario-services/internal/app/factory"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the scenario services.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: secret_key, database, etc.
//   - Environment variables: SCENARIO_SECRET_KEY, SCENARIO_DATABASE, etc.
//   - Command-line flags: --secret_key, --database, etc.
var appConfigKeys = []config.AppKey{
	{Name: "secret_key", Default: factory.DefaultSecret, Desc: "Secret used to sign session cookies (must be strong in production)"},
	{Name: "database", Default: factory.DefaultDatabase, Desc: "Data-store identifier exposed to route groups"},
	{Name: "instance_path", Default: factory.DefaultInstancePath, Desc: "Instance directory for config.yaml and instance-local files"},
	{Name: "mongo_uri", Default: "", Desc: "MongoDB connection URI (blank disables the data-store client)"},
}

// errDevSecretInProd is returned by ValidateConfig and BuildHandler when
// production runs with the development secret.
var errDevSecretInProd = errors.New("secret_key must be set in prod (the development default is not allowed)")

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig merges, with precedence
// flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "SCENARIO", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		SecretKey:    appValues.String("secret_key"),
		Database:     appValues.String("database"),
		InstancePath: appValues.String("instance_path"),
		MongoURI:     appValues.String("mongo_uri"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// A non-blank mongo_uri must be a well-formed mongodb:// or mongodb+srv://
// URI. Production refuses to start with the development secret.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if appCfg.MongoURI != "" {
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
	}
	if coreCfg.Env == "prod" && (appCfg.SecretKey == "" || appCfg.SecretKey == factory.DefaultSecret) {
		logger.Error("refusing to start with development secret in prod")
		return errDevSecretInProd
	}
	if appCfg.SecretKey == factory.DefaultSecret {
		logger.Warn("using development secret_key; set SCENARIO_SECRET_KEY outside development")
	}
	return nil
}

// options translates AppConfig into factory options. Every request is
// timed into WAFFLE's http_request_duration_seconds histogram.
func (c AppConfig) options(logger *zap.Logger) factory.Options {
	return factory.Options{
		Secret:       c.SecretKey,
		Database:     c.Database,
		InstancePath: c.InstancePath,
		Logger:       logger,
		Middleware:   []func(http.Handler) http.Handler{wafflemetrics.HTTPMetrics},
	}
}
