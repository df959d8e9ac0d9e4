// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for the scenario services.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers
// the framework-level settings (ports, TLS, log level, env); AppConfig
// covers what the application factory and its route groups need.
type AppConfig struct {
	// Application factory seeds
	SecretKey    string // SECRET_KEY seed; signs session cookies
	Database     string // DATABASE seed; data-store identifier
	InstancePath string // Instance directory holding config.yaml and local state

	// Optional data-store client
	MongoURI string // MongoDB connection string; empty disables the client
}
