// internal/app/factory/factory.go

// Package factory builds configured scenario-service application
// instances from route groups and a configuration source.
//
// Every call to Construct produces an independent App: its own router,
// its own settings, its own session store. Nothing is shared between
// calls except the filesystem.
package factory

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// Options controls how Construct builds an App. Zero values take the
// package defaults.
type Options struct {
	Secret       string      // SECRET_KEY seed (DefaultSecret)
	Database     string      // DATABASE seed (DefaultDatabase)
	Source       Source      // nil means FileSource{}
	InstancePath string      // instance directory (DefaultInstancePath)
	Logger       *zap.Logger // nil means zap.NewNop()

	// Middleware is installed on the router, in order, before any route
	// group registers.
	Middleware []func(http.Handler) http.Handler
}

// RouteGroup is a named bundle of handlers that can register itself
// against an App.
type RouteGroup interface {
	Name() string
	Register(app *App)
}

// App is a configured, route-registered application instance.
type App struct {
	id           string
	router       *chi.Mux
	settings     Settings
	instancePath string
	groups       []string
	sessions     *sessions.CookieStore
	log          *zap.Logger
}

type ctxKey string

const currentAppKey ctxKey = "currentApp"

// Construct builds a new App. Groups are registered in the order given.
//
// Settings are seeded with SECRET_KEY and DATABASE, then merged with the
// supplemental source: the instance config file when opts.Source is a
// FileSource (absent file is fine), or the override mapping when it is
// an OverrideSource. The instance directory is created before returning.
func Construct(opts Options, groups ...RouteGroup) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	instancePath, err := filepath.Abs(orDefault(opts.InstancePath, DefaultInstancePath))
	if err != nil {
		return nil, fmt.Errorf("resolve instance path: %w", err)
	}

	settings := Settings{
		KeySecret:   orDefault(opts.Secret, DefaultSecret),
		KeyDatabase: orDefault(opts.Database, DefaultDatabase),
	}

	src := opts.Source
	if src == nil {
		src = FileSource{}
	}
	loaded, err := src.apply(settings, instancePath)
	if err != nil {
		return nil, err
	}
	for _, key := range []string{KeySecret, KeyDatabase} {
		if err := settings.requireString(key); err != nil {
			return nil, err
		}
	}
	if !loaded {
		logger.Debug("no instance config file, using seeded settings",
			zap.String("instance_path", instancePath))
	}

	a := &App{
		id:           uuid.NewString(),
		router:       chi.NewRouter(),
		settings:     settings,
		instancePath: instancePath,
		sessions:     sessions.NewCookieStore([]byte(settings.String(KeySecret))),
		log:          logger,
	}

	// Middleware must be installed on a chi mux before any route.
	a.router.Use(a.bindContext)
	a.router.Use(opts.Middleware...)

	for _, g := range groups {
		g.Register(a)
		a.groups = append(a.groups, g.Name())
	}

	if err := os.MkdirAll(instancePath, 0o755); err != nil {
		return nil, fmt.Errorf("create instance directory: %w", err)
	}

	logger.Info("application constructed",
		zap.String("instance_id", a.id),
		zap.String("instance_path", instancePath),
		zap.String("database", a.Database()),
		zap.String("config_source", src.kind()),
		zap.Strings("groups", a.groups))

	return a, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// ID returns the unique identifier of this instance.
func (a *App) ID() string { return a.id }

// Router returns the router route groups register against.
func (a *App) Router() chi.Router { return a.router }

// Settings returns a copy of the final settings.
func (a *App) Settings() Settings { return a.settings.Clone() }

// Setting returns a copy of a single setting and whether it is present.
func (a *App) Setting(key string) (any, bool) {
	v, ok := a.settings[key]
	return cloneValue(v), ok
}

// Secret returns the SECRET_KEY setting.
func (a *App) Secret() string { return a.settings.String(KeySecret) }

// Database returns the DATABASE setting.
func (a *App) Database() string { return a.settings.String(KeyDatabase) }

// InstancePath returns the absolute instance directory.
func (a *App) InstancePath() string { return a.instancePath }

// Groups returns the registered group names in registration order.
func (a *App) Groups() []string {
	out := make([]string, len(a.groups))
	copy(out, a.groups)
	return out
}

// Sessions returns the cookie store signed with the SECRET_KEY setting.
func (a *App) Sessions() *sessions.CookieStore { return a.sessions }

// Logger returns the App's logger.
func (a *App) Logger() *zap.Logger { return a.log }

// ServeHTTP dispatches to the App's router.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

func (a *App) bindContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), currentAppKey, a)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Current returns the App serving r.
func Current(r *http.Request) (*App, bool) {
	a, ok := r.Context().Value(currentAppKey).(*App)
	return a, ok
}
