// internal/app/factory/blueprint.go
package factory

import "github.com/go-chi/chi/v5"

// Blueprint is a RouteGroup built from a name and a routing function.
// Routes registers directly on the App's router.
type Blueprint struct {
	GroupName string
	Routes    func(r chi.Router)
}

// NewBlueprint returns a Blueprint named name.
func NewBlueprint(name string, routes func(r chi.Router)) *Blueprint {
	return &Blueprint{GroupName: name, Routes: routes}
}

// Name implements RouteGroup.
func (b *Blueprint) Name() string { return b.GroupName }

// Register implements RouteGroup.
func (b *Blueprint) Register(app *App) {
	if b.Routes != nil {
		b.Routes(app.Router())
	}
}
