// internal/app/bootstrap/hooks.go
package bootstrap

import (
	"github.com/dalemusser/waffle/app"
)

// Hooks wires the app into WAFFLE's lifecycle.
var Hooks = app.Hooks[AppConfig, Deps]{
	Name:           "attendhub",
	LoadConfig:     LoadConfig,
	ValidateConfig: ValidateConfig,
	ConnectDB:      BuildDeps,
	Startup:        Startup,
	BuildHandler:   BuildHandler,
	OnReady:        OnReady,
	Shutdown:       Shutdown,
}
