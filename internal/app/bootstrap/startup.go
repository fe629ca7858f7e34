// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/attendhub/internal/app/resources"
	"github.com/dalemusser/attendhub/internal/app/system/timeouts"
	"github.com/dalemusser/attendhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup configures process-wide state before the handler is built:
// timeouts, the view-model lookups and the shared template set.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Handler:    appCfg.HandlerTimeout,
		ReadHeader: coreCfg.HTTP.ReadHeaderTimeout,
		Read:       coreCfg.HTTP.ReadTimeout,
		Write:      coreCfg.HTTP.WriteTimeout,
		Idle:       coreCfg.HTTP.IdleTimeout,
	})

	viewdata.SetNameLookup(deps.Accounts.DisplayName)
	viewdata.SetSiteNameLoader(deps.Settings.SiteName)

	resources.LoadSharedTemplates()

	logger.Info("startup complete", zap.String("env", coreCfg.Env))
	return nil
}

// OnReady starts the background jobs once the server is listening.
func OnReady(coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) {
	if deps.Jobs != nil {
		deps.Jobs.Start()
	}
	logger.Info("attendhub ready", zap.Int("http_port", coreCfg.HTTP.HTTPPort))
}
