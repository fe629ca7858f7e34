// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown releases background resources held by deps. It runs after the
// HTTP server has stopped.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) error {
	var err error
	if deps.Jobs != nil {
		logger.Info("stopping background jobs")
		err = deps.Jobs.Stop(ctx)
	}
	if deps.Limiter != nil {
		logger.Info("stopping login rate limiter")
		deps.Limiter.Close()
	}
	return err
}
