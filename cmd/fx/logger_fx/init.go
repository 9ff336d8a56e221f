package logger_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"tripmate/internal/config"
	"tripmate/pkg/logger"
)

var Module = fx.Options(
	fx.Provide(provideLogger),
	fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: log.Named("fx")}
	}),
	fx.Invoke(registerSync),
)

func provideLogger(cfg *config.Config) (*zap.Logger, error) {
	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Encoding: cfg.LogEnc})
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(log)
	return log, nil
}

func registerSync(lc fx.Lifecycle, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			// stdout sync fails on some platforms, nothing to do about it
			_ = log.Sync()
			return nil
		},
	})
}
