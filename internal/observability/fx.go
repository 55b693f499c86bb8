package observability

import (
	"github.com/gridpeak/voltra/internal/config"
	"github.com/gridpeak/voltra/internal/observability/logger"
	"github.com/gridpeak/voltra/internal/observability/metrics"
	"go.uber.org/fx"
)

func provideLoggerConfig(cfg config.Config) logger.Config {
	return logger.Config{
		ServiceName:         cfg.AppName,
		Environment:         cfg.Environment,
		Version:             cfg.AppVersion,
		Level:               cfg.LogLevel,
		Format:              cfg.LogFormat,
		IncludeCaller:       true,
		IncludeStackOnError: cfg.Environment != "production",
	}
}

var Module = fx.Module("observability",
	fx.Provide(
		provideLoggerConfig,
		logger.New,
		metrics.NewHTTPMetrics,
	),
)
