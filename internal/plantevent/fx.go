package plantevent

import (
	"github.com/gridpeak/voltra/internal/plantevent/repository"
	"github.com/gridpeak/voltra/internal/plantevent/service"
	"go.uber.org/fx"
)

var Module = fx.Module("plantevent.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
