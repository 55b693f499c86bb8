package plant

import (
	"github.com/gridpeak/voltra/internal/plant/repository"
	"github.com/gridpeak/voltra/internal/plant/service"
	"go.uber.org/fx"
)

var Module = fx.Module("plant.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
