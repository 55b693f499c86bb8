package generation

import (
	"github.com/gridpeak/voltra/internal/generation/repository"
	"github.com/gridpeak/voltra/internal/generation/service"
	"go.uber.org/fx"
)

var Module = fx.Module("generation.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
