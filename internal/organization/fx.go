package organization

import (
	"github.com/gridpeak/voltra/internal/organization/repository"
	"github.com/gridpeak/voltra/internal/organization/service"
	"go.uber.org/fx"
)

var Module = fx.Module("organization.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
