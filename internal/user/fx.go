package user

import (
	"github.com/gridpeak/voltra/internal/user/repository"
	"github.com/gridpeak/voltra/internal/user/service"
	"go.uber.org/fx"
)

var Module = fx.Module("user.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
