package market

import (
	"github.com/gridpeak/voltra/internal/market/repository"
	"github.com/gridpeak/voltra/internal/market/service"
	"go.uber.org/fx"
)

var Module = fx.Module("market.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
