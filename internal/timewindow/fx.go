package timewindow

import (
	"github.com/gridpeak/voltra/internal/config"
	"go.uber.org/fx"
)

func NewFromConfig(holder *config.FeedWindowHolder) *Policy {
	return NewDynamicPolicy(func() Config {
		cfg := holder.Current()
		return Config{
			ConsumptionLag: cfg.ConsumptionLag,
			SMPLag:         cfg.SMPLag,
		}
	})
}

var Module = fx.Module("timewindow",
	fx.Provide(NewFromConfig),
)
