package config

import (
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// FeedWindowConfig carries the freshness lags of the rate-limited feeds. The
// defaults reflect the market's settlement delays; operators may override
// them through feeds.yml without restarting.
type FeedWindowConfig struct {
	ConsumptionLag time.Duration `mapstructure:"consumptionLag"`
	SMPLag         time.Duration `mapstructure:"smpLag"`
}

func DefaultFeedWindowConfig() FeedWindowConfig {
	return FeedWindowConfig{
		ConsumptionLag: 2 * time.Hour,
		SMPLag:         4 * time.Hour,
	}
}

// FeedWindowHolder exposes the current feed window config and hot-reloads it
// when the file changes.
type FeedWindowHolder struct {
	current atomic.Value // holds FeedWindowConfig
}

func NewFeedWindowHolder() (*FeedWindowHolder, error) {
	v := viper.New()

	v.SetConfigName("feeds")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/voltra")
	v.AddConfigPath(".")

	v.SetEnvPrefix("VOLTRA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	holder := &FeedWindowHolder{}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		holder.current.Store(DefaultFeedWindowConfig())
		return holder, nil
	}

	holder.current.Store(parseFeedWindows(v))

	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg := parseFeedWindows(v)
		holder.current.Store(cfg)
		log.Printf("feed window config reloaded: consumption=%s smp=%s", cfg.ConsumptionLag, cfg.SMPLag)
	})
	v.WatchConfig()

	return holder, nil
}

// Current returns the active feed window configuration.
func (h *FeedWindowHolder) Current() FeedWindowConfig {
	if cfg, ok := h.current.Load().(FeedWindowConfig); ok {
		return cfg
	}
	return DefaultFeedWindowConfig()
}

func parseFeedWindows(v *viper.Viper) FeedWindowConfig {
	defaults := DefaultFeedWindowConfig()

	var cfg FeedWindowConfig
	if err := v.UnmarshalKey("feeds", &cfg); err != nil {
		log.Printf("invalid feeds config, using defaults: %v", err)
		return defaults
	}
	if cfg.ConsumptionLag <= 0 {
		cfg.ConsumptionLag = defaults.ConsumptionLag
	}
	if cfg.SMPLag <= 0 {
		cfg.SMPLag = defaults.SMPLag
	}
	return cfg
}
