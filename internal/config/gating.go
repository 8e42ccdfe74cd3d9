package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// GatingConfig holds the trial-gating knobs: how many days before the trial
// end the warning banner appears, how many days past expiry a tenant keeps
// access (grace), and which features lock when the grace runs out.
type GatingConfig struct {
	WarningThresholdDays int      `mapstructure:"warningThresholdDays"`
	GraceDays            int      `mapstructure:"graceDays"`
	BlockedFeatures      []string `mapstructure:"blockedFeatures"`
}

func DefaultGatingConfig() GatingConfig {
	return GatingConfig{
		WarningThresholdDays: 5,
		GraceDays:            0,
		BlockedFeatures: []string{
			"pets",
			"appointments",
			"inventory",
			"reports",
			"automations",
		},
	}
}

// GatingConfigHolder serves the current gating config and hot-reloads it
// when the underlying file changes. Invalid updates are ignored.
type GatingConfigHolder struct {
	current atomic.Value // holds GatingConfig
}

func NewGatingConfigHolder() (*GatingConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("gating")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/vetcita/config")
	v.AddConfigPath("/etc/vetcita")
	v.AddConfigPath(".")

	v.SetEnvPrefix("VETCITA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultGatingConfig()
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		v.SetDefault("gating.warningThresholdDays", defaults.WarningThresholdDays)
		v.SetDefault("gating.graceDays", defaults.GraceDays)
		v.SetDefault("gating.blockedFeatures", defaults.BlockedFeatures)
	}

	var cfg GatingConfig
	if err := v.UnmarshalKey("gating", &cfg); err != nil {
		return nil, err
	}
	if err := validateGatingConfig(cfg); err != nil {
		return nil, err
	}

	holder := &GatingConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated GatingConfig
		if err := v.UnmarshalKey("gating", &updated); err != nil {
			log.Printf("[gating-config] reload failed: %v", err)
			return
		}
		if err := validateGatingConfig(updated); err != nil {
			log.Printf("[gating-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[gating-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *GatingConfigHolder) Get() GatingConfig {
	return h.current.Load().(GatingConfig)
}

// NewStaticGatingHolder returns a holder pinned to the given config. Tests use it.
func NewStaticGatingHolder(cfg GatingConfig) *GatingConfigHolder {
	holder := &GatingConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func validateGatingConfig(cfg GatingConfig) error {
	if cfg.WarningThresholdDays < 1 {
		return errors.New("gating.warningThresholdDays must be at least 1")
	}
	if cfg.GraceDays < 0 {
		return errors.New("gating.graceDays cannot be negative")
	}
	if len(cfg.BlockedFeatures) == 0 {
		return errors.New("gating.blockedFeatures cannot be empty")
	}
	return nil
}
