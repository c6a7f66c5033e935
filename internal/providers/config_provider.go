package providers

import (
	"fmt"
	"path/filepath"
	"spotter/internal/structures"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const AppName = "Spotter"

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("remote.table", "sightings")
	v.SetDefault("remote.timeout", 10*time.Second)
	v.SetDefault("sync.probeTimeout", 3*time.Second)
	v.SetDefault("sync.flushTimeout", 30*time.Second)
	v.SetDefault("cache.ttl", 5*time.Second)

	v.BindEnv("logger.level", "SPOTTER_LOG_LEVEL")
	v.BindEnv("remote.driver", "SPOTTER_REMOTE_DRIVER")
	v.BindEnv("remote.url", "SPOTTER_REMOTE_URL")
	v.BindEnv("remote.apiKey", "SPOTTER_REMOTE_API_KEY")
	v.BindEnv("queue.path", "SPOTTER_QUEUE_PATH")
	v.BindEnv("sync.probeInterval", "SPOTTER_PROBE_INTERVAL")
	v.BindEnv("sync.forceOffline", "SPOTTER_FORCE_OFFLINE")
	v.BindEnv("cache.enabled", "SPOTTER_CACHE_ENABLED")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = AppName
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
