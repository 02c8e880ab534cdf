package providers

import (
	"fmt"
	"path/filepath"
	"snappy/internal/structures"
	"strings"

	"github.com/spf13/viper"
)

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("snapshots.root", "./snaps")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("logger.dir", ".")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.size", 8)
	v.SetDefault("cache.ttl", 0)
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.textfile", "")
	v.SetDefault("artifacts.enabled", false)
	v.SetDefault("artifacts.dir", "./artifacts")
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	setConfigDefaults(v)

	v.BindEnv("logger.level", "SNAPPY_LOG_LEVEL")
	v.BindEnv("logger.dir", "SNAPPY_LOG_DIR")
	v.BindEnv("snapshots.root", "SNAPPY_SNAPSHOT_ROOT")
	v.BindEnv("cache.enabled", "SNAPPY_CACHE_ENABLED")
	v.BindEnv("cache.size", "SNAPPY_CACHE_SIZE")
	v.BindEnv("metrics.enabled", "SNAPPY_METRICS_ENABLED")
	v.BindEnv("artifacts.enabled", "SNAPPY_ARTIFACTS_ENABLED")

	if flags.ConfigPath != "" {
		filename := filepath.Base(flags.ConfigPath)
		v.AddConfigPath(filepath.Dir(flags.ConfigPath))
		v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	if flags.Directory != "" {
		conf.Snapshots.Root = flags.Directory
	}

	cnfValidator := NewCnfValidator(&conf)
	if err := cnfValidator.Validate(); err != nil {
		return nil, err
	}

	conf.AppName = "snappy"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
