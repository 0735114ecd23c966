package config

import (
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

type SchedulerConfig struct {
	Port            int
	DefaultMode     string
	DefaultTieBreak string
	MaxProcesses    int
	MaxSessions     int
}

var once sync.Once
var config *SchedulerConfig

// GetSchedulerConfig loads config.yaml from the working directory once.
// A missing file falls back to defaults; a malformed one is fatal.
func GetSchedulerConfig() *SchedulerConfig {
	once.Do(func() {
		v := viper.New()
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./")
		cfg, err := Load(v)
		if err != nil {
			log.Fatalln(err)
		}
		config = cfg
	})

	return config
}

// Load reads configuration through v, applying defaults and PRISCHED_ env
// overrides.
func Load(v *viper.Viper) (*SchedulerConfig, error) {
	setDefaults(v)
	v.SetEnvPrefix("prisched")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		log.Println("config file not found, using defaults")
	}

	cfg := &SchedulerConfig{}
	cfg.Port = v.GetInt("port")
	cfg.DefaultMode = v.GetString("scheduler.default_mode")
	cfg.DefaultTieBreak = v.GetString("scheduler.default_tie_break")
	cfg.MaxProcesses = v.GetInt("scheduler.max_processes")
	cfg.MaxSessions = v.GetInt("workspace.max_sessions")
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 9095)
	v.SetDefault("scheduler.default_mode", "nonpreemptive")
	v.SetDefault("scheduler.default_tie_break", "fcfs")
	v.SetDefault("scheduler.max_processes", 500)
	v.SetDefault("workspace.max_sessions", 1000)
}
