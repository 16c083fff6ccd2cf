package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/loykin/hypnoctl/internal/logger"
	"github.com/loykin/hypnoctl/internal/service"
)

// FileConfig represents the top-level TOML structure:
//
//	[service]
//	name = "myapp"
//	command = ["hypnotoad"]
//	app = "/srv/myapp/script/myapp"
//	pidfile = "/srv/myapp/script/hypnotoad.pid"
//	workdir = "/srv/myapp"
//	  [service.env]
//	  MOJO_MODE = "production"
//	  [service.wait_status]
//	  step = "100ms"
//	  trials = 10
//	[log]
//	level = "info"
//	dir = "/var/log/hypnoctl"
//	[store]
//	dsn = "sqlite:///var/lib/hypnoctl/journal.db"
//	[server]
//	listen = ":8080"
//	base_path = "/hypnoctl"
type FileConfig struct {
	Service ServiceConfig `toml:"service" mapstructure:"service"`
	Log     *LogConfig    `toml:"log" mapstructure:"log"`
	Store   *StoreConfig  `toml:"store" mapstructure:"store"`
	Server  *ServerConfig `toml:"server" mapstructure:"server"`
}

type ServiceConfig struct {
	Name       string            `toml:"name" mapstructure:"name"`
	Command    []string          `toml:"command" mapstructure:"command"`
	App        string            `toml:"app" mapstructure:"app"`
	PIDFile    string            `toml:"pidfile" mapstructure:"pidfile"`
	WorkDir    string            `toml:"workdir" mapstructure:"workdir"`
	Env        map[string]string `toml:"env" mapstructure:"env"`
	WaitStatus WaitStatusConfig  `toml:"wait_status" mapstructure:"wait_status"`
}

type WaitStatusConfig struct {
	Step   time.Duration `toml:"step" mapstructure:"step"`
	Trials int           `toml:"trials" mapstructure:"trials"`
}

type LogConfig struct {
	Level        string `toml:"level" mapstructure:"level"`
	Format       string `toml:"format" mapstructure:"format"`
	Color        bool   `toml:"color" mapstructure:"color"`
	Dir          string `toml:"dir" mapstructure:"dir"`
	LauncherPath string `toml:"launcher_path" mapstructure:"launcher_path"`
	MaxSizeMB    int    `toml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups   int    `toml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays   int    `toml:"max_age_days" mapstructure:"max_age_days"`
	Compress     bool   `toml:"compress" mapstructure:"compress"`
}

type StoreConfig struct {
	DSN string `toml:"dsn" mapstructure:"dsn"`
}

type ServerConfig struct {
	Listen   string `toml:"listen" mapstructure:"listen"`
	BasePath string `toml:"base_path" mapstructure:"base_path"`
}

// Config is the fully parsed and validated configuration. Service has
// passed service.Config validation; custom commands are registered
// programmatically, never from files.
type Config struct {
	Service service.Config
	Store   StoreConfig
	Server  ServerConfig
}

// Load reads a TOML config file and validates the service section.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var fc FileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return nil, err
	}

	var logCfg logger.Config
	if fc.Log != nil {
		logCfg = logger.Config{
			Level:        fc.Log.Level,
			Format:       fc.Log.Format,
			Color:        fc.Log.Color,
			Dir:          fc.Log.Dir,
			LauncherPath: fc.Log.LauncherPath,
			MaxSizeMB:    fc.Log.MaxSizeMB,
			MaxBackups:   fc.Log.MaxBackups,
			MaxAgeDays:   fc.Log.MaxAgeDays,
			Compress:     fc.Log.Compress,
		}
	}

	svc := service.Config{
		Name:    fc.Service.Name,
		Command: fc.Service.Command,
		AppPath: fc.Service.App,
		PIDFile: fc.Service.PIDFile,
		WorkDir: fc.Service.WorkDir,
		Env:     fc.Service.Env,
		WaitStatus: service.WaitStatus{
			Step:   fc.Service.WaitStatus.Step,
			Trials: fc.Service.WaitStatus.Trials,
		},
		Log: logCfg,
	}
	svc, err := svc.Normalize()
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	out := &Config{Service: svc}
	if fc.Store != nil {
		out.Store = *fc.Store
	}
	if fc.Server != nil {
		out.Server = *fc.Server
	}
	return out, nil
}
