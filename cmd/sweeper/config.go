package main

import (
	"encoding/json"
	"os"

	"github.com/sirupsen/logrus"
)

type LogConfig struct {
	File       string `json:"file"`
	MaxSizeMb  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	MaxAgeDays int    `json:"max_age_days"`
}

type Config struct {
	Mode string    `json:"mode"`
	Addr string    `json:"addr"`
	Log  LogConfig `json:"log"`
}

func DefaultConfig() *Config {
	return &Config{
		Mode: "development",
		Addr: ":8080",
		Log: LogConfig{
			MaxSizeMb:  50,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"mode":            c.Mode,
		"addr":            c.Addr,
		"log_file":        c.Log.File,
		"log_max_size_mb": c.Log.MaxSizeMb,
		"log_max_backups": c.Log.MaxBackups,
		"log_max_age":     c.Log.MaxAgeDays,
	}
}

func (c Config) Production() bool {
	return c.Mode == "production"
}

func (c Config) Development() bool {
	return c.Mode != "production"
}

func ReadConfig(path string, config *Config) error {
	if b, err := os.ReadFile(path); err != nil {
		return err
	} else {
		return json.Unmarshal(b, config)
	}
}
