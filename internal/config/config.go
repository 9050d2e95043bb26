package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Admin struct {
		ID string `yaml:"id"`
	} `yaml:"admin"`
	Store struct {
		// Backend selects the key-value store: "redis", "postgres", "memory",
		// or empty for none (init degrades to a demo response).
		Backend string `yaml:"backend"`
		Redis   struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
		Postgres struct {
			URL string `yaml:"url"`
		} `yaml:"postgres"`
	} `yaml:"store"`
}

// Load reads YAML config from path and applies environment overrides.
// A missing file yields a zero config so env-only deployments work.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	} else if !os.IsNotExist(err) {
		return cfg, err
	}

	if adminID := os.Getenv("ADMIN_ID"); adminID != "" {
		cfg.Admin.ID = adminID
	}
	return cfg, nil
}
