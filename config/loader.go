package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const defaultPort = 16182

// Load reads and validates the application configuration. An empty path tries
// config.yml in the working directory and next to the binary's deploy layout.
func Load(path string) (AppConfig, error) {
	paths := []string{"config.yml", "./deploy/config.yml"}
	if path != "" {
		paths = []string{path}
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return AppConfig{}, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, err
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultPort
	}
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// Default returns a runnable configuration for when no config file exists.
func Default() AppConfig {
	return AppConfig{
		Server:   ServerConfig{Port: defaultPort},
		Language: "en",
	}
}
