package config

import (
	"fmt"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// MustLoad читает конфиг из YAML файла по пути CONFIG_PATH.
// Если переменная не задана, конфиг собирается только из окружения.
// Завершает процесс при ошибке.
func MustLoad() *Config {
	cfg, err := Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Load читает конфиг из файла path (или только из окружения, если path пустой).
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("read env: %w", err)
		}
		return &cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg.configPath = path

	return &cfg, nil
}

// Path возвращает путь к файлу, из которого был прочитан конфиг.
func (c *Config) Path() string {
	return c.configPath
}
