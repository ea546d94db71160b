package config

import (
	"fmt"
	"time"
)

type Config struct {
	Env          string           `yaml:"env" env:"ENV" env-default:"local"`
	HttpServer   HttpServerConfig `yaml:"httpServer"`
	DBConfig     DBConfig         `yaml:"db"`
	UploadConfig UploadConfig     `yaml:"upload"`
	LookupConfig LookupConfig     `yaml:"lookup"`
	configPath   string
}

type HttpServerConfig struct {
	Address      string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost"`
	Port         string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	Timeout      time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"15s"`
	IdleTimeout  time.Duration `yaml:"idleTimeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	MaxBodyBytes int64         `yaml:"maxBodyBytes" env:"HTTP_MAX_BODY_BYTES" env-default:"12582912"`
}

type DBConfig struct {
	Driver   string `yaml:"driver" env:"DB_DRIVER" env-default:"postgres"` // postgres | sqlite
	Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"DB_PORT" env-default:"5432"`
	Name     string `yaml:"name" env:"DB_NAME" env-default:"postgres"`
	User     string `yaml:"user" env:"DB_USER" env-default:"user"`
	Password string `yaml:"password" env:"DB_PASSWORD" env-default:"password"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
	Path     string `yaml:"path" env:"DB_PATH" env-default:"events.sqlite"` // только для sqlite
}

// DSN собирает строку подключения для выбранного драйвера.
func (c DBConfig) DSN() string {
	if c.Driver == "sqlite" {
		return c.Path
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type UploadConfig struct {
	Dir           string `yaml:"dir" env:"UPLOAD_DIR" env-default:"public/uploads"`
	PublicPrefix  string `yaml:"publicPrefix" env:"UPLOAD_PUBLIC_PREFIX" env-default:"/uploads"`
	MaxImageBytes int64  `yaml:"maxImageBytes" env:"UPLOAD_MAX_IMAGE_BYTES" env-default:"10485760"`
}

type ViaCEPConfig struct {
	BaseURL string        `yaml:"baseURL" env:"VIACEP_BASE_URL" env-default:"https://viacep.com.br/ws"`
	Timeout time.Duration `yaml:"timeout" env:"VIACEP_TIMEOUT" env-default:"5s"`
}

type GeocodingConfig struct {
	BaseURL string        `yaml:"baseURL" env:"GEOCODING_BASE_URL" env-default:"https://maps.googleapis.com/maps/api/geocode/json"`
	APIKey  string        `yaml:"apiKey" env:"GOOGLE_MAPS_API_KEY" env-default:""`
	Timeout time.Duration `yaml:"timeout" env:"GEOCODING_TIMEOUT" env-default:"5s"`
}

type LookupConfig struct {
	ViaCEP    ViaCEPConfig    `yaml:"viacep"`
	Geocoding GeocodingConfig `yaml:"geocoding"`
}
