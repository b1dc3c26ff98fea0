package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

var (
	// ErrInvalidBusinessHours возвращается при некорректной конфигурации рабочих часов
	ErrInvalidBusinessHours = errors.New("config: invalid business hours")

	// ErrInvalidGranularity возвращается при некорректном шаге слотов
	ErrInvalidGranularity = errors.New("config: invalid slot granularity")
)

// Config конфигурация сервиса
type Config struct {
	Server        Server        `toml:"server"`
	Database      Database      `toml:"database"`
	Logs          Logs          `toml:"logs"`
	Metrics       Metrics       `toml:"metrics"`
	Redis         Redis         `toml:"redis"`
	BusinessHours BusinessHours `toml:"business_hours"`
}

// Server настройки HTTP-сервера
type Server struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// Database настройки подключения к Postgres
type Database struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к Postgres
func (d Database) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Logs настройки логирования
type Logs struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Metrics настройки prometheus-метрик
type Metrics struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// Redis настройки кэша слотов
type Redis struct {
	Enabled         bool   `toml:"enabled"`
	Addr            string `toml:"addr"`
	Password        string `toml:"password"`
	DB              int    `toml:"db"`
	SlotsTTLSeconds int    `toml:"slots_ttl_seconds"`
}

// BusinessHours рабочие часы мастерской
// Слоты генерируются от OpenHour до CloseHour с шагом SlotGranularityMinutes
type BusinessHours struct {
	OpenHour               int `toml:"open_hour"`
	CloseHour              int `toml:"close_hour"`
	SlotGranularityMinutes int `toml:"slot_granularity_minutes"`
}

// Load читает и валидирует конфигурацию из TOML-файла
// Некорректные рабочие часы - ошибка конфигурации, сервис не стартует
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate проверяет инварианты конфигурации
func (c *Config) Validate() error {
	bh := c.BusinessHours

	if bh.OpenHour < 0 || bh.OpenHour > 23 || bh.CloseHour < 1 || bh.CloseHour > 24 {
		return fmt.Errorf("%w: hours must be within a day, got open=%d close=%d",
			ErrInvalidBusinessHours, bh.OpenHour, bh.CloseHour)
	}

	if bh.OpenHour >= bh.CloseHour {
		return fmt.Errorf("%w: open_hour (%d) must be before close_hour (%d)",
			ErrInvalidBusinessHours, bh.OpenHour, bh.CloseHour)
	}

	if bh.SlotGranularityMinutes != 60 {
		return fmt.Errorf("%w: only 60-minute granularity is supported, got %d",
			ErrInvalidGranularity, bh.SlotGranularityMinutes)
	}

	return nil
}
