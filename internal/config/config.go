package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации симуляции океана.
type Config struct {
	Terrain   TerrainConfig   `yaml:"terrain"`
	Islands   IslandConfig    `yaml:"islands"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type TerrainConfig struct {
	TileSize     float64 `yaml:"tile_size"`
	ActiveRadius int     `yaml:"active_radius"`
}

type IslandConfig struct {
	Seed      int64   `yaml:"seed"`
	Samples   int     `yaml:"samples"`
	Threshold float64 `yaml:"threshold"`
	Frequency float64 `yaml:"frequency"`
	MaxRadius float64 `yaml:"max_radius"`
	MaxHeight float64 `yaml:"max_height"`
}

type MetricsConfig struct {
	Listen string `yaml:"listen"`
}

type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  bool   `yaml:"file"`
}

// Ошибки валидации
var (
	ErrInvalidTileSize  = errors.New("tile_size must be positive")
	ErrInvalidRadius    = errors.New("active_radius must not be negative")
	ErrInvalidSamples   = errors.New("samples must be positive")
	ErrInvalidThreshold = errors.New("threshold must be within [0, 1]")
)

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Terrain: TerrainConfig{
			TileSize:     100,
			ActiveRadius: 1,
		},
		Islands: IslandConfig{
			Seed:      1337,
			Samples:   4,
			Threshold: 0.62,
			Frequency: 0.013,
			MaxRadius: 8,
			MaxHeight: 12,
		},
		Telemetry: TelemetryConfig{
			ServiceName: "ocean-terrain",
		},
		Logging: LoggingConfig{
			Level: "INFO",
		},
	}
}

// GetMetricsAddr возвращает адрес Prometheus эндпоинта с приоритетом: config -> env.
// Пустая строка означает, что эндпоинт не поднимается.
func (m *MetricsConfig) GetMetricsAddr() string {
	if m.Listen != "" {
		return m.Listen
	}
	return os.Getenv("OCEAN_METRICS_ADDR")
}

// applyEnv накладывает переменные окружения на значения по умолчанию.
// Значения из YAML файла применяются позже и имеют приоритет:
// file -> env -> default.
func applyEnv(cfg *Config) {
	if envVal := os.Getenv("OCEAN_ACTIVE_RADIUS"); envVal != "" {
		if r, err := strconv.Atoi(envVal); err == nil && r >= 0 {
			cfg.Terrain.ActiveRadius = r
		}
	}
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Terrain.TileSize <= 0 {
		return fmt.Errorf("terrain: %w (got %v)", ErrInvalidTileSize, c.Terrain.TileSize)
	}
	if c.Terrain.ActiveRadius < 0 {
		return fmt.Errorf("terrain: %w (got %d)", ErrInvalidRadius, c.Terrain.ActiveRadius)
	}
	if c.Islands.Samples <= 0 {
		return fmt.Errorf("islands: %w (got %d)", ErrInvalidSamples, c.Islands.Samples)
	}
	if c.Islands.Threshold < 0 || c.Islands.Threshold > 1 {
		return fmt.Errorf("islands: %w (got %v)", ErrInvalidThreshold, c.Islands.Threshold)
	}
	return nil
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", пытается прочитать из ENV OCEAN_CONFIG, иначе возвращает дефолты.
func Load(path string) (*Config, error) {
	cfg := Default()
	applyEnv(cfg)

	if path == "" {
		path = os.Getenv("OCEAN_CONFIG")
		if path == "" {
			return cfg, nil // конфиг не задан — использовать дефолты
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
