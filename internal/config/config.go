package config

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/justzen0/random-walker/internal/domain"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Area     AreaConfig     `mapstructure:"area"`
	Walk     WalkConfig     `mapstructure:"walk"`
	Network  NetworkConfig  `mapstructure:"network"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Output   OutputConfig   `mapstructure:"output"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

// AreaConfig is the region whose network is downloaded once and reused.
// It should be large enough to contain any walk.
type AreaConfig struct {
	Name     string  `mapstructure:"name"`
	Lat      float64 `mapstructure:"lat"`
	Lon      float64 `mapstructure:"lon"`
	RadiusKm float64 `mapstructure:"radius_km"`
}

type WalkConfig struct {
	StartLat      float64 `mapstructure:"start_lat"`
	StartLon      float64 `mapstructure:"start_lon"`
	TargetKm      float64 `mapstructure:"target_km"`
	Tolerance     float64 `mapstructure:"tolerance"`
	MaxAttempts   int     `mapstructure:"max_attempts"`
	RadiusDivisor float64 `mapstructure:"radius_divisor"`
	MaxWaypoints  int     `mapstructure:"max_waypoints"`
}

type NetworkConfig struct {
	Cache           string        `mapstructure:"cache"` // file, valkey, sql or none
	CacheDir        string        `mapstructure:"cache_dir"`
	ValkeyAddr      string        `mapstructure:"valkey_addr"`
	ValkeyTTL       time.Duration `mapstructure:"valkey_ttl"`
	OverpassURL     string        `mapstructure:"overpass_url"`
	OverpassTimeout time.Duration `mapstructure:"overpass_timeout"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // sqlite or pgx
	DSN    string `mapstructure:"dsn"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type OutputConfig struct {
	Text    string `mapstructure:"text"`
	GeoJSON string `mapstructure:"geojson"`
}

// Flag names the CLI may register, and the keys they override.
var flagKeys = map[string]string{
	"lat":          "walk.start_lat",
	"lon":          "walk.start_lon",
	"distance":     "walk.target_km",
	"tolerance":    "walk.tolerance",
	"max-attempts": "walk.max_attempts",
	"output":       "output.text",
	"geojson":      "output.geojson",
	"area":         "area.name",
	"log-level":    "log.level",
}

// Load reads configuration from defaults, an optional config.yaml, .env,
// environment variables and, when flags is non-nil, command-line flags.
func Load(flags *pflag.FlagSet) (*Config, error) {
	_ = godotenv.Load() // OK if missing

	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 60)
	v.SetDefault("area.name", "Kolkata, West Bengal, India")
	v.SetDefault("area.lat", 22.531060)
	v.SetDefault("area.lon", 88.400831)
	v.SetDefault("area.radius_km", 5.0)
	v.SetDefault("walk.start_lat", 22.531060)
	v.SetDefault("walk.start_lon", 88.400831)
	v.SetDefault("walk.target_km", 4.0)
	v.SetDefault("walk.tolerance", 0.15)
	v.SetDefault("walk.max_attempts", 50)
	v.SetDefault("walk.radius_divisor", 4.0)
	v.SetDefault("walk.max_waypoints", 23)
	v.SetDefault("network.cache", "file")
	v.SetDefault("network.cache_dir", "data/maps")
	v.SetDefault("network.valkey_addr", "localhost:6379")
	v.SetDefault("network.valkey_ttl", 7*24*time.Hour)
	v.SetDefault("network.overpass_url", "https://overpass-api.de/api/interpreter")
	v.SetDefault("network.overpass_timeout", 3*time.Minute)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "data/walks.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("output.text", "my_random_walk.txt")
	v.SetDefault("output.geojson", "")

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	// Environment variables: WALKER_WALK_TARGET_KM → walk.target_km
	v.SetEnvPrefix("WALKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag --%s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}

	if strings.TrimSpace(c.Area.Name) == "" {
		errs = append(errs, "area.name is required")
	}
	if err := c.Area.Center().Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("area center: %v", err))
	}
	if !(c.Area.RadiusKm > 0) {
		errs = append(errs, fmt.Sprintf("area.radius_km must be positive, got %v", c.Area.RadiusKm))
	}

	if err := c.Walk.Start().Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("walk start: %v", err))
	}
	if !(c.Walk.TargetKm > 0) || math.IsInf(c.Walk.TargetKm, 0) {
		errs = append(errs, fmt.Sprintf("walk.target_km must be positive, got %v", c.Walk.TargetKm))
	}
	if !(c.Walk.Tolerance > 0 && c.Walk.Tolerance < 1) {
		errs = append(errs, fmt.Sprintf("walk.tolerance must be in (0, 1), got %v", c.Walk.Tolerance))
	}
	if c.Walk.MaxAttempts < 1 {
		errs = append(errs, fmt.Sprintf("walk.max_attempts must be >= 1, got %d", c.Walk.MaxAttempts))
	}
	if !(c.Walk.RadiusDivisor > 0) {
		errs = append(errs, fmt.Sprintf("walk.radius_divisor must be positive, got %v", c.Walk.RadiusDivisor))
	}
	if c.Walk.MaxWaypoints < 2 {
		errs = append(errs, fmt.Sprintf("walk.max_waypoints must be >= 2, got %d", c.Walk.MaxWaypoints))
	}

	switch c.Network.Cache {
	case "file":
		if c.Network.CacheDir == "" {
			errs = append(errs, "network.cache_dir is required for the file cache")
		}
	case "valkey":
		if c.Network.ValkeyAddr == "" {
			errs = append(errs, "network.valkey_addr is required for the valkey cache")
		}
	case "sql", "none":
	default:
		errs = append(errs, fmt.Sprintf("network.cache must be file, valkey, sql or none, got %q", c.Network.Cache))
	}
	if c.Network.OverpassTimeout <= 0 {
		errs = append(errs, "network.overpass_timeout must be positive")
	}

	switch c.Database.Driver {
	case "sqlite", "pgx":
	default:
		errs = append(errs, fmt.Sprintf("database.driver must be sqlite or pgx, got %q", c.Database.Driver))
	}
	if c.Database.DSN == "" {
		errs = append(errs, "database.dsn is required")
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("log.format must be text or json, got %q", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// Center returns the area center.
func (a AreaConfig) Center() domain.GeoPoint { return domain.GeoPoint{Lat: a.Lat, Lon: a.Lon} }

// Area returns the area as a domain value.
func (a AreaConfig) Area() domain.Area {
	return domain.Area{Name: a.Name, Center: a.Center(), RadiusKm: a.RadiusKm}
}

// Start returns the default start point.
func (w WalkConfig) Start() domain.GeoPoint { return domain.GeoPoint{Lat: w.StartLat, Lon: w.StartLon} }

// Get returns the environment variable key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
