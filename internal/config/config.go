package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	App      AppConfig      `mapstructure:"app"      validate:"required"`
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	CORS     CORSConfig     `mapstructure:"cors"`
	API      APIConfig      `mapstructure:"api"      validate:"required"`
}

// AppConfig describes the deployment the process runs in.
type AppConfig struct {
	Env string `mapstructure:"env" validate:"required,oneof=development staging production"`
}

// IsProduction reports whether the process runs in production.
func (a AppConfig) IsProduction() bool {
	return a.Env == "production"
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Host                   string `mapstructure:"host"                     validate:"required"`
	Port                   int    `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	LogFormat              string `mapstructure:"log_format"               validate:"omitempty,oneof=json text"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=0"`
}

// Addr returns the host:port the HTTP server listens on.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// ShutdownTimeout is how long in-flight requests get to finish on shutdown.
func (s ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutSeconds) * time.Second
}

// DatabaseConfig contains all database-related configuration settings.
// An empty URL selects the in-memory store.
type DatabaseConfig struct {
	URL                   string `mapstructure:"url"                     validate:"omitempty,url"`
	MaxConnections        int    `mapstructure:"max_connections"         validate:"gt=0"`
	ConnectTimeoutSeconds int    `mapstructure:"connect_timeout_seconds" validate:"gt=0"`
}

// ConnectTimeout bounds the initial database ping.
func (d DatabaseConfig) ConnectTimeout() time.Duration {
	return time.Duration(d.ConnectTimeoutSeconds) * time.Second
}

// CORSConfig lists the origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"dive,required"`
}

// APIConfig holds request limits for the REST API.
type APIConfig struct {
	MaxRequestSize     int64 `mapstructure:"max_request_size"      validate:"gt=0"`
	DefaultLimit       int   `mapstructure:"default_limit"         validate:"gt=0,ltefield=MaxLimit"`
	MaxLimit           int   `mapstructure:"max_limit"             validate:"gt=0"`
	RateLimitPerMinute int   `mapstructure:"rate_limit_per_minute" validate:"gte=0"`
}
