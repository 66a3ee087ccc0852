package main

import (
	"time"

	"github.com/cratestats/cratestats/internal/executor"
	"github.com/cratestats/cratestats/internal/httpserver"
)

const (
	defaultBindHost       = "127.0.0.1"
	defaultBodyLimit      = httpserver.DefaultBodyLimit
	defaultStaticDir      = "static"
	defaultQueryTimeout   = 30 * time.Second
	defaultMaxConnections = 8
	defaultQueryWorkers   = executor.DefaultWorkers
	defaultQueryQueue     = executor.DefaultQueueSize
)

// appConfig is internal runtime configuration.
// It is package-private to keep defaults and shape local to the CLI entrypoint.
type appConfig struct {
	DatabaseURL    string        `mapstructure:"database-url"`
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	Addr           string        `mapstructure:"addr"`
	BodyLimit      int64         `mapstructure:"body-limit"`
	StaticDir      string        `mapstructure:"static-dir"`
	QueryTimeout   time.Duration `mapstructure:"query-timeout"`
	MaxConnections int           `mapstructure:"max-connections"`
	QueryWorkers   int           `mapstructure:"query-workers"`
	QueryQueueSize int           `mapstructure:"query-queue-size"`
}
