package main

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Build variables - set by ldflags during build.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

func main() {
	var configPath string
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/cratestats/config.yml)")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("cratestats - Crate Download Statistics Service\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
		fmt.Printf("  Go version: %s\n", goVersion)
		return
	}

	// Variables may come from a .env file during development.
	_ = godotenv.Load()

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := runServer(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(configPath string) (appConfig, error) {
	var cfg appConfig

	v := viper.New()
	v.SetEnvPrefix("CRATESTATS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	// Required settings get empty defaults so viper surfaces their env
	// values through Unmarshal; emptiness is checked below.
	v.SetDefault("database-url", "")
	v.SetDefault("port", 0)

	v.SetDefault("host", defaultBindHost)
	v.SetDefault("addr", "")
	v.SetDefault("body-limit", defaultBodyLimit)
	v.SetDefault("static-dir", defaultStaticDir)
	v.SetDefault("query-timeout", defaultQueryTimeout)
	v.SetDefault("max-connections", defaultMaxConnections)
	v.SetDefault("query-workers", defaultQueryWorkers)
	v.SetDefault("query-queue-size", defaultQueryQueue)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return cfg, err
		}
	} else if home, err := os.UserHomeDir(); err == nil {
		v.SetConfigFile(home + "/.config/cratestats/config.yml")
		if err := v.ReadInConfig(); err != nil {
			var configFileNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
				return cfg, err
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	// Fail fast: the store location and port have no sensible defaults.
	if cfg.DatabaseURL == "" {
		return cfg, errors.New("CRATESTATS_DATABASE_URL not set (see .env file)")
	}
	if cfg.Port == 0 {
		return cfg, errors.New("CRATESTATS_PORT not set (see .env file)")
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return cfg, fmt.Errorf("invalid port: %d", cfg.Port)
	}

	if cfg.Addr == "" {
		cfg.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	}

	return cfg, nil
}
