// Package config loads service configuration from an optional YAML file named
// by CONFIG_FILE, with environment variables taking precedence over file
// values.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/openshelf/openshelf/pkg/csvstore"
	"github.com/pkg/errors"
)

type Config struct {
	// DataDir is the directory holding every table file. Required.
	DataDir string `koanf:"data_dir"`
	// JWTSecret signs session tokens. Required.
	JWTSecret string `koanf:"jwt_secret"`
	// CatalogDialect selects the book-table encoding: "plain" (comma, UTF-8)
	// or "bx" (semicolon, Latin-1, the imported BX catalog format).
	CatalogDialect string `koanf:"catalog_dialect"`
	ServerHost     string `koanf:"server_host"`
	ServerPort     int    `koanf:"server_port"`
}

const (
	DialectPlain = "plain"
	DialectBX    = "bx"
)

func New() (*Config, error) {
	cfg := &Config{
		CatalogDialect: DialectPlain,
		ServerHost:     "127.0.0.1",
		ServerPort:     8360,
	}

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "./config.yaml"
	}
	if _, err := os.Stat(configFile); err == nil {
		k := koanf.New(".")
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "load config file %s", configFile)
		}
		if err := k.Unmarshal("", cfg); err != nil {
			return nil, errors.Wrapf(err, "unmarshal config file %s", configFile)
		}
	}

	// Environment overrides file values.
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("CATALOG_DIALECT"); v != "" {
		cfg.CatalogDialect = v
	}
	if v := os.Getenv("SERVER_HOST"); v != "" {
		cfg.ServerHost = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.Errorf("invalid PORT %q", v)
		}
		cfg.ServerPort = port
	}

	var missing []string
	if cfg.DataDir == "" {
		missing = append(missing, "DATA_DIR (data_dir)")
	}
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET (jwt_secret)")
	}
	if len(missing) > 0 {
		return nil, errors.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}

	switch cfg.CatalogDialect {
	case DialectPlain, DialectBX:
	default:
		return nil, errors.Errorf("invalid catalog_dialect %q", cfg.CatalogDialect)
	}

	return cfg, nil
}

// BookDialect returns the csvstore dialect for the configured catalog format.
func (cfg *Config) BookDialect() csvstore.Dialect {
	if cfg.CatalogDialect == DialectBX {
		return csvstore.BX
	}
	return csvstore.Plain
}
