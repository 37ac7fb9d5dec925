/*
NAME
  config.go

DESCRIPTION
  Config is gavfsrv's on-disk YAML configuration: listen address, log
  rotation parameters, and the on-disk path for the packet-index cache.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config holds gavfsrv's runtime configuration, loaded from a YAML file.
type Config struct {
	// Scheme selects the listener backend: "tcp" or "unix".
	Scheme string `yaml:"scheme"`
	// Addr is a host:port (tcp) or filesystem path (unix).
	Addr string `yaml:"addr"`

	LogPath      string `yaml:"log_path"`
	LogMaxSizeMB int    `yaml:"log_max_size_mb"`
	LogMaxBackup int    `yaml:"log_max_backups"`
	LogMaxAgeDay int    `yaml:"log_max_age_days"`
	LogVerbosity string `yaml:"log_verbosity"`

	IndexCachePath string `yaml:"index_cache_path"`
}

// defaultConfig returns Config populated with gavfsrv's built-in defaults,
// overridden field-by-field by whatever the YAML file specifies.
func defaultConfig() Config {
	return Config{
		Scheme:         "tcp",
		Addr:           ":9780",
		LogPath:        "/var/log/gavfsrv/gavfsrv.log",
		LogMaxSizeMB:   100,
		LogMaxBackup:   5,
		LogMaxAgeDay:   28,
		LogVerbosity:   "info",
		IndexCachePath: "/var/lib/gavfsrv/index.db",
	}
}

// LoadConfig reads and parses the YAML file at path, applying it on top
// of defaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "reading config %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, nil
}
