/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package config loads the process configuration from an optional YAML file,
// a .env file and the environment, then validates it.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/tomoncle/flagadmin/database"
	"github.com/tomoncle/flagadmin/utils"
	"gopkg.in/yaml.v3"
)

// LogConfig selects the level and console format of every named logger.
type LogConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=trace debug info warn warning error fatal panic"`
	Format string `yaml:"format" validate:"omitempty,oneof=text json"`
}

type Config struct {
	Database database.Config `yaml:"database"`
	Log      LogConfig       `yaml:"log"`
}

var _ database.AbstractDatabaseConfigProvider = (*Config)(nil)

// ConfigLoader returns the database section.
func (c *Config) ConfigLoader() *database.Config {
	return &c.Database
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Database: database.Config{
			ConnectionConfig: *database.DefaultConnectionConfig(),
			DataMigrateConfig: database.DataMigrateConfig{
				EnableMigrateOnStartup: true,
			},
			DataInitConfig: database.DataInitConfig{
				Filepath:    "configs/sql",
				Environment: "prod",
			},
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads path over the defaults when path is not empty, applies the
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	database.ApplyEnvOverrides(&cfg.Database.ConnectionConfig)
	cfg.Log.Level = utils.EnvDefaultString("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = utils.EnvDefaultString("CONSOLE_LOG_FORMAT", cfg.Log.Format)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// ApplyLogging pushes the log settings to every named logger.
func (c *Config) ApplyLogging() {
	utils.ConfigureLogLevel(c.Log.Level)
	utils.ConfigureConsoleLogFormat(c.Log.Format)
}
