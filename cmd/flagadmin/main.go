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

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/tomoncle/flagadmin/config"
	"github.com/tomoncle/flagadmin/database"
	"github.com/tomoncle/flagadmin/repository"
	"github.com/tomoncle/flagadmin/utils"
)

var log = utils.NewLogger("MAIN")

const usage = `usage: flagadmin [-config file] <command>

commands:
  migrate     create tables, indexes and foreign keys
  seed        run the SQL seed files of the configured environment
  health      ping the database and print its health
  stats       print connection pool statistics
  export-fk   write the foreign key constraints to -out as YAML
`

func main() {
	configPath := flag.String("config", utils.EnvDefaultString("FLAGADMIN_CONFIG", ""), "path to the YAML config file")
	out := flag.String("out", "configs/foreign_keys.yaml", "output file of export-fk")
	timeout := flag.Duration("timeout", time.Minute, "timeout of the command")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}
	cfg.ApplyLogging()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, cfg, flag.Arg(0), *out); err != nil {
		log.WithError(err).WithField("command", flag.Arg(0)).Error("Command failed")
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, command, out string) error {
	if command == "export-fk" {
		fkm := database.LoadForeignKeyManager(database.GetLogger(), cfg.Database.DataMigrateConfig.ForeignKeyFile)
		return database.ExportForeignKeys(fkm.ListAllConstraints(), out)
	}

	manager, err := database.NewLazy(&cfg.Database.ConnectionConfig)
	if err != nil {
		return err
	}
	defer func() { _ = manager.Disconnect() }()

	switch command {
	case "migrate":
		return manager.RunMigrations(ctx, &cfg.Database.DataMigrateConfig, repository.Models()...)
	case "seed":
		return manager.InitData(ctx, &cfg.Database.DataInitConfig)
	case "health":
		if err := manager.Connect(ctx); err != nil {
			return err
		}
		status := manager.HealthCheck(ctx)
		if err := printJSON(status); err != nil {
			return err
		}
		if !status.Healthy {
			return fmt.Errorf("database unhealthy: %s", status.LastError)
		}
		return nil
	case "stats":
		if err := manager.Connect(ctx); err != nil {
			return err
		}
		return printJSON(manager.GetStats())
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
