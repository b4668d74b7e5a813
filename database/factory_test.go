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

package database

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/tomoncle/flagadmin/utils"
)

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("DB_TYPE", "postgres")
	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_MAX_OPEN_CONNS", "7")
	t.Setenv("DB_MAX_IDLE_CONNS", "not-a-number")
	t.Setenv("DB_CONN_MAX_LIFETIME", "90")
	t.Setenv("DB_ENABLE_QUERY_LOG", "true")

	cfg := DefaultConnectionConfig()
	cfg.MaxIdleConns = 3
	cfg.ReconnectInterval = 1500 * time.Millisecond
	ApplyEnvOverrides(cfg)

	if cfg.Type != "postgres" || cfg.Driver != "pgx" || cfg.Port != 6543 {
		t.Fatalf("connection not overridden: %+v", cfg)
	}
	if cfg.MaxOpenConns != 7 || cfg.MaxIdleConns != 3 {
		t.Fatalf("pool sizes: open=%d idle=%d", cfg.MaxOpenConns, cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime != 90*time.Second {
		t.Fatalf("lifetime = %v", cfg.ConnMaxLifetime)
	}
	if cfg.ReconnectInterval != 1500*time.Millisecond {
		t.Fatalf("unset duration changed to %v", cfg.ReconnectInterval)
	}
	if !cfg.EnableQueryLog {
		t.Fatalf("query log not enabled")
	}
}

func TestDataLayerLoggerFollowsConfiguredLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := GetLogger()
	utils.ConfigureOutput(&buf)
	utils.ConfigureLogLevel("warn")
	defer func() {
		utils.ConfigureLogLevel("info")
		utils.ConfigureOutput(os.Stdout)
	}()

	logger.Info("connected")
	logger.Warn("slow query", "duration", "2s")

	out := buf.String()
	if strings.Contains(out, "connected") {
		t.Fatalf("info entry written at warn level: %q", out)
	}
	if !strings.Contains(out, "slow query") || !strings.Contains(out, "logger=DATABASE") {
		t.Fatalf("unexpected output %q", out)
	}
}
