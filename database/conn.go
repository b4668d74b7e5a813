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
	"context"
	"fmt"
)

// Open builds a manager for cfg and connects it. Migrations and seeding run
// when the config enables them on startup.
func Open(ctx context.Context, cfg *Config, models ...SQLModel) (AbstractDatabaseManager, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database configuration cannot be empty")
	}
	factory := NewDatabaseFactory()
	manager, err := factory.CreateFromConfig(&cfg.ConnectionConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database manager: %w", err)
	}
	if err := factory.InitializeDatabase(ctx, cfg, models...); err != nil {
		_ = manager.Disconnect()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return manager, nil
}

// NewLazy builds a manager that connects on first use.
func NewLazy(cfg *ConnectionConfig) (AbstractDatabaseManager, error) {
	return NewDatabaseFactory().CreateFromConfig(cfg)
}
