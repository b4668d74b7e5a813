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

// Package flagadmin wires the post and user stores and their validators over
// one database connection.
package flagadmin

import (
	"context"
	"fmt"

	"github.com/tomoncle/flagadmin/database"
	"github.com/tomoncle/flagadmin/repository"
	"github.com/tomoncle/flagadmin/service"
)

// App exposes the validated operations on posts and users.
type App struct {
	Posts service.PostValidator
	Users service.UserValidator

	manager database.AbstractDatabaseManager
}

// New builds an App over provider. The connection is opened by the first
// operation that needs it.
func New(provider database.Provider, opts ...repository.Option) *App {
	return &App{
		Posts: service.NewPostService(repository.NewPostRepository(provider, opts...)),
		Users: service.NewUserService(repository.NewUserRepository(provider, opts...)),
	}
}

// Open connects with the configuration of cfg, migrating and seeding the
// database when the configuration enables it on startup.
func Open(ctx context.Context, cfg database.AbstractDatabaseConfigProvider, opts ...repository.Option) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be empty")
	}
	manager, err := database.Open(ctx, cfg.ConfigLoader(), repository.Models()...)
	if err != nil {
		return nil, err
	}
	app := New(manager, opts...)
	app.manager = manager
	return app, nil
}

// Manager returns the connection manager of an App built by Open.
func (a *App) Manager() database.AbstractDatabaseManager {
	return a.manager
}

// Close releases the connection opened by Open.
func (a *App) Close() error {
	if a.manager == nil {
		return nil
	}
	return a.manager.Disconnect()
}
