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
	"sync/atomic"
	"testing"
	"time"

	"github.com/uptrace/bun"
)

var memoryDBCounter atomic.Int64

type testUser struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Username  string    `bun:"username,notnull"`
	Email     string    `bun:"email,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`
}

type testPost struct {
	bun.BaseModel `bun:"table:posts,alias:p"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Title     string    `bun:"title,notnull"`
	UserID    int64     `bun:"user_id,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`
}

func testModels() []SQLModel {
	return []SQLModel{
		NewModelAdapter((*testPost)(nil), 20),
		NewModelAdapter((*testUser)(nil), 10),
	}
}

func newMemoryManager(t *testing.T) AbstractDatabaseManager {
	t.Helper()
	cfg := &ConnectionConfig{
		Type:   "sqlite",
		DBName: fmt.Sprintf("file:dbtest_%d?mode=memory&cache=shared", memoryDBCounter.Add(1)),
	}
	manager := NewDatabaseManager(cfg)
	t.Cleanup(func() { _ = manager.Disconnect() })
	return manager
}

func TestManagerConnectsLazily(t *testing.T) {
	manager := newMemoryManager(t)
	if manager.GetDB() != nil {
		t.Fatalf("expected no connection before first use")
	}

	db, err := manager.DB(context.Background())
	if err != nil {
		t.Fatalf("lazy connect: %v", err)
	}
	if db == nil || manager.GetDB() != db {
		t.Fatalf("expected DB to return the connected database")
	}

	again, err := manager.DB(context.Background())
	if err != nil || again != db {
		t.Fatalf("expected the same database on second call, got %v %v", again, err)
	}

	if stats := manager.GetStats(); stats.MaxOpenConns != 1 {
		t.Fatalf("memory sqlite should be limited to one connection, got %d", stats.MaxOpenConns)
	}
	if status := manager.HealthCheck(context.Background()); !status.Healthy {
		t.Fatalf("expected healthy database, got %+v", status)
	}
}

func TestManagerRejectsUnknownType(t *testing.T) {
	manager := NewDatabaseManager(&ConnectionConfig{Type: "oracle", DBName: "x"})
	if _, err := manager.DB(context.Background()); err == nil {
		t.Fatalf("expected an error for an unsupported database type")
	}
}

func TestSQLiteDSN(t *testing.T) {
	cases := map[string]string{
		":memory:":           ":memory:",
		"file:a?mode=memory": "file:a?mode=memory",
		"flagadmin":          "flagadmin.db",
	}
	for in, want := range cases {
		if got := sqliteDSN(in); got != want {
			t.Errorf("sqliteDSN(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	ctx := context.Background()
	manager := newMemoryManager(t)

	migrate := &DataMigrateConfig{EnableForeignKey: true}
	if err := manager.RunMigrations(ctx, migrate, testModels()...); err != nil {
		t.Fatalf("first migration run: %v", err)
	}
	if err := manager.RunMigrations(ctx, migrate, testModels()...); err != nil {
		t.Fatalf("second migration run: %v", err)
	}

	db := manager.GetDB()
	applied, err := NewMigrationManager(db, GetLogger(), migrate).GetAppliedMigrations(ctx)
	if err != nil {
		t.Fatalf("list migrations: %v", err)
	}
	if len(applied) != 3 {
		t.Fatalf("expected 3 applied migrations, got %d", len(applied))
	}
	for i, want := range []string{"001", "002", "003"} {
		if applied[i].Version != want {
			t.Fatalf("migration %d: got version %s, want %s", i, applied[i].Version, want)
		}
	}

	if _, err := db.NewInsert().Model(&testUser{Username: "ann", Email: "ann@example.com", CreatedAt: time.Now()}).Exec(ctx); err != nil {
		t.Fatalf("tables should exist after migration: %v", err)
	}
}

func TestModelRegistryOrdersByPriority(t *testing.T) {
	registry := NewModelRegistry(testModels()...)
	instances := registry.Instances()
	if len(instances) != 2 {
		t.Fatalf("expected 2 instances, got %d", len(instances))
	}
	if _, ok := instances[0].(*testUser); !ok {
		t.Fatalf("expected users first, got %T", instances[0])
	}
}
