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
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestSplitSQLStatements(t *testing.T) {
	content := `-- seed users
INSERT INTO users (username, email, created_at)
VALUES ('ann', 'ann@example.com', '2024-01-01 00:00:00');

INSERT INTO users (username, email, created_at) VALUES ('bob', 'bob@example.com', '2024-01-02 00:00:00')`

	statements := splitSQLStatements(content)
	if len(statements) != 2 {
		t.Fatalf("expected 2 statements, got %d: %q", len(statements), statements)
	}
	if statements[0] != "INSERT INTO users (username, email, created_at) VALUES ('ann', 'ann@example.com', '2024-01-01 00:00:00');" {
		t.Fatalf("unexpected first statement: %q", statements[0])
	}
}

func TestParseFileOrder(t *testing.T) {
	if got := parseFileOrder("002_posts.sql"); got != 2 {
		t.Fatalf("got %d, want 2", got)
	}
	if got := parseFileOrder("posts.sql"); got != 999 {
		t.Fatalf("got %d, want 999", got)
	}
}

func TestExecuteInitialization(t *testing.T) {
	ctx := context.Background()
	manager := newMemoryManager(t)
	if err := manager.RunMigrations(ctx, nil, testModels()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "common", "001_users.sql"),
		"INSERT INTO users (username, email, created_at) VALUES ('ann', 'ann@example.com', '2024-01-01 00:00:00');\n")
	writeFile(t, filepath.Join(root, "environments", "dev", "001_posts.sql"),
		"INSERT INTO posts (title, user_id, created_at) VALUES ('hello', 1, '2024-01-02 00:00:00');\n")
	writeFile(t, filepath.Join(root, "environments", "prod", "001_posts.sql"),
		"INSERT INTO posts (title, user_id, created_at) VALUES ('prod only', 1, '2024-01-02 00:00:00');\n")

	if err := manager.InitData(ctx, &DataInitConfig{Filepath: root, Environment: "dev"}); err != nil {
		t.Fatalf("init data: %v", err)
	}

	db := manager.GetDB()
	users, err := db.NewSelect().Model((*testUser)(nil)).Count(ctx)
	if err != nil || users != 1 {
		t.Fatalf("expected 1 user, got %d (%v)", users, err)
	}
	var titles []string
	if err := db.NewSelect().Model((*testPost)(nil)).Column("title").Scan(ctx, &titles); err != nil {
		t.Fatalf("select posts: %v", err)
	}
	if len(titles) != 1 || titles[0] != "hello" {
		t.Fatalf("expected only the dev seed, got %v", titles)
	}
}

func TestExecuteInitializationStopsOnFailure(t *testing.T) {
	ctx := context.Background()
	manager := newMemoryManager(t)
	if err := manager.RunMigrations(ctx, nil, testModels()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "common", "001_bad.sql"),
		"INSERT INTO users (username, email, created_at) VALUES ('ann', 'ann@example.com', '2024-01-01');\nINSERT INTO missing_table VALUES (1);\n")

	if err := manager.InitData(ctx, &DataInitConfig{Filepath: root}); err == nil {
		t.Fatalf("expected seeding to fail")
	}
	count, err := manager.GetDB().NewSelect().Model((*testUser)(nil)).Count(ctx)
	if err != nil || count != 0 {
		t.Fatalf("failed file must be rolled back, got %d users (%v)", count, err)
	}
}
