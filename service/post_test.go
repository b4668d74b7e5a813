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

package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/tomoncle/flagadmin/types"
)

func TestCreatePostRules(t *testing.T) {
	existing := &types.Post{ID: 1, Title: "Hello", Content: "c", AuthorID: 10}
	cases := []struct {
		name    string
		post    *types.Post
		field   string
		message string
	}{
		{"nil post", nil, "post", "Post cannot be empty."},
		{"blank title", &types.Post{Title: "  ", Content: ""}, "title", "Title cannot be empty."},
		{"long title", &types.Post{Title: strings.Repeat("é", 101), Content: ""}, "title", "Title cannot exceed 100 characters."},
		{"blank content", &types.Post{Title: "ok", Content: "\t"}, "content", "Content cannot be empty."},
		{"duplicate", &types.Post{Title: "Hello", Content: "x", AuthorID: 10}, "title", "A post with the same title already exists for this user."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakePostStore(existing)
			err := NewPostService(store).CreatePost(context.Background(), tc.post)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Field != tc.field || verr.Message != tc.message {
				t.Fatalf("got %+v, want %s %q", verr, tc.field, tc.message)
			}
			if store.writes() != 0 {
				t.Fatalf("invalid input reached the store: %v", store.calls)
			}
		})
	}
}

func TestCreatePostAccepts(t *testing.T) {
	store := newFakePostStore(&types.Post{ID: 1, Title: "Hello", Content: "c", AuthorID: 10})
	svc := NewPostService(store)

	if err := svc.CreatePost(context.Background(), &types.Post{Title: "Hello", Content: "c", AuthorID: 11}); err != nil {
		t.Fatalf("same title for another author must be accepted: %v", err)
	}
	if err := svc.CreatePost(context.Background(), &types.Post{Title: strings.Repeat("é", 100), Content: "c", AuthorID: 10}); err != nil {
		t.Fatalf("100 characters must be accepted: %v", err)
	}
	if store.writes() != 2 {
		t.Fatalf("expected 2 writes, got %v", store.calls)
	}
}

func TestUpdatePostUsesStoredAuthor(t *testing.T) {
	store := newFakePostStore(
		&types.Post{ID: 1, Title: "First", Content: "c", AuthorID: 10},
		&types.Post{ID: 2, Title: "Second", Content: "c", AuthorID: 10},
	)
	svc := NewPostService(store)
	ctx := context.Background()

	err := svc.UpdatePost(ctx, &types.Post{ID: 2, Title: "First", Content: "c", AuthorID: 99})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected duplicate title under the stored author, got %v", err)
	}

	if err := svc.UpdatePost(ctx, &types.Post{ID: 1, Title: "First", Content: "new"}); err != nil {
		t.Fatalf("keeping its own title must be accepted: %v", err)
	}
	if store.posts[1].AuthorID != 10 || store.posts[1].Content != "new" {
		t.Fatalf("unexpected stored post %+v", store.posts[1])
	}

	err = svc.UpdatePost(ctx, &types.Post{ID: 42, Title: "x", Content: "y"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeletePost(t *testing.T) {
	store := newFakePostStore(&types.Post{ID: 1, Title: "a", Content: "b", AuthorID: 1})
	svc := NewPostService(store)
	if err := svc.DeletePost(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeletePost(context.Background(), 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestLoadPostsChecks(t *testing.T) {
	store := newFakePostStore()
	svc := NewPostService(store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.LoadPosts(ctx, PostListRequest{Length: 10}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := svc.LoadPosts(context.Background(), PostListRequest{Length: -1}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.LoadPosts(context.Background(), PostListRequest{Start: -1, Length: 1}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(store.calls) != 0 {
		t.Fatalf("store must not be queried: %v", store.calls)
	}

	if _, err := svc.LoadPosts(context.Background(), PostListRequest{Length: 0}); err != nil {
		t.Fatalf("zero length is valid: %v", err)
	}
}

func TestStoreErrorsPassThrough(t *testing.T) {
	boom := errors.New("boom")
	store := newFakePostStore()
	store.err = boom
	svc := NewPostService(store)

	if _, err := svc.LoadPosts(context.Background(), PostListRequest{Length: 1}); err != boom {
		t.Fatalf("expected the store error unchanged, got %v", err)
	}
	if err := svc.CreatePost(context.Background(), &types.Post{Title: "a", Content: "b"}); err != boom {
		t.Fatalf("expected the store error unchanged, got %v", err)
	}
}

func TestValidationFailuresAreLogged(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	svc := NewPostService(newFakePostStore())
	svc.SetLogger(logger)
	_ = svc.CreatePost(context.Background(), &types.Post{Title: ""})

	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.DebugLevel {
		t.Fatalf("expected a debug entry, got %+v", entry)
	}
	if entry.Data["operation"] != "create_post" || entry.Data["field"] != "title" {
		t.Fatalf("unexpected fields %v", entry.Data)
	}
}
