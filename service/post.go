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

// Package service validates requests before they reach the stores. Every
// rule failure is a *ValidationError; store errors pass through unchanged.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tomoncle/flagadmin/repository"
	"github.com/tomoncle/flagadmin/types"
	"github.com/tomoncle/flagadmin/utils"
)

type PostValidator interface {
	// LoadPosts returns a window of posts and the filtered total.
	LoadPosts(ctx context.Context, req PostListRequest) (*types.ResultPage[types.Post], error)

	// GetPost returns the post or nil when it does not exist.
	GetPost(ctx context.Context, id int64) (*types.Post, error)

	// CreatePost validates and stores a new post.
	CreatePost(ctx context.Context, post *types.Post) error

	// UpdatePost validates and stores a new title and content.
	UpdatePost(ctx context.Context, post *types.Post) error

	// DeletePost removes an existing post.
	DeletePost(ctx context.Context, id int64) error

	// TitleExists reports whether any post carries the title.
	TitleExists(ctx context.Context, title string) (bool, error)

	// RandomUserID returns any user id, or 0 when there are no users.
	RandomUserID(ctx context.Context) (int64, error)
}

type PostService struct {
	store  repository.PostStore
	logger *logrus.Logger
}

var _ PostValidator = (*PostService)(nil)

func NewPostService(store repository.PostStore) *PostService {
	return &PostService{store: store, logger: utils.NewLogger("SERVICE")}
}

func (s *PostService) SetLogger(logger *logrus.Logger) {
	s.logger = logger
}

func (s *PostService) LoadPosts(ctx context.Context, req PostListRequest) (*types.ResultPage[types.Post], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validate.Struct(req); err != nil {
		field, msg := firstFieldError(err)
		return nil, invalid(s.logger, "load_posts", field, msg)
	}
	return s.store.LoadPosts(ctx, req.Start, req.Length, req.Keyword, req.UserID, req.Flags)
}

func (s *PostService) GetPost(ctx context.Context, id int64) (*types.Post, error) {
	return s.store.GetPostByID(ctx, id)
}

func (s *PostService) CreatePost(ctx context.Context, post *types.Post) error {
	if err := s.validatePost(ctx, "create_post", post, 0); err != nil {
		return err
	}
	return s.store.CreatePost(ctx, post)
}

// UpdatePost keeps the stored author; uniqueness is checked against it.
func (s *PostService) UpdatePost(ctx context.Context, post *types.Post) error {
	if err := s.checkFields("update_post", post); err != nil {
		return err
	}
	existing, err := s.store.GetPostByID(ctx, post.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("post %d: %w", post.ID, ErrNotFound)
	}
	post.AuthorID = existing.AuthorID
	if err := s.checkUnique(ctx, "update_post", post, post.ID); err != nil {
		return err
	}
	return s.store.UpdatePost(ctx, post)
}

func (s *PostService) DeletePost(ctx context.Context, id int64) error {
	existing, err := s.store.GetPostByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("post %d: %w", id, ErrNotFound)
	}
	return s.store.DeletePost(ctx, id)
}

func (s *PostService) TitleExists(ctx context.Context, title string) (bool, error) {
	return s.store.TitleExists(ctx, title)
}

func (s *PostService) RandomUserID(ctx context.Context) (int64, error) {
	return s.store.RandomUserID(ctx)
}

func (s *PostService) validatePost(ctx context.Context, op string, post *types.Post, excludeID int64) error {
	if err := s.checkFields(op, post); err != nil {
		return err
	}
	return s.checkUnique(ctx, op, post, excludeID)
}

func (s *PostService) checkFields(op string, post *types.Post) error {
	if post == nil {
		return invalid(s.logger, op, "post", "Post cannot be empty.")
	}
	if strings.TrimSpace(post.Title) == "" {
		return invalid(s.logger, op, "title", "Title cannot be empty.")
	}
	if err := validate.Var(post.Title, fmt.Sprintf("max=%d", MaxTitleLength)); err != nil {
		return invalid(s.logger, op, "title", fmt.Sprintf("Title cannot exceed %d characters.", MaxTitleLength))
	}
	if strings.TrimSpace(post.Content) == "" {
		return invalid(s.logger, op, "content", "Content cannot be empty.")
	}
	return nil
}

func (s *PostService) checkUnique(ctx context.Context, op string, post *types.Post, excludeID int64) error {
	existing, err := s.store.GetPostByTitleAndUser(ctx, post.Title, post.AuthorID, excludeID)
	if err != nil {
		return err
	}
	if existing != nil {
		return invalid(s.logger, op, "title", "A post with the same title already exists for this user.")
	}
	return nil
}
