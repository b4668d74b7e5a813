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
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tomoncle/flagadmin/repository"
	"github.com/tomoncle/flagadmin/types"
	"github.com/tomoncle/flagadmin/utils"
)

type UserValidator interface {
	// LoadUsers returns a window of users and the filtered total.
	LoadUsers(ctx context.Context, req UserListRequest) (*types.ResultPage[types.User], error)

	// ListUserDropdown pages usernames matching name.
	ListUserDropdown(ctx context.Context, name string, page, pageSize int) (*types.DropdownPage, error)

	// GetUser returns the user or nil when it does not exist.
	GetUser(ctx context.Context, id int64) (*types.User, error)

	// CreateUser validates and stores a new user.
	CreateUser(ctx context.Context, user *types.User) error

	// UpdateUser validates and stores username, email and flags.
	UpdateUser(ctx context.Context, user *types.User) error

	// DeleteUser removes an existing user.
	DeleteUser(ctx context.Context, id int64) error

	// UsernameExists reports whether any user has the username.
	UsernameExists(ctx context.Context, username string) (bool, error)

	// EmailExists reports whether any user has the email.
	EmailExists(ctx context.Context, email string) (bool, error)
}

type UserService struct {
	store  repository.UserStore
	logger *logrus.Logger
}

var _ UserValidator = (*UserService)(nil)

func NewUserService(store repository.UserStore) *UserService {
	return &UserService{store: store, logger: utils.NewLogger("SERVICE")}
}

func (s *UserService) SetLogger(logger *logrus.Logger) {
	s.logger = logger
}

func (s *UserService) LoadUsers(ctx context.Context, req UserListRequest) (*types.ResultPage[types.User], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validate.Struct(req); err != nil {
		field, msg := firstFieldError(err)
		return nil, invalid(s.logger, "load_users", field, msg)
	}
	if req.ViewsMin != nil && req.ViewsMax != nil && *req.ViewsMin > *req.ViewsMax {
		return nil, invalid(s.logger, "load_users", "ViewsMin", "Minimum views should be less than maximum views")
	}
	return s.store.LoadUsers(ctx, req.Start, req.Length, req.Flags, req.ViewsMin, req.ViewsMax)
}

func (s *UserService) ListUserDropdown(ctx context.Context, name string, page, pageSize int) (*types.DropdownPage, error) {
	return s.store.ListUserDropdown(ctx, name, page, pageSize)
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*types.User, error) {
	return s.store.GetUserByID(ctx, id)
}

func (s *UserService) CreateUser(ctx context.Context, user *types.User) error {
	if err := s.checkFields("create_user", user); err != nil {
		return err
	}
	if err := s.checkUnique(ctx, "create_user", user, 0); err != nil {
		return err
	}
	return s.store.CreateUser(ctx, user)
}

func (s *UserService) UpdateUser(ctx context.Context, user *types.User) error {
	if err := s.checkFields("update_user", user); err != nil {
		return err
	}
	existing, err := s.store.GetUserByID(ctx, user.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("user %d: %w", user.ID, ErrNotFound)
	}
	if err := s.checkUnique(ctx, "update_user", user, user.ID); err != nil {
		return err
	}
	return s.store.UpdateUser(ctx, user)
}

func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	existing, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return s.store.DeleteUser(ctx, id)
}

func (s *UserService) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.store.UsernameExists(ctx, username)
}

func (s *UserService) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.store.EmailExists(ctx, email)
}

func (s *UserService) checkFields(op string, user *types.User) error {
	if user == nil {
		return invalid(s.logger, op, "user", "User cannot be empty.")
	}
	if strings.TrimSpace(user.Username) == "" {
		return invalid(s.logger, op, "username", "Username cannot be empty.")
	}
	if strings.TrimSpace(user.Email) == "" {
		return invalid(s.logger, op, "email", "Email cannot be empty.")
	}
	if err := validate.Var(user.Email, "mailbox"); err != nil {
		return invalid(s.logger, op, "email", "Invalid email format.")
	}
	if bad := user.Flags.Invalid(); len(bad) > 0 {
		return invalid(s.logger, op, "flags", fmt.Sprintf("Invalid flag: %d", int(bad[0])))
	}
	return nil
}

func (s *UserService) checkUnique(ctx context.Context, op string, user *types.User, excludeID int64) error {
	existing, err := s.store.GetUserByUsernameOrEmail(ctx, user.Username, user.Email, excludeID)
	if err != nil {
		return err
	}
	if existing != nil {
		return invalid(s.logger, op, "username", "User with the same Username or Email already exists.")
	}
	return nil
}
