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

package repository

import (
	"context"

	"github.com/tomoncle/flagadmin/types"
)

// PostStore reads and writes posts. Lookups return nil, nil when nothing
// matches.
type PostStore interface {
	LoadPosts(ctx context.Context, offset, limit int, keyword string, userID int64, flags types.FlagSet) (*types.ResultPage[types.Post], error)
	GetPostByID(ctx context.Context, id int64) (*types.Post, error)
	GetPostByTitleAndUser(ctx context.Context, title string, userID, excludeID int64) (*types.Post, error)
	CreatePost(ctx context.Context, post *types.Post) error
	UpdatePost(ctx context.Context, post *types.Post) error
	DeletePost(ctx context.Context, id int64) error
	TitleExists(ctx context.Context, title string) (bool, error)
	RandomUserID(ctx context.Context) (int64, error)
}

// UserStore reads and writes users. Lookups return nil, nil when nothing
// matches.
type UserStore interface {
	LoadUsers(ctx context.Context, offset, limit int, flags types.FlagSet, viewsMin, viewsMax *int64) (*types.ResultPage[types.User], error)
	ListUserDropdown(ctx context.Context, name string, page, pageSize int) (*types.DropdownPage, error)
	GetUserByID(ctx context.Context, id int64) (*types.User, error)
	GetUserByUsernameOrEmail(ctx context.Context, username, email string, excludeID int64) (*types.User, error)
	CreateUser(ctx context.Context, user *types.User) error
	UpdateUser(ctx context.Context, user *types.User) error
	DeleteUser(ctx context.Context, id int64) error
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}
