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

	"github.com/tomoncle/flagadmin/types"
)

// fakePostStore keeps posts in memory and records every call by name.
type fakePostStore struct {
	posts  map[int64]*types.Post
	nextID int64
	calls  []string
	err    error
}

func newFakePostStore(posts ...*types.Post) *fakePostStore {
	s := &fakePostStore{posts: map[int64]*types.Post{}}
	for _, p := range posts {
		s.posts[p.ID] = p
		if p.ID > s.nextID {
			s.nextID = p.ID
		}
	}
	return s
}

func (s *fakePostStore) writes() int {
	n := 0
	for _, c := range s.calls {
		switch c {
		case "CreatePost", "UpdatePost", "DeletePost":
			n++
		}
	}
	return n
}

func (s *fakePostStore) LoadPosts(ctx context.Context, offset, limit int, keyword string, userID int64, flags types.FlagSet) (*types.ResultPage[types.Post], error) {
	s.calls = append(s.calls, "LoadPosts")
	if s.err != nil {
		return nil, s.err
	}
	page := types.NewResultPage[types.Post](offset, limit)
	page.Total = len(s.posts)
	return page, nil
}

func (s *fakePostStore) GetPostByID(ctx context.Context, id int64) (*types.Post, error) {
	s.calls = append(s.calls, "GetPostByID")
	if p, ok := s.posts[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, s.err
}

func (s *fakePostStore) GetPostByTitleAndUser(ctx context.Context, title string, userID, excludeID int64) (*types.Post, error) {
	s.calls = append(s.calls, "GetPostByTitleAndUser")
	for _, p := range s.posts {
		if p.Title == title && p.AuthorID == userID && p.ID != excludeID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakePostStore) CreatePost(ctx context.Context, post *types.Post) error {
	s.calls = append(s.calls, "CreatePost")
	if s.err != nil {
		return s.err
	}
	s.nextID++
	post.ID = s.nextID
	cp := *post
	s.posts[post.ID] = &cp
	return nil
}

func (s *fakePostStore) UpdatePost(ctx context.Context, post *types.Post) error {
	s.calls = append(s.calls, "UpdatePost")
	cp := *post
	s.posts[post.ID] = &cp
	return nil
}

func (s *fakePostStore) DeletePost(ctx context.Context, id int64) error {
	s.calls = append(s.calls, "DeletePost")
	delete(s.posts, id)
	return nil
}

func (s *fakePostStore) TitleExists(ctx context.Context, title string) (bool, error) {
	s.calls = append(s.calls, "TitleExists")
	for _, p := range s.posts {
		if p.Title == title {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakePostStore) RandomUserID(ctx context.Context) (int64, error) {
	s.calls = append(s.calls, "RandomUserID")
	return 7, nil
}

// fakeUserStore keeps users in memory and records every call by name.
type fakeUserStore struct {
	users  map[int64]*types.User
	nextID int64
	calls  []string
}

func newFakeUserStore(users ...*types.User) *fakeUserStore {
	s := &fakeUserStore{users: map[int64]*types.User{}}
	for _, u := range users {
		s.users[u.ID] = u
		if u.ID > s.nextID {
			s.nextID = u.ID
		}
	}
	return s
}

func (s *fakeUserStore) writes() int {
	n := 0
	for _, c := range s.calls {
		switch c {
		case "CreateUser", "UpdateUser", "DeleteUser":
			n++
		}
	}
	return n
}

func (s *fakeUserStore) LoadUsers(ctx context.Context, offset, limit int, flags types.FlagSet, viewsMin, viewsMax *int64) (*types.ResultPage[types.User], error) {
	s.calls = append(s.calls, "LoadUsers")
	page := types.NewResultPage[types.User](offset, limit)
	page.Total = len(s.users)
	return page, nil
}

func (s *fakeUserStore) ListUserDropdown(ctx context.Context, name string, page, pageSize int) (*types.DropdownPage, error) {
	s.calls = append(s.calls, "ListUserDropdown")
	return &types.DropdownPage{Items: []types.DropdownItem{}}, nil
}

func (s *fakeUserStore) GetUserByID(ctx context.Context, id int64) (*types.User, error) {
	s.calls = append(s.calls, "GetUserByID")
	if u, ok := s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (s *fakeUserStore) GetUserByUsernameOrEmail(ctx context.Context, username, email string, excludeID int64) (*types.User, error) {
	s.calls = append(s.calls, "GetUserByUsernameOrEmail")
	for _, u := range s.users {
		if (u.Username == username || u.Email == email) && u.ID != excludeID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) CreateUser(ctx context.Context, user *types.User) error {
	s.calls = append(s.calls, "CreateUser")
	s.nextID++
	user.ID = s.nextID
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *fakeUserStore) UpdateUser(ctx context.Context, user *types.User) error {
	s.calls = append(s.calls, "UpdateUser")
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *fakeUserStore) DeleteUser(ctx context.Context, id int64) error {
	s.calls = append(s.calls, "DeleteUser")
	delete(s.users, id)
	return nil
}

func (s *fakeUserStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	s.calls = append(s.calls, "UsernameExists")
	return false, nil
}

func (s *fakeUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	s.calls = append(s.calls, "EmailExists")
	return false, nil
}
