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
	"time"

	"github.com/tomoncle/flagadmin/database"
	"github.com/tomoncle/flagadmin/types"
	"github.com/uptrace/bun"
)

// WindowCount receives the COUNT(*) OVER() column of listing rows.
type WindowCount struct {
	DataCount int `bun:"data_count,scanonly"`
}

func (w *WindowCount) total() int { return w.DataCount }

type counted interface {
	total() int
}

type UserModel struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID         int64           `bun:"id,pk,autoincrement"`
	Username   string          `bun:"username,notnull"`
	Email      string          `bun:"email,notnull"`
	CreatedAt  time.Time       `bun:"created_at,notnull"`
	ModifiedAt *time.Time      `bun:"modified_at"`
	Flags      types.FlagCodes `bun:"flags,type:json,notnull"`

	WindowCount
}

type PostModel struct {
	bun.BaseModel `bun:"table:posts,alias:p"`

	ID         int64      `bun:"id,pk,autoincrement"`
	Title      string     `bun:"title,notnull"`
	Content    string     `bun:"content,type:text,notnull"`
	Views      int64      `bun:"views,notnull"`
	UserID     int64      `bun:"user_id,notnull"`
	CreatedAt  time.Time  `bun:"created_at,notnull"`
	ModifiedAt *time.Time `bun:"modified_at"`
	AuthorName string     `bun:"username,scanonly"`

	WindowCount
}

// Models lists the tables to migrate, users before posts.
func Models() []database.SQLModel {
	return []database.SQLModel{
		database.NewModelAdapter((*UserModel)(nil), 10),
		database.NewModelAdapter((*PostModel)(nil), 20),
	}
}

func (m *UserModel) toEntity() *types.User {
	return &types.User{
		ID:         m.ID,
		Username:   m.Username,
		Email:      m.Email,
		Flags:      m.Flags.Set(),
		CreatedAt:  m.CreatedAt,
		ModifiedAt: m.ModifiedAt,
	}
}

func newUserModel(u *types.User) *UserModel {
	return &UserModel{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		Flags:      types.ToFlagCodes(u.Flags),
		CreatedAt:  u.CreatedAt,
		ModifiedAt: u.ModifiedAt,
	}
}

func (m *PostModel) toEntity() *types.Post {
	return &types.Post{
		ID:         m.ID,
		Title:      m.Title,
		Content:    m.Content,
		Views:      m.Views,
		AuthorID:   m.UserID,
		AuthorName: m.AuthorName,
		CreatedAt:  m.CreatedAt,
		ModifiedAt: m.ModifiedAt,
	}
}

func newPostModel(p *types.Post) *PostModel {
	return &PostModel{
		ID:         p.ID,
		Title:      p.Title,
		Content:    p.Content,
		Views:      p.Views,
		UserID:     p.AuthorID,
		CreatedAt:  p.CreatedAt,
		ModifiedAt: p.ModifiedAt,
	}
}
