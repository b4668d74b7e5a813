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
	"database/sql"

	"github.com/tomoncle/flagadmin/database"
	"github.com/tomoncle/flagadmin/query"
	"github.com/tomoncle/flagadmin/types"
	"github.com/uptrace/bun"
)

var userListColumns = []string{
	"u.id", "u.username", "u.email", "u.created_at", "u.modified_at", "u.flags",
}

// UserRepository is the bun-backed UserStore.
type UserRepository struct {
	baseRepository[UserModel]
}

var _ UserStore = (*UserRepository)(nil)

// NewUserRepository returns a UserRepository reading from provider.
func NewUserRepository(provider database.Provider, opts ...Option) *UserRepository {
	return &UserRepository{baseRepository: newBaseRepository[UserModel](provider, opts)}
}

// LoadUsers lists users newest first. flags filters on the user's flags; the
// views bounds keep users having at least one post inside the range.
func (r *UserRepository) LoadUsers(ctx context.Context, offset, limit int, flags types.FlagSet, viewsMin, viewsMax *int64) (*types.ResultPage[types.User], error) {
	d, err := r.dialectName(ctx)
	if err != nil {
		return nil, err
	}

	posts := query.New(d, "posts AS ep").
		Where("ep.user_id = u.id").
		Range("ep.views", viewsMin, viewsMax)

	b := query.New(d, "users AS u").
		Columns(userListColumns...).
		Flags("u.flags", flags).
		Exists(posts).
		OrderBy("u.created_at DESC", "u.id DESC")

	rows, total, err := r.loadPage(ctx, b, offset, limit)
	if err != nil {
		return nil, err
	}

	page := types.NewResultPage[types.User](offset, limit)
	page.Total = total
	for _, row := range rows {
		page.Items = append(page.Items, row.toEntity())
	}
	return page, nil
}

// ListUserDropdown pages usernames matching name for a selection list.
func (r *UserRepository) ListUserDropdown(ctx context.Context, name string, page, pageSize int) (*types.DropdownPage, error) {
	d, err := r.dialectName(ctx)
	if err != nil {
		return nil, err
	}

	req := types.NewPageRequest(page, pageSize)
	b := query.New(d, "users AS u").
		Columns("u.id", "u.username").
		Keyword(name, "u.username").
		OrderBy("u.created_at DESC", "u.id DESC")

	rows, total, err := r.loadPage(ctx, b, req.GetOffset(), req.GetPageSize())
	if err != nil {
		return nil, err
	}

	result := &types.DropdownPage{
		Items:   make([]types.DropdownItem, 0, len(rows)),
		HasMore: req.GetOffset()+req.GetPageSize() < total,
	}
	for _, row := range rows {
		result.Items = append(result.Items, types.DropdownItem{ID: row.ID, Label: row.Username})
	}
	return result, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*types.User, error) {
	m, err := r.getOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("u.id = ?", id)
	})
	if err != nil || m == nil {
		return nil, err
	}
	return m.toEntity(), nil
}

// GetUserByUsernameOrEmail finds a user other than excludeID holding either
// the username or the email.
func (r *UserRepository) GetUserByUsernameOrEmail(ctx context.Context, username, email string, excludeID int64) (*types.User, error) {
	m, err := r.getOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.
			WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.Where("u.username = ?", username).WhereOr("u.email = ?", email)
			}).
			Where("u.id <> ?", excludeID)
	})
	if err != nil || m == nil {
		return nil, err
	}
	return m.toEntity(), nil
}

// CreateUser inserts user and fills in its id and creation time.
func (r *UserRepository) CreateUser(ctx context.Context, user *types.User) error {
	m := newUserModel(user)
	m.CreatedAt = r.now()
	m.ModifiedAt = nil

	_, err := r.execInTx(ctx, "create_user", func(ctx context.Context, tx bun.Tx) (sql.Result, error) {
		return tx.NewInsert().Model(m).Exec(ctx)
	})
	if err != nil {
		return err
	}

	user.ID = m.ID
	user.CreatedAt = m.CreatedAt
	user.ModifiedAt = nil
	return nil
}

// UpdateUser writes username, email and flags and stamps modified_at.
func (r *UserRepository) UpdateUser(ctx context.Context, user *types.User) error {
	m := newUserModel(user)
	now := r.now()
	m.ModifiedAt = &now

	_, err := r.execInTx(ctx, "update_user", func(ctx context.Context, tx bun.Tx) (sql.Result, error) {
		return tx.NewUpdate().
			Model(m).
			Column("username", "email", "flags", "modified_at").
			WherePK().
			Exec(ctx)
	})
	if err != nil {
		return err
	}
	user.ModifiedAt = m.ModifiedAt
	return nil
}

func (r *UserRepository) DeleteUser(ctx context.Context, id int64) error {
	_, err := r.execInTx(ctx, "delete_user", func(ctx context.Context, tx bun.Tx) (sql.Result, error) {
		return tx.NewDelete().Model(&UserModel{ID: id}).WherePK().Exec(ctx)
	})
	return err
}

func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "u.username = ?", username)
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "u.email = ?", email)
}
