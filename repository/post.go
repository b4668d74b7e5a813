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
	"errors"

	"github.com/tomoncle/flagadmin/database"
	"github.com/tomoncle/flagadmin/query"
	"github.com/tomoncle/flagadmin/types"
	"github.com/uptrace/bun"
)

var postListColumns = []string{
	"p.id", "p.title", "p.content", "p.views", "p.user_id", "p.created_at", "p.modified_at", "u.username",
}

// PostRepository is the bun-backed PostStore.
type PostRepository struct {
	baseRepository[PostModel]
}

var _ PostStore = (*PostRepository)(nil)

// NewPostRepository returns a PostRepository reading from provider.
func NewPostRepository(provider database.Provider, opts ...Option) *PostRepository {
	return &PostRepository{baseRepository: newBaseRepository[PostModel](provider, opts)}
}

// LoadPosts lists posts newest first with their author's username. keyword
// matches title or content, userID selects one author and flags filter on the
// author's flags. Zero values leave a filter out.
func (r *PostRepository) LoadPosts(ctx context.Context, offset, limit int, keyword string, userID int64, flags types.FlagSet) (*types.ResultPage[types.Post], error) {
	d, err := r.dialectName(ctx)
	if err != nil {
		return nil, err
	}

	b := query.New(d, "posts AS p").
		Columns(postListColumns...).
		Join("JOIN users AS u ON u.id = p.user_id").
		Keyword(keyword, "p.title", "p.content").
		Equal("p.user_id", userID).
		Flags("u.flags", flags).
		OrderBy("p.created_at DESC", "p.id DESC")

	rows, total, err := r.loadPage(ctx, b, offset, limit)
	if err != nil {
		return nil, err
	}

	page := types.NewResultPage[types.Post](offset, limit)
	page.Total = total
	for _, row := range rows {
		page.Items = append(page.Items, row.toEntity())
	}
	return page, nil
}

func (r *PostRepository) withAuthor(q *bun.SelectQuery) *bun.SelectQuery {
	return q.ColumnExpr("p.*").
		ColumnExpr("u.username").
		Join("LEFT JOIN users AS u ON u.id = p.user_id")
}

func (r *PostRepository) GetPostByID(ctx context.Context, id int64) (*types.Post, error) {
	m, err := r.getOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return r.withAuthor(q).Where("p.id = ?", id)
	})
	if err != nil || m == nil {
		return nil, err
	}
	return m.toEntity(), nil
}

// GetPostByTitleAndUser finds a post of userID titled title, ignoring the post
// with id excludeID.
func (r *PostRepository) GetPostByTitleAndUser(ctx context.Context, title string, userID, excludeID int64) (*types.Post, error) {
	m, err := r.getOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return r.withAuthor(q).
			Where("p.title = ?", title).
			Where("p.user_id = ?", userID).
			Where("p.id <> ?", excludeID)
	})
	if err != nil || m == nil {
		return nil, err
	}
	return m.toEntity(), nil
}

// CreatePost inserts post and fills in its id, creation time and seeded view
// count.
func (r *PostRepository) CreatePost(ctx context.Context, post *types.Post) error {
	m := newPostModel(post)
	m.CreatedAt = r.now()
	m.ModifiedAt = nil
	m.Views = r.views()

	_, err := r.execInTx(ctx, "create_post", func(ctx context.Context, tx bun.Tx) (sql.Result, error) {
		return tx.NewInsert().Model(m).Exec(ctx)
	})
	if err != nil {
		return err
	}

	post.ID = m.ID
	post.Views = m.Views
	post.CreatedAt = m.CreatedAt
	post.ModifiedAt = nil
	return nil
}

// UpdatePost writes the title and content of post and stamps modified_at.
func (r *PostRepository) UpdatePost(ctx context.Context, post *types.Post) error {
	m := newPostModel(post)
	now := r.now()
	m.ModifiedAt = &now

	_, err := r.execInTx(ctx, "update_post", func(ctx context.Context, tx bun.Tx) (sql.Result, error) {
		return tx.NewUpdate().
			Model(m).
			Column("title", "content", "modified_at").
			WherePK().
			Exec(ctx)
	})
	if err != nil {
		return err
	}
	post.ModifiedAt = m.ModifiedAt
	return nil
}

func (r *PostRepository) DeletePost(ctx context.Context, id int64) error {
	_, err := r.execInTx(ctx, "delete_post", func(ctx context.Context, tx bun.Tx) (sql.Result, error) {
		return tx.NewDelete().Model(&PostModel{ID: id}).WherePK().Exec(ctx)
	})
	return err
}

func (r *PostRepository) TitleExists(ctx context.Context, title string) (bool, error) {
	return r.exists(ctx, "p.title = ?", title)
}

// RandomUserID picks any user id, or 0 when there are no users.
func (r *PostRepository) RandomUserID(ctx context.Context) (int64, error) {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return 0, err
	}
	var id int64
	err = db.NewSelect().
		Model((*UserModel)(nil)).
		Column("id").
		OrderExpr(randomOrder(db.Dialect().Name())).
		Limit(1).
		Scan(ctx, &id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return id, err
}
