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
	"math/rand/v2"
	"time"

	"github.com/tomoncle/flagadmin/database"
	"github.com/tomoncle/flagadmin/query"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

// MaxSeedViews is the upper bound of the view count given to a new post.
const MaxSeedViews = 100000

type options struct {
	logger database.Logger
	now    func() time.Time
	views  func() int64
}

// Option customizes a repository.
type Option func(*options)

// WithLogger sets the logger used to report failed writes.
func WithLogger(logger database.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithClock sets the source of created_at and modified_at.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithViewsSeed sets the source of the initial view count of new posts.
func WithViewsSeed(views func() int64) Option {
	return func(o *options) { o.views = views }
}

func newOptions(opts []Option) options {
	o := options{
		logger: database.GetLogger(),
		now:    func() time.Time { return time.Now().UTC() },
		views:  func() int64 { return rand.Int64N(MaxSeedViews + 1) },
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type baseRepository[M any] struct {
	provider database.Provider
	options
}

func newBaseRepository[M any](provider database.Provider, opts []Option) baseRepository[M] {
	return baseRepository[M]{provider: provider, options: newOptions(opts)}
}

// execInTx runs write as the only statement of a transaction. The error of a
// failed statement is returned unchanged after the rollback.
func (r *baseRepository[M]) execInTx(ctx context.Context, op string, write func(ctx context.Context, tx bun.Tx) (sql.Result, error)) (sql.Result, error) {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	var committed bool
	defer func(tx bun.Tx) {
		if !committed {
			if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
				r.logger.Error("Failed to rollback transaction", "operation", op, "error", rollbackErr)
			}
		}
	}(tx)

	res, err := write(ctx, tx)
	if err != nil {
		_, kind := database.IsSqlError(err)
		r.logger.Warn("Write failed, rolling back", "operation", op, "kind", kind.String(), "error", err)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return res, nil
}

// getOne scans the first row selected by build, or returns nil when there is
// none.
func (r *baseRepository[M]) getOne(ctx context.Context, build func(q *bun.SelectQuery) *bun.SelectQuery) (*M, error) {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return nil, err
	}
	entity := new(M)
	err = build(db.NewSelect().Model(entity)).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entity, nil
}

func (r *baseRepository[M]) exists(ctx context.Context, where string, args ...interface{}) (bool, error) {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return false, err
	}
	count, err := db.NewSelect().Model((*M)(nil)).Where(where, args...).Count(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// dialectName connects if needed and reports the dialect listings are built for.
func (r *baseRepository[M]) dialectName(ctx context.Context) (dialect.Name, error) {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return dialect.Invalid, err
	}
	return db.Dialect().Name(), nil
}

// loadPage reads one page of b and the filtered total carried by its window
// count. An empty page that may still have matching rows before it, or that
// was asked for zero rows, takes the total from a separate count.
func (r *baseRepository[M]) loadPage(ctx context.Context, b *query.Builder, offset, limit int) ([]*M, int, error) {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return nil, 0, err
	}

	text, args := b.CountTotal().Paginate(offset, limit).Build()
	rows := make([]*M, 0)
	if err := db.NewRaw(text, args...).Scan(ctx, &rows); err != nil {
		return nil, 0, err
	}
	if len(rows) > 0 {
		return rows, any(rows[0]).(counted).total(), nil
	}
	if limit > 0 && offset == 0 {
		return rows, 0, nil
	}

	var total int
	countText, countArgs := b.BuildCount()
	if err := db.NewRaw(countText, countArgs...).Scan(ctx, &total); err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func randomOrder(d dialect.Name) string {
	if d == dialect.MySQL {
		return "RAND()"
	}
	return "RANDOM()"
}
