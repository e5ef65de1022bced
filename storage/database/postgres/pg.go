// Package pgrepos implements the repositories over postgres via sqlx.
// Column naming is snake_case (mapped through the models' db tags); the JSON
// boundary stays camelCase. Every call carries its own timeout: the
// repository interfaces are synchronous and the adapter owns the deadline.
package pgrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const defaultTimeout = 5 * time.Second

type repo struct {
	db      *sqlx.DB
	timeout time.Duration
}

func newRepo(db *sqlx.DB, timeout time.Duration) repo {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return repo{db: db, timeout: timeout}
}

func (r repo) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), r.timeout)
}

// translate maps the driver's no-rows sentinel to the entity's not-found
// error and wraps anything else, keeping backend failures distinguishable
// from absent records.
func translate(err, notFound error, msg string) error {
	if errors.Cause(err) == sql.ErrNoRows {
		return notFound
	}
	return errors.Wrap(err, msg)
}
