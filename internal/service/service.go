// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data.
//
// Services depend on the small interfaces declared next to them rather than
// on the concrete repositories, so tests can swap in fakes.
package service

import (
	"context"
	"errors"

	"github.com/deppfellow/sky-takeout/internal/errs"
	"github.com/jackc/pgx/v5"
)

// Transactor runs fn inside one database transaction.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ImageCleaner schedules removal of an image that is no longer referenced.
type ImageCleaner interface {
	EnqueueImageCleanup(ctx context.Context, url string) error
}

// ImageRefs reports whether a stored row still points at an image.
type ImageRefs interface {
	ImageInUse(ctx context.Context, url string) (bool, error)
}

// orphanedImages returns the distinct non-empty urls no row references any more.
// Call it inside the transaction that dropped the references.
func orphanedImages(ctx context.Context, refs ImageRefs, urls ...string) ([]string, error) {
	var orphaned []string
	seen := make(map[string]struct{}, len(urls))
	for _, url := range urls {
		if url == "" {
			continue
		}
		if _, ok := seen[url]; ok {
			continue
		}
		seen[url] = struct{}{}

		inUse, err := refs.ImageInUse(ctx, url)
		if err != nil {
			return nil, err
		}
		if !inUse {
			orphaned = append(orphaned, url)
		}
	}
	return orphaned, nil
}

// notFound maps a missing row to the entity's 404 and passes anything else through.
func notFound(err error, entity string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return errs.NotFound(entity)
	}
	return err
}
