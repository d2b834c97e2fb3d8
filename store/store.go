// Package store exposes the in-process data operations the web/API layer
// calls into: cart writes, ledger writes, reviews, and plain CRUD for
// users and products. Every operation runs as one storage transaction and
// returns a typed failure from the models package.
package store

import (
	"errors"

	"github.com/quickbazaar/marketplace-core/models"
)

// wrapStorage classifies an error coming back from the database. Hook
// validation errors pass through untouched; anything else is a storage
// failure surfaced to the caller.
func wrapStorage(op string, err error) error {
	var verr *models.ValidationError
	var rerr *models.ReferenceError
	if errors.As(err, &verr) || errors.As(err, &rerr) {
		return err
	}
	return &models.StorageError{Op: op, Err: err}
}
