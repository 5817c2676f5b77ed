package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// Storage-level errors shared by the Mongo and in-memory repositories.
var (
	ErrNoDocument   = errors.New("document not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

// Translate normalizes driver errors onto the storage errors above.
func Translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%s: %w", op, ErrNoDocument)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w", op, ErrDuplicateKey)
	default:
		return fmt.Errorf("failed to %s: %w", op, err)
	}
}

// IndexBuilder is implemented by repositories that manage collection indexes.
type IndexBuilder interface {
	EnsureIndexes(ctx context.Context) error
}

// ErrWriteConflict marks a transaction aborted because a concurrent writer
// touched the same documents.
var ErrWriteConflict = errors.New("write conflict")

func isTransient(err error) bool {
	var le mongo.LabeledError
	return errors.As(err, &le) && le.HasErrorLabel("TransientTransactionError")
}
