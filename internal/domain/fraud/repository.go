package fraud

import "context"

// Repository persists flagged transactions.
type Repository interface {
	// IsReceiverFlagged reports whether any flagged transaction exists with
	// this receiver.
	IsReceiverFlagged(ctx context.Context, receiverID string) (bool, error)

	// InsertIfAbsent stores a new flagged transaction unless one with the same
	// transaction ID already exists. It returns whether a row was created; an
	// existing transaction ID is not an error.
	InsertIfAbsent(ctx context.Context, params InsertFlaggedParams) (bool, error)

	// ListRecent returns up to limit flagged transactions, newest first.
	ListRecent(ctx context.Context, limit int) ([]*FlaggedTransaction, error)
}
