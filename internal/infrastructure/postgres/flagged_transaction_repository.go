package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"tiis/internal/domain/fraud"
)

type FlaggedTransactionRepository struct {
	db *DB
}

var _ fraud.Repository = (*FlaggedTransactionRepository)(nil)

func NewFlaggedTransactionRepository(db *DB) *FlaggedTransactionRepository {
	return &FlaggedTransactionRepository{db: db}
}

// EnsureSchema creates the fraud_transactions table and its receiver index if
// they do not exist yet. The transaction_id uniqueness constraint is what
// serializes concurrent inserts of the same transaction.
func (r *FlaggedTransactionRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS fraud_transactions (
			id BIGSERIAL PRIMARY KEY,
			transaction_id TEXT UNIQUE NOT NULL,
			receiver_id TEXT NOT NULL,
			amount DOUBLE PRECISION,
			transaction_date TEXT,
			flagged_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fraud_transactions_receiver_id
			ON fraud_transactions (receiver_id)`,
	}

	for _, stmt := range statements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure fraud_transactions schema: %w", err)
		}
	}
	return nil
}

// IsReceiverFlagged reports whether the receiver appears on any previously
// flagged transaction.
func (r *FlaggedTransactionRepository) IsReceiverFlagged(ctx context.Context, receiverID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM fraud_transactions WHERE receiver_id = $1)`

	var flagged bool
	if err := r.db.QueryRowContext(ctx, query, receiverID).Scan(&flagged); err != nil {
		return false, fmt.Errorf("failed to check receiver %s: %w", receiverID, err)
	}
	return flagged, nil
}

// InsertIfAbsent stores a flagged transaction, relying on the unique
// constraint to make re-inserts of the same transaction_id a no-op. Returns
// whether a new row was created.
func (r *FlaggedTransactionRepository) InsertIfAbsent(ctx context.Context, params fraud.InsertFlaggedParams) (bool, error) {
	query := `
		INSERT INTO fraud_transactions (transaction_id, receiver_id, amount, transaction_date)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (transaction_id) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query,
		params.TransactionID, params.ReceiverID, params.Amount, params.TransactionDate,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert flagged transaction %s: %w", params.TransactionID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}
	return affected > 0, nil
}

// ListRecent returns up to limit flagged transactions, newest first.
func (r *FlaggedTransactionRepository) ListRecent(ctx context.Context, limit int) ([]*fraud.FlaggedTransaction, error) {
	query := `
		SELECT transaction_id, receiver_id, amount, transaction_date, flagged_at
		FROM fraud_transactions
		ORDER BY flagged_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list flagged transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*fraud.FlaggedTransaction
	for rows.Next() {
		var tx fraud.FlaggedTransaction
		var amount sql.NullFloat64
		var transactionDate sql.NullString

		if err := rows.Scan(&tx.TransactionID, &tx.ReceiverID, &amount, &transactionDate, &tx.FlaggedAt); err != nil {
			return nil, fmt.Errorf("failed to scan flagged transaction: %w", err)
		}
		if amount.Valid {
			tx.Amount = &amount.Float64
		}
		if transactionDate.Valid {
			tx.TransactionDate = &transactionDate.String
		}
		transactions = append(transactions, &tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate flagged transactions: %w", err)
	}

	return transactions, nil
}
