package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/corebank/ledger/internal/models"
)

// TransactionLog is the append-only store of ledger entries. Rows are only
// ever inserted; ids come from the sequence and increase monotonically.
type TransactionLog struct {
	db *sql.DB
}

func NewTransactionLog(db *sql.DB) *TransactionLog {
	return &TransactionLog{db: db}
}

// Append inserts one entry inside tx so it becomes durable together with
// the balance change of the same operation. The store assigns id and
// timestamp.
func (l *TransactionLog) Append(tx *sql.Tx, entry models.TransactionEntry) (models.TransactionEntry, error) {
	entry.Timestamp = time.Now().UTC()
	err := tx.QueryRow(`
		INSERT INTO transactions (account_id, amount, entry_type, correlation_id, created_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		entry.AccountID, entry.Amount, entry.Type, entry.CorrelationID, entry.Timestamp).
		Scan(&entry.ID)
	if err != nil {
		return models.TransactionEntry{}, storageErr("append transaction entry", err)
	}
	return entry, nil
}

// ListByAccount returns one page of an account's entries, most recent
// first, plus the account's total entry count. The single query gives a
// read-committed snapshot: entries appended afterwards neither appear nor
// disturb what was returned.
func (l *TransactionLog) ListByAccount(ctx context.Context, accountID string, page, size int) ([]models.TransactionEntry, int64, error) {
	var total int64
	err := l.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE account_id = $1`, accountID).Scan(&total)
	if err != nil {
		return nil, 0, storageErr("count transaction entries", err)
	}

	rows, err := l.db.QueryContext(ctx, `
		SELECT id, account_id, amount, entry_type, COALESCE(correlation_id, ''), created_at
		FROM transactions WHERE account_id = $1
		ORDER BY id DESC LIMIT $2 OFFSET $3`,
		accountID, size, page*size)
	if err != nil {
		return nil, 0, storageErr("list transaction entries", err)
	}
	defer rows.Close()

	entries := []models.TransactionEntry{}
	for rows.Next() {
		var e models.TransactionEntry
		if err := rows.Scan(&e.ID, &e.AccountID, &e.Amount, &e.Type, &e.CorrelationID, &e.Timestamp); err != nil {
			return nil, 0, storageErr("scan transaction entry", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, storageErr("list transaction entries", err)
	}
	return entries, total, nil
}
