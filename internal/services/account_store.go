package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/corebank/ledger/internal/models"
	"github.com/corebank/ledger/internal/money"
)

// AccountStore owns the accounts relation. Reads return value snapshots;
// the only write path is an AccountHandle obtained from LockForUpdate, so
// balance mutation outside a held row lock is not reachable.
type AccountStore struct {
	db *sql.DB
}

func NewAccountStore(db *sql.DB) *AccountStore {
	return &AccountStore{db: db}
}

const accountColumns = "id, holder_name, balance, version, created_at, updated_at"

// Create inserts a fresh account with a zero balance.
func (s *AccountStore) Create(ctx context.Context, holderName string) (models.Account, error) {
	now := time.Now().UTC()
	account := models.Account{
		ID:         uuid.NewString(),
		HolderName: holderName,
		Balance:    money.Zero,
		Version:    0,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (id, holder_name, balance, version, created_at, updated_at)
		VALUES ($1, $2, 0, 0, $3, $3)`,
		account.ID, account.HolderName, now)
	if err != nil {
		return models.Account{}, storageErr("create account", err)
	}
	return account, nil
}

// GetByID returns a snapshot of one account. No lock is held after return.
func (s *AccountStore) GetByID(ctx context.Context, id string) (models.Account, error) {
	var acc models.Account
	err := s.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id).
		Scan(&acc.ID, &acc.HolderName, &acc.Balance, &acc.Version, &acc.CreatedAt, &acc.UpdatedAt)
	if err == sql.ErrNoRows {
		return models.Account{}, ErrAccountNotFound
	}
	if err != nil {
		return models.Account{}, storageErr("get account", err)
	}
	return acc, nil
}

// sortColumns maps the API sort keys onto real columns. Anything outside
// this map is rejected before query assembly.
var sortColumns = map[string]string{
	"id":         "id",
	"holderName": "holder_name",
	"balance":    "balance",
	"createdAt":  "created_at",
}

// List returns one page of accounts plus the total account count.
func (s *AccountStore) List(ctx context.Context, page models.PageRequest) ([]models.Account, int64, error) {
	column, ok := sortColumns[page.SortBy]
	if !ok {
		return nil, 0, fmt.Errorf("%w: unknown sort key %q", ErrInvalidPageRequest, page.SortBy)
	}
	direction := "ASC"
	if page.SortDir == "desc" {
		direction = "DESC"
	}

	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&total); err != nil {
		return nil, 0, storageErr("count accounts", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM accounts ORDER BY %s %s LIMIT $1 OFFSET $2`,
		accountColumns, column, direction)
	rows, err := s.db.QueryContext(ctx, query, page.Size, page.Page*page.Size)
	if err != nil {
		return nil, 0, storageErr("list accounts", err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		var acc models.Account
		if err := rows.Scan(&acc.ID, &acc.HolderName, &acc.Balance, &acc.Version, &acc.CreatedAt, &acc.UpdatedAt); err != nil {
			return nil, 0, storageErr("scan account", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, storageErr("list accounts", err)
	}
	return accounts, total, nil
}

// LockForUpdate acquires the exclusive row lock for one account inside tx.
// The lock, and the handle with it, live until tx commits or rolls back.
func (s *AccountStore) LockForUpdate(tx *sql.Tx, id string) (*AccountHandle, error) {
	h := &AccountHandle{tx: tx}
	err := tx.QueryRow(
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1 FOR UPDATE`, id).
		Scan(&h.account.ID, &h.account.HolderName, &h.account.Balance, &h.account.Version,
			&h.account.CreatedAt, &h.account.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, storageErr("lock account", err)
	}
	return h, nil
}

// AccountHandle is exclusive write access to one locked account row. It is
// valid only while the transaction it was created in is open; rolling the
// transaction back discards any credits and debits and releases the lock.
type AccountHandle struct {
	tx      *sql.Tx
	account models.Account
}

// Account returns a snapshot of the locked row including pending changes.
func (h *AccountHandle) Account() models.Account {
	return h.account
}

func (h *AccountHandle) ID() string {
	return h.account.ID
}

func (h *AccountHandle) Balance() money.Money {
	return h.account.Balance
}

// Credit adds amount to the in-handle balance. Not visible until Save and
// the surrounding commit.
func (h *AccountHandle) Credit(amount money.Money) {
	h.account.Balance = h.account.Balance.Add(amount)
}

// Debit subtracts amount from the in-handle balance. The caller checks
// sufficiency first; Debit itself does not clamp.
func (h *AccountHandle) Debit(amount money.Money) {
	h.account.Balance = h.account.Balance.Sub(amount)
}

// Save persists the in-handle balance and bumps the version. The version
// guard cannot fail while the row lock is held; if it ever does, the write
// is reported as a storage fault and the transaction rolls back.
func (h *AccountHandle) Save() error {
	now := time.Now().UTC()
	result, err := h.tx.Exec(`
		UPDATE accounts SET balance = $1, version = version + 1, updated_at = $2
		WHERE id = $3 AND version = $4`,
		h.account.Balance, now, h.account.ID, h.account.Version)
	if err != nil {
		return storageErr("save account", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return storageErr("save account", err)
	}
	if affected == 0 {
		return storageErr("save account", fmt.Errorf("version conflict on account %s", h.account.ID))
	}
	h.account.Version++
	h.account.UpdatedAt = now
	return nil
}

// Delete removes the locked account row. Balance and history policy are the
// engine's responsibility; the log is not touched and outlives the account.
func (h *AccountHandle) Delete() error {
	if _, err := h.tx.Exec(`DELETE FROM accounts WHERE id = $1`, h.account.ID); err != nil {
		return storageErr("delete account", err)
	}
	return nil
}
