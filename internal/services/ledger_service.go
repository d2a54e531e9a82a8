package services

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/corebank/ledger/internal/models"
	"github.com/corebank/ledger/internal/money"
)

// LedgerService orchestrates deposit, withdrawal and transfer over the
// account store and the transaction log. It keeps no state of its own:
// every public operation is one database transaction, so the balance
// change(s) and the matching log entry(ies) become visible together or not
// at all. Validation happens strictly before any write.
type LedgerService struct {
	db        *sql.DB
	accounts  *AccountStore
	entries   *TransactionLog
	cache     *AccountCache
	validator *ValidationHelper
}

func NewLedgerService(db *sql.DB, cache *AccountCache) *LedgerService {
	return &LedgerService{
		db:        db,
		accounts:  NewAccountStore(db),
		entries:   NewTransactionLog(db),
		cache:     cache,
		validator: NewValidationHelper(),
	}
}

// CreateAccount opens a new account with a zero balance. Deposits fund it
// afterward.
func (s *LedgerService) CreateAccount(ctx context.Context, holderName string) (models.Account, error) {
	account, err := s.accounts.Create(ctx, holderName)
	if err != nil {
		return models.Account{}, err
	}
	log.Printf("[LEDGER] Account created: %s", account.ID)
	return account, nil
}

// GetAccount returns a committed snapshot of one account, served from the
// cache when possible.
func (s *LedgerService) GetAccount(ctx context.Context, id string) (models.Account, error) {
	if account, ok := s.cache.Get(ctx, id); ok {
		return account, nil
	}
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return models.Account{}, err
	}
	s.cache.Set(ctx, account)
	return account, nil
}

// Deposit credits amount to the account and appends the matching DEPOSIT
// entry in the same commit.
func (s *LedgerService) Deposit(ctx context.Context, id string, amount money.Money) (models.Account, error) {
	if !amount.IsPositive() {
		return models.Account{}, fmt.Errorf("%w: deposit amount must be positive", ErrInvalidAmount)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Account{}, storageErr("begin deposit", err)
	}
	defer tx.Rollback()

	handle, err := s.accounts.LockForUpdate(tx, id)
	if err != nil {
		return models.Account{}, err
	}

	handle.Credit(amount)
	if err := handle.Save(); err != nil {
		return models.Account{}, err
	}
	if _, err := s.entries.Append(tx, models.TransactionEntry{
		AccountID: id,
		Amount:    amount,
		Type:      models.EntryDeposit,
	}); err != nil {
		return models.Account{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Account{}, storageErr("commit deposit", err)
	}
	s.cache.Invalidate(ctx, id)
	return handle.Account(), nil
}

// Withdraw debits amount from the account and appends the matching WITHDRAW
// entry. An insufficient balance fails before anything is written.
func (s *LedgerService) Withdraw(ctx context.Context, id string, amount money.Money) (models.Account, error) {
	if !amount.IsPositive() {
		return models.Account{}, fmt.Errorf("%w: withdrawal amount must be positive", ErrInvalidAmount)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Account{}, storageErr("begin withdrawal", err)
	}
	defer tx.Rollback()

	handle, err := s.accounts.LockForUpdate(tx, id)
	if err != nil {
		return models.Account{}, err
	}
	if handle.Balance().Cmp(amount) < 0 {
		return models.Account{}, ErrInsufficientFunds
	}

	handle.Debit(amount)
	if err := handle.Save(); err != nil {
		return models.Account{}, err
	}
	if _, err := s.entries.Append(tx, models.TransactionEntry{
		AccountID: id,
		Amount:    amount,
		Type:      models.EntryWithdraw,
	}); err != nil {
		return models.Account{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Account{}, storageErr("commit withdrawal", err)
	}
	s.cache.Invalidate(ctx, id)
	return handle.Account(), nil
}

// Transfer moves amount between two accounts: debit, credit, and one
// TRANSFER_OUT plus one TRANSFER_IN entry sharing a correlation id, all in
// one commit.
//
// Locks are always acquired in ascending account-id order, not in
// from/to order, so two concurrent transfers between the same pair of
// accounts in opposite directions cannot deadlock.
func (s *LedgerService) Transfer(ctx context.Context, fromID, toID string, amount money.Money) error {
	if fromID == toID {
		return ErrSelfTransfer
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%w: transfer amount must be positive", ErrInvalidAmount)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin transfer", err)
	}
	defer tx.Rollback()

	firstID, secondID := fromID, toID
	if firstID > secondID {
		firstID, secondID = secondID, firstID
	}

	first, err := s.accounts.LockForUpdate(tx, firstID)
	if err != nil {
		return err
	}
	second, err := s.accounts.LockForUpdate(tx, secondID)
	if err != nil {
		return err
	}

	from, to := first, second
	if first.ID() != fromID {
		from, to = second, first
	}

	if from.Balance().Cmp(amount) < 0 {
		return ErrInsufficientFunds
	}

	from.Debit(amount)
	to.Credit(amount)
	if err := from.Save(); err != nil {
		return err
	}
	if err := to.Save(); err != nil {
		return err
	}

	correlationID := uuid.NewString()
	if _, err := s.entries.Append(tx, models.TransactionEntry{
		AccountID:     fromID,
		Amount:        amount,
		Type:          models.EntryTransferOut,
		CorrelationID: correlationID,
	}); err != nil {
		return err
	}
	if _, err := s.entries.Append(tx, models.TransactionEntry{
		AccountID:     toID,
		Amount:        amount,
		Type:          models.EntryTransferIn,
		CorrelationID: correlationID,
	}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit transfer", err)
	}
	s.cache.Invalidate(ctx, fromID)
	s.cache.Invalidate(ctx, toID)
	log.Printf("[LEDGER] Transfer %s: %s -> %s amount %s", correlationID, fromID, toID, amount)
	return nil
}

// DeleteAccount removes an account whose balance is zero. The account's
// transaction history is retained; the log outlives its account.
func (s *LedgerService) DeleteAccount(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin delete", err)
	}
	defer tx.Rollback()

	handle, err := s.accounts.LockForUpdate(tx, id)
	if err != nil {
		return err
	}
	if !handle.Balance().IsZero() {
		return ErrAccountHasBalance
	}
	if err := handle.Delete(); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit delete", err)
	}
	s.cache.Invalidate(ctx, id)
	log.Printf("[LEDGER] Account deleted: %s", id)
	return nil
}

// ListAccounts returns one page of accounts.
func (s *LedgerService) ListAccounts(ctx context.Context, page models.PageRequest) (models.PageResponse[models.Account], error) {
	if page.SortBy == "" {
		page.SortBy = "id"
	}
	if page.SortDir == "" {
		page.SortDir = "asc"
	}
	if err := s.validator.ValidateStruct(&page); err != nil {
		return models.PageResponse[models.Account]{}, fmt.Errorf("%w: %v", ErrInvalidPageRequest, err)
	}

	accounts, total, err := s.accounts.List(ctx, page)
	if err != nil {
		return models.PageResponse[models.Account]{}, err
	}
	return models.NewPageResponse(accounts, page.Page, page.Size, total), nil
}

// ListTransactions returns one page of an account's ledger entries, most
// recent first. The account must currently exist; history of deleted
// accounts is kept in storage but is not served through this surface.
func (s *LedgerService) ListTransactions(ctx context.Context, accountID string, page, size int) (models.PageResponse[models.TransactionEntry], error) {
	if page < 0 || size < 1 || size > 100 {
		return models.PageResponse[models.TransactionEntry]{},
			fmt.Errorf("%w: page=%d size=%d", ErrInvalidPageRequest, page, size)
	}
	if _, err := s.accounts.GetByID(ctx, accountID); err != nil {
		return models.PageResponse[models.TransactionEntry]{}, err
	}

	entries, total, err := s.entries.ListByAccount(ctx, accountID, page, size)
	if err != nil {
		return models.PageResponse[models.TransactionEntry]{}, err
	}
	return models.NewPageResponse(entries, page, size, total), nil
}
