package models

import (
	"time"

	"github.com/corebank/ledger/internal/money"
)

// EntryType classifies a ledger movement. Amounts are always recorded as
// the magnitude of the movement; direction lives in the type.
type EntryType string

const (
	EntryDeposit     EntryType = "DEPOSIT"
	EntryWithdraw    EntryType = "WITHDRAW"
	EntryTransferOut EntryType = "TRANSFER_OUT"
	EntryTransferIn  EntryType = "TRANSFER_IN"
)

// TransactionEntry is one immutable row of the append-only transaction log.
// Entries are only ever inserted; ids are assigned by the store and increase
// monotonically. The two legs of a transfer share a correlation id.
type TransactionEntry struct {
	ID            int64       `json:"id" db:"id"`
	AccountID     string      `json:"accountId" db:"account_id"`
	Amount        money.Money `json:"amount" db:"amount"`
	Type          EntryType   `json:"type" db:"entry_type"`
	CorrelationID string      `json:"correlationId,omitempty" db:"correlation_id"`
	Timestamp     time.Time   `json:"timestamp" db:"created_at"`
}
