package models

import (
	"time"

	"github.com/corebank/ledger/internal/money"
)

// Account is a snapshot of one account row. Balances are only ever changed
// through the account store's exclusive-lock handle; this struct is a value
// copy and writing to it has no effect on stored state.
type Account struct {
	ID         string      `json:"id" db:"id"`
	HolderName string      `json:"holderName" db:"holder_name"`
	Balance    money.Money `json:"balance" db:"balance"`
	Version    int64       `json:"version" db:"version"` // incremented on every committed mutation
	CreatedAt  time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time   `json:"updatedAt" db:"updated_at"`
}

type CreateAccountRequest struct {
	HolderName string `json:"holderName" validate:"required,min=1,max=100"`
}

type AmountRequest struct {
	Amount string `json:"amount" validate:"required"`
}

type TransferRequest struct {
	FromAccountID string `json:"fromAccountId" validate:"required"`
	ToAccountID   string `json:"toAccountId" validate:"required"`
	Amount        string `json:"amount" validate:"required"`
}
