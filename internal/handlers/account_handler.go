package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/corebank/ledger/internal/models"
	"github.com/corebank/ledger/internal/money"
	"github.com/corebank/ledger/internal/services"
)

// AccountHandler exposes the ledger engine over HTTP. It does request
// shaping and error mapping only; every balance rule lives in the service.
type AccountHandler struct {
	ledger    *services.LedgerService
	validator *services.ValidationHelper
}

func NewAccountHandler(ledger *services.LedgerService) *AccountHandler {
	return &AccountHandler{
		ledger:    ledger,
		validator: services.NewValidationHelper(),
	}
}

// decodeJSON enforces the request-body rules shared by all write endpoints:
// bounded size, no unknown fields, exactly one JSON object.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	maxBytes := 1_048_576 // 1 MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("request body must only contain a single JSON object")
	}
	return nil
}

// sendServiceError maps an engine error onto a stable code and HTTP status.
func sendServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrAccountNotFound):
		services.SendErrorResponse(w, "ACCOUNT_NOT_FOUND", err.Error(), http.StatusNotFound, nil)
	case errors.Is(err, services.ErrInvalidAmount):
		services.SendErrorResponse(w, "INVALID_AMOUNT", err.Error(), http.StatusBadRequest, nil)
	case errors.Is(err, services.ErrInsufficientFunds):
		services.SendErrorResponse(w, "INSUFFICIENT_FUNDS", err.Error(), http.StatusBadRequest, nil)
	case errors.Is(err, services.ErrSelfTransfer):
		services.SendErrorResponse(w, "SELF_TRANSFER", err.Error(), http.StatusBadRequest, nil)
	case errors.Is(err, services.ErrInvalidPageRequest):
		services.SendErrorResponse(w, "INVALID_PAGE_REQUEST", err.Error(), http.StatusBadRequest, nil)
	case errors.Is(err, services.ErrAccountHasBalance):
		services.SendErrorResponse(w, "ACCOUNT_HAS_BALANCE", err.Error(), http.StatusConflict, nil)
	default:
		log.Printf("[API] Storage failure: %v", err)
		services.SendErrorResponse(w, "STORAGE_UNAVAILABLE", "storage unavailable", http.StatusInternalServerError, nil)
	}
}

func sendJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// CreateAccount opens a new account
// @Summary Create account
// @Description Open a new account with a zero balance
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body models.CreateAccountRequest true "Account holder"
// @Success 201 {object} models.Account
// @Failure 400 {object} services.ErrorResponse
// @Router /accounts [post]
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAccountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		services.SendErrorResponse(w, "INVALID_REQUEST", "Invalid request body", http.StatusBadRequest, nil)
		return
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "INVALID_REQUEST", "Validation failed", http.StatusBadRequest, err)
		return
	}

	account, err := h.ledger.CreateAccount(r.Context(), req.HolderName)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, account)
}

// GetAccount returns one account snapshot
// @Summary Get account
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} models.Account
// @Failure 404 {object} services.ErrorResponse
// @Router /accounts/{id} [get]
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	account, err := h.ledger.GetAccount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, account)
}

// amountFromRequest decodes and parses the amount carried by deposit and
// withdraw bodies.
func (h *AccountHandler) amountFromRequest(w http.ResponseWriter, r *http.Request) (money.Money, bool) {
	var req models.AmountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		services.SendErrorResponse(w, "INVALID_REQUEST", "Invalid request body", http.StatusBadRequest, nil)
		return 0, false
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "INVALID_REQUEST", "Validation failed", http.StatusBadRequest, err)
		return 0, false
	}
	amount, err := money.Parse(req.Amount)
	if err != nil {
		services.SendErrorResponse(w, "INVALID_AMOUNT", err.Error(), http.StatusBadRequest, nil)
		return 0, false
	}
	return amount, true
}

// Deposit credits an account
// @Summary Deposit funds
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param amount body models.AmountRequest true "Amount"
// @Success 200 {object} models.Account
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /accounts/{id}/deposit [put]
func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	amount, ok := h.amountFromRequest(w, r)
	if !ok {
		return
	}
	account, err := h.ledger.Deposit(r.Context(), chi.URLParam(r, "id"), amount)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, account)
}

// Withdraw debits an account
// @Summary Withdraw funds
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param amount body models.AmountRequest true "Amount"
// @Success 200 {object} models.Account
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /accounts/{id}/withdraw [put]
func (h *AccountHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	amount, ok := h.amountFromRequest(w, r)
	if !ok {
		return
	}
	account, err := h.ledger.Withdraw(r.Context(), chi.URLParam(r, "id"), amount)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, account)
}

// Transfer moves funds between two accounts
// @Summary Transfer funds
// @Tags accounts
// @Accept json
// @Produce json
// @Param transfer body models.TransferRequest true "Transfer details"
// @Success 200 {object} map[string]string
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /accounts/transfer [post]
func (h *AccountHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req models.TransferRequest
	if err := decodeJSON(w, r, &req); err != nil {
		services.SendErrorResponse(w, "INVALID_REQUEST", "Invalid request body", http.StatusBadRequest, nil)
		return
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "INVALID_REQUEST", "Validation failed", http.StatusBadRequest, err)
		return
	}
	amount, err := money.Parse(req.Amount)
	if err != nil {
		services.SendErrorResponse(w, "INVALID_AMOUNT", err.Error(), http.StatusBadRequest, nil)
		return
	}

	if err := h.ledger.Transfer(r.Context(), req.FromAccountID, req.ToAccountID, amount); err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]string{"status": "transfer successful"})
}

// DeleteAccount removes a zero-balance account
// @Summary Delete account
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Router /accounts/{id} [delete]
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.ledger.DeleteAccount(r.Context(), chi.URLParam(r, "id")); err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]string{"status": "account deleted"})
}

// ListAccounts returns a page of accounts
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Param page query int false "Page number (default 0)"
// @Param size query int false "Page size (default 20, max 100)"
// @Param sortBy query string false "Sort key: id, holderName, balance, createdAt"
// @Param sortDir query string false "Sort direction: asc or desc"
// @Success 200 {object} models.PageResponse[models.Account]
// @Failure 400 {object} services.ErrorResponse
// @Router /accounts [get]
func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	page := models.PageRequest{
		Page:    queryInt(r, "page", 0),
		Size:    queryInt(r, "size", 20),
		SortBy:  r.URL.Query().Get("sortBy"),
		SortDir: r.URL.Query().Get("sortDir"),
	}

	result, err := h.ledger.ListAccounts(r.Context(), page)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, result)
}

// ListTransactions returns a page of an account's ledger entries
// @Summary List account transactions
// @Description Ledger entries for one account, most recent first
// @Tags transactions
// @Produce json
// @Param id path string true "Account ID"
// @Param page query int false "Page number (default 0)"
// @Param size query int false "Page size (default 20, max 100)"
// @Success 200 {object} models.PageResponse[models.TransactionEntry]
// @Failure 404 {object} services.ErrorResponse
// @Router /accounts/{id}/transactions [get]
func (h *AccountHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	result, err := h.ledger.ListTransactions(r.Context(), chi.URLParam(r, "id"),
		queryInt(r, "page", 0), queryInt(r, "size", 20))
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, result)
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return -1 // fails page validation downstream
	}
	return value
}
