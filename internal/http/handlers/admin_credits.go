package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"translationportal/internal/adminquery"
	"translationportal/internal/domain"
	"translationportal/internal/pricing"
	"translationportal/internal/sqlinline"
)

func (a *App) AdminAccountsList(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	rows, err := a.SQL.Query(r.Context(), sqlinline.QListAccounts, limit, offset)
	if err != nil {
		a.Logger.Error().Err(err).Msg("account list failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list accounts")
		return
	}
	defer rows.Close()
	accounts := []accountDTO{}
	for rows.Next() {
		var acct accountDTO
		if err := rows.Scan(&acct.ID, &acct.Name, &acct.CreditBalance, &acct.Plan, &acct.PlanStatus,
			&acct.CreatedAt, &acct.UpdatedAt, &acct.UserCount); err != nil {
			a.Logger.Error().Err(err).Msg("account list scan failed")
			a.error(w, http.StatusInternalServerError, "internal", "failed to list accounts")
			return
		}
		accounts = append(accounts, acct)
	}
	if err := rows.Err(); err != nil {
		a.Logger.Error().Err(err).Msg("account list rows failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list accounts")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"accounts": accounts})
}

func (a *App) AdminAccountsGet(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")
	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectAccount, accountID)
	var acct accountDTO
	if err := row.Scan(&acct.ID, &acct.Name, &acct.CreditBalance, &acct.Plan, &acct.PlanStatus,
		&acct.CreatedAt, &acct.UpdatedAt); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "account not found")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"account":       acct,
		"balance_value": pricing.FormatCredits(acct.CreditBalance),
	})
}

type accountCreditRequest struct {
	Amount      json.Number `json:"amount"`
	Description string      `json:"description"`
}

// AdminAccountsAddCredits appends an admin_adjustment ledger row and moves
// the account balance in one statement.
func (a *App) AdminAccountsAddCredits(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")
	var req accountCreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	amount, err := creditAmount(req.Amount)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	description := req.Description
	if description == "" {
		description = "admin credit adjustment"
	}

	row := a.SQL.QueryRow(r.Context(), sqlinline.QAddAccountCredits,
		accountID, a.currentUserID(r), amount, string(domain.CreditAdminAdjustment), description)
	var balance int64
	if err := row.Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			a.error(w, http.StatusNotFound, "not_found", "account not found")
			return
		}
		a.Logger.Error().Err(err).Msg("credit adjustment failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to adjust credits")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"account_id": accountID, "credit_balance": balance})
}

func (a *App) AdminAccountTransactions(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")
	limit, offset := pagination(r)
	rows, err := a.SQL.Query(r.Context(), sqlinline.QListAccountTransactions, accountID, limit, offset)
	if err != nil {
		a.Logger.Error().Err(err).Msg("transaction list failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list transactions")
		return
	}
	txs, err := collectTransactionDTOs(rows)
	if err != nil {
		a.Logger.Error().Err(err).Msg("transaction list scan failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list transactions")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"transactions": txs})
}

// AdminTransactionsList is the cross-account ledger view with optional
// account_id, team_id and type filters.
func (a *App) AdminTransactionsList(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	q := r.URL.Query()
	sqlText, args, err := adminquery.Transactions(adminquery.TransactionFilter{
		AccountID: q.Get("account_id"),
		TeamID:    q.Get("team_id"),
		Type:      q.Get("type"),
		Page:      adminquery.Page{Limit: uint64(limit), Offset: uint64(offset)},
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("transaction query build failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list transactions")
		return
	}
	rows, err := a.SQL.Query(r.Context(), sqlText, args...)
	if err != nil {
		a.Logger.Error().Err(err).Msg("transaction list failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list transactions")
		return
	}
	txs, err := collectTransactionDTOs(rows)
	if err != nil {
		a.Logger.Error().Err(err).Msg("transaction list scan failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to list transactions")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"transactions": txs})
}

// creditAmount validates a ledger top-up amount: it must be a positive
// integer. Debits only happen through order submission, which carries its own
// balance guard. json.Number keeps fractional inputs distinguishable from
// integers.
func creditAmount(n json.Number) (int64, error) {
	if n.String() == "" {
		return 0, fmt.Errorf("amount is required")
	}
	amount, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("amount must be a whole number of credits")
	}
	if amount <= 0 {
		return 0, fmt.Errorf("amount must be a positive number of credits")
	}
	return amount, nil
}
