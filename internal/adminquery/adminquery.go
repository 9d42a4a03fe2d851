// Package adminquery builds the filtered, paginated SQL used by admin list
// endpoints. Filters are optional and combine with AND; statements carry no
// sqlinline marker and are logged by the runner as adhoc.
package adminquery

import (
	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Page bounds a list query. Zero values fall back to the defaults.
type Page struct {
	Limit  uint64
	Offset uint64
}

func (p Page) limit() uint64 {
	if p.Limit == 0 || p.Limit > 200 {
		return 50
	}
	return p.Limit
}

// OrderFilter selects translation requests for the admin order list.
type OrderFilter struct {
	Status   string
	Priority string
	UserID   string
	Page     Page
}

// Orders builds the admin order listing query.
func Orders(f OrderFilter) (string, []any, error) {
	q := psql.Select(
		"id", "user_id", "file_name", "file_format", "file_size",
		"word_count", "char_count", "image_count", "subject", "source_lang",
		"target_langs", "workflow", "credits_required", "total_cost",
		"status", "priority", "due_date", "completion", "assignee_id",
		"created_at", "updated_at",
	).From("translation_requests")
	if f.Status != "" {
		q = q.Where(sq.Eq{"status": f.Status})
	}
	if f.Priority != "" {
		q = q.Where(sq.Eq{"priority": f.Priority})
	}
	if f.UserID != "" {
		q = q.Where(sq.Eq{"user_id": f.UserID})
	}
	return q.OrderBy("created_at DESC").
		Limit(f.Page.limit()).
		Offset(f.Page.Offset).
		ToSql()
}

// UserFilter selects users for the admin user list.
type UserFilter struct {
	AccountID string
	TeamID    string
	Role      string
	Page      Page
}

// Users builds the admin user listing query.
func Users(f UserFilter) (string, []any, error) {
	q := psql.Select(
		"id", "account_id", "team_id", "email", "name", "role", "locale",
		"preferred_languages", "email_verified", "totp_enabled",
		"created_at", "updated_at",
	).From("users")
	if f.AccountID != "" {
		q = q.Where(sq.Eq{"account_id": f.AccountID})
	}
	if f.TeamID != "" {
		q = q.Where(sq.Eq{"team_id": f.TeamID})
	}
	if f.Role != "" {
		q = q.Where(sq.Eq{"role": f.Role})
	}
	return q.OrderBy("created_at DESC").
		Limit(f.Page.limit()).
		Offset(f.Page.Offset).
		ToSql()
}

// TransactionFilter selects ledger rows for the admin transaction list.
type TransactionFilter struct {
	AccountID string
	TeamID    string
	Type      string
	Page      Page
}

// Transactions builds the credit-transaction listing query.
func Transactions(f TransactionFilter) (string, []any, error) {
	q := psql.Select(
		"id", "account_id", "team_id", "user_id", "amount", "tx_type",
		"description", "created_at",
	).From("credit_transactions")
	if f.AccountID != "" {
		q = q.Where(sq.Eq{"account_id": f.AccountID})
	}
	if f.TeamID != "" {
		q = q.Where(sq.Eq{"team_id": f.TeamID})
	}
	if f.Type != "" {
		q = q.Where(sq.Eq{"tx_type": f.Type})
	}
	return q.OrderBy("created_at DESC").
		Limit(f.Page.limit()).
		Offset(f.Page.Offset).
		ToSql()
}
