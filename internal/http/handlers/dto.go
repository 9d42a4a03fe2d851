package handlers

import (
	"time"

	"github.com/jackc/pgx/v5"
)

// The DTOs mirror the sqlinline select lists column for column; scan helpers
// keep the handlers free of repeated Scan boilerplate.

type userDTO struct {
	ID                 string    `json:"id"`
	AccountID          string    `json:"account_id"`
	TeamID             *string   `json:"team_id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	Role               string    `json:"role"`
	Locale             string    `json:"locale"`
	PreferredLanguages []string  `json:"preferred_languages"`
	EmailVerified      bool      `json:"email_verified"`
	TOTPEnabled        bool      `json:"totp_enabled"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func scanUserDTO(row pgx.Row) (userDTO, error) {
	var u userDTO
	err := row.Scan(&u.ID, &u.AccountID, &u.TeamID, &u.Email, &u.Name, &u.Role, &u.Locale,
		&u.PreferredLanguages, &u.EmailVerified, &u.TOTPEnabled, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

type orderDTO struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	FileName        string     `json:"file_name"`
	FileFormat      string     `json:"file_format"`
	FileSize        int64      `json:"file_size"`
	WordCount       int64      `json:"word_count"`
	CharCount       int64      `json:"char_count"`
	ImageCount      int        `json:"image_count"`
	Subject         string     `json:"subject"`
	SourceLanguage  string     `json:"source_language"`
	TargetLanguages []string   `json:"target_languages"`
	Workflow        string     `json:"workflow"`
	CreditsRequired int64      `json:"credits_required"`
	TotalCost       string     `json:"total_cost"`
	Status          string     `json:"status"`
	Priority        string     `json:"priority"`
	DueDate         *time.Time `json:"due_date"`
	Completion      int        `json:"completion"`
	AssigneeID      *string    `json:"assignee_id"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func scanOrderDTO(row pgx.Row) (orderDTO, error) {
	var o orderDTO
	err := row.Scan(&o.ID, &o.UserID, &o.FileName, &o.FileFormat, &o.FileSize,
		&o.WordCount, &o.CharCount, &o.ImageCount, &o.Subject, &o.SourceLanguage,
		&o.TargetLanguages, &o.Workflow, &o.CreditsRequired, &o.TotalCost,
		&o.Status, &o.Priority, &o.DueDate, &o.Completion, &o.AssigneeID,
		&o.CreatedAt, &o.UpdatedAt)
	return o, err
}

func collectOrderDTOs(rows pgx.Rows) ([]orderDTO, error) {
	defer rows.Close()
	orders := []orderDTO{}
	for rows.Next() {
		o, err := scanOrderDTO(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

type updateDTO struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"order_id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Note       string    `json:"note"`
	UpdateType string    `json:"update_type"`
	NewStatus  *string   `json:"new_status"`
	CreatedAt  time.Time `json:"created_at"`
}

type teamDTO struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	BillingEmail  string    `json:"billing_email"`
	CreditBalance int64     `json:"credit_balance"`
	Plan          string    `json:"plan"`
	PlanStatus    string    `json:"plan_status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	MemberCount   int       `json:"member_count"`
}

func scanTeamDTO(row pgx.Row) (teamDTO, error) {
	var t teamDTO
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.BillingEmail, &t.CreditBalance,
		&t.Plan, &t.PlanStatus, &t.CreatedAt, &t.UpdatedAt, &t.MemberCount)
	return t, err
}

type accountDTO struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	CreditBalance int64     `json:"credit_balance"`
	Plan          string    `json:"plan"`
	PlanStatus    string    `json:"plan_status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	UserCount     int       `json:"user_count,omitempty"`
}

type transactionDTO struct {
	ID          string    `json:"id"`
	AccountID   *string   `json:"account_id"`
	TeamID      *string   `json:"team_id"`
	UserID      *string   `json:"user_id"`
	Amount      int64     `json:"amount"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func collectTransactionDTOs(rows pgx.Rows) ([]transactionDTO, error) {
	defer rows.Close()
	txs := []transactionDTO{}
	for rows.Next() {
		var t transactionDTO
		if err := rows.Scan(&t.ID, &t.AccountID, &t.TeamID, &t.UserID, &t.Amount,
			&t.Type, &t.Description, &t.CreatedAt); err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

type apiKeyDTO struct {
	ID        string     `json:"id"`
	AccountID string     `json:"account_id"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"created_at"`
	RevokedAt *time.Time `json:"revoked_at"`
}
