package domain

// TokenPurpose enumerates single-use auth token kinds. Tokens are mailed to
// the user and stored hashed.
type TokenPurpose string

const (
	TokenEmailVerify   TokenPurpose = "email_verify"
	TokenPasswordReset TokenPurpose = "password_reset"
)
