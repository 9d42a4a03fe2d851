package domain

// CreditTransactionType enumerates ledger entry kinds. The owning account or
// team balance moves in the same SQL statement that inserts the ledger row,
// so the stored balance always equals the running ledger sum.
type CreditTransactionType string

const (
	CreditAdminAdjustment CreditTransactionType = "admin_adjustment"
	CreditOrderDebit      CreditTransactionType = "order_debit"
)
