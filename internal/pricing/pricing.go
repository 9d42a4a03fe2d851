// Package pricing computes the credit cost of a translation order from its
// character count, target-language count and chosen workflow tier.
package pricing

import "github.com/shopspring/decimal"

// Workflow enumerates the three fixed service tiers.
type Workflow string

const (
	WorkflowTier1 Workflow = "tier1" // AI translation only
	WorkflowTier2 Workflow = "tier2" // AI translation with automated QA
	WorkflowTier3 Workflow = "tier3" // AI translation with expert human review
)

// CurrencySymbol prefixes every formatted cost. 1000 credits = £1.00.
const CurrencySymbol = "£"

// creditUnitPrice is the price of a single credit: 0.001.
var creditUnitPrice = decimal.New(1, -3)

// Valid reports whether the workflow is one of the three tiers.
func (w Workflow) Valid() bool {
	switch w {
	case WorkflowTier1, WorkflowTier2, WorkflowTier3:
		return true
	}
	return false
}

// Rate returns the per-character credit rate for the tier. Unknown workflows
// rate zero; callers validate tiers at the boundary.
func (w Workflow) Rate() int64 {
	switch w {
	case WorkflowTier1:
		return 1
	case WorkflowTier2:
		return 2
	case WorkflowTier3:
		return 3
	}
	return 0
}

// Label returns the human-readable tier name.
func (w Workflow) Label() string {
	switch w {
	case WorkflowTier1:
		return "AI Translation"
	case WorkflowTier2:
		return "AI Translation + QA"
	case WorkflowTier3:
		return "AI Translation + Expert Review"
	}
	return string(w)
}

// Quote is the result of a cost estimate.
type Quote struct {
	TotalChars      int64  `json:"total_chars"`
	CreditsRequired int64  `json:"credits_required"`
	TotalCost       string `json:"total_cost"`
}

// Estimate computes the quote for translating charCount characters into
// langCount target languages under the given workflow. It is a pure
// function: degenerate inputs (zero characters, zero languages, unknown
// workflow) produce a zero quote rather than an error.
func Estimate(charCount int64, langCount int, workflow Workflow) Quote {
	if charCount < 0 {
		charCount = 0
	}
	if langCount < 0 {
		langCount = 0
	}
	totalChars := charCount * int64(langCount)
	credits := totalChars * workflow.Rate()
	return Quote{
		TotalChars:      totalChars,
		CreditsRequired: credits,
		TotalCost:       FormatCredits(credits),
	}
}

// FormatCredits converts a credit amount to its currency string at the fixed
// 0.001 rate, e.g. 2000 -> "£2.00".
func FormatCredits(credits int64) string {
	cost := decimal.NewFromInt(credits).Mul(creditUnitPrice)
	return CurrencySymbol + cost.StringFixed(2)
}
