package domain

import "fmt"

// OrderStatus enumerates the translation pipeline states.
type OrderStatus string

const (
	StatusPending               OrderStatus = "pending"
	StatusTranslationInProgress OrderStatus = "translation-in-progress"
	StatusLQAInProgress         OrderStatus = "lqa-in-progress"
	StatusHumanReviewerAssigned OrderStatus = "human-reviewer-assigned"
	StatusHumanReviewInProgress OrderStatus = "human-review-in-progress"
	StatusComplete              OrderStatus = "complete"
)

// statusRank orders the pipeline. Clients may only move forward along it.
var statusRank = map[OrderStatus]int{
	StatusPending:               0,
	StatusTranslationInProgress: 1,
	StatusLQAInProgress:         2,
	StatusHumanReviewerAssigned: 3,
	StatusHumanReviewInProgress: 4,
	StatusComplete:              5,
}

// Valid reports whether the status is one of the six pipeline values.
func (s OrderStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// Terminal reports whether the status completes the pipeline.
func (s OrderStatus) Terminal() bool {
	return s == StatusComplete
}

// CanTransition reports whether a caller may move an order from one status to
// another. Clients advance forward only (skipping stages is allowed); admins
// may set any valid status. The admin escape hatch is deliberate: operations
// staff need to rewind orders when a stage has to be redone.
func CanTransition(from, to OrderStatus, admin bool) bool {
	if !to.Valid() {
		return false
	}
	if admin {
		return true
	}
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	return statusRank[to] >= fromRank
}

// ValidateTransition is CanTransition with a descriptive error for the HTTP
// layer.
func ValidateTransition(from, to OrderStatus, admin bool) error {
	if !CanTransition(from, to, admin) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// OrderPriority enumerates scheduling priorities.
type OrderPriority string

const (
	PriorityLow    OrderPriority = "low"
	PriorityMedium OrderPriority = "medium"
	PriorityHigh   OrderPriority = "high"
	PriorityUrgent OrderPriority = "urgent"
)

// Valid reports whether the priority is a supported value.
func (p OrderPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}
