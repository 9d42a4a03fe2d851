package domain

import "errors"

var (
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrTeamHasMembers      = errors.New("team has assigned users")
	ErrInvalidTransition   = errors.New("invalid status transition")
)
