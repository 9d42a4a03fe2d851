package domain

// UpdateType enumerates kinds of project updates. A status_change update
// carries a new status and mutates the parent order in the same statement
// that records it.
type UpdateType string

const (
	UpdateNote         UpdateType = "note"
	UpdateStatusChange UpdateType = "status_change"
	UpdateMilestone    UpdateType = "milestone"
	UpdateIssue        UpdateType = "issue"
)

// Valid reports whether the update type is a supported value.
func (t UpdateType) Valid() bool {
	switch t {
	case UpdateNote, UpdateStatusChange, UpdateMilestone, UpdateIssue:
		return true
	}
	return false
}
