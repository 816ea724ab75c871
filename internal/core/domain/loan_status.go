package domain

// LoanStatus represents the stored lifecycle status of a loan.
type LoanStatus string

const (
	LoanStatusPending   LoanStatus = "pending"
	LoanStatusApproved  LoanStatus = "approved"
	LoanStatusRejected  LoanStatus = "rejected"
	LoanStatusActive    LoanStatus = "active"
	LoanStatusCompleted LoanStatus = "completed"
	LoanStatusDefaulted LoanStatus = "defaulted"
)

// LoanStatusOverdue is a display-only status for active loans past their due
// date. It is never stored.
const LoanStatusOverdue = "overdue"

// loanTransitions is the allowed transition table:
//
//	pending  -> approved | rejected
//	approved -> active
//	active   -> completed | defaulted
//
// rejected, completed and defaulted are terminal.
var loanTransitions = map[LoanStatus][]LoanStatus{
	LoanStatusPending:  {LoanStatusApproved, LoanStatusRejected},
	LoanStatusApproved: {LoanStatusActive},
	LoanStatusActive:   {LoanStatusCompleted, LoanStatusDefaulted},
}

// ParseLoanStatus validates a status string against the known set.
func ParseLoanStatus(s string) (LoanStatus, bool) {
	switch LoanStatus(s) {
	case LoanStatusPending, LoanStatusApproved, LoanStatusRejected,
		LoanStatusActive, LoanStatusCompleted, LoanStatusDefaulted:
		return LoanStatus(s), true
	}
	return "", false
}

// CanTransition reports whether a loan may move from one status to another.
// A same-status transition is allowed so that status updates are idempotent.
func CanTransition(from, to LoanStatus) bool {
	if from == to {
		return true
	}
	for _, next := range loanTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
