package alert

import "time"

// DecisionAlertInput is an automated credit decision pushed by the scoring service.
type DecisionAlertInput struct {
	RequestID  string
	Decision   string // e.g. "approve", "reject", "review"
	Message    string
	Source     string
	Recipients int
	DecidedAt  time.Time
}

// LoanStatusAlertInput is a loan status change sent to a borrower.
type LoanStatusAlertInput struct {
	UserID     string
	LoanID     string
	Status     string // e.g. "approved", "rejected", "disbursed"
	Message    string
	Delivered  bool
	OccurredAt time.Time
}
