package alert

import "context"

// UseCase posts operator alerts to Discord. Both calls block on the webhook,
// so the realtime usecase runs them in the background.
type UseCase interface {
	// DispatchDecision reports a credit decision relayed from the scoring service.
	DispatchDecision(ctx context.Context, input DecisionAlertInput) error
	// DispatchLoanStatus reports a loan status change pushed to a borrower.
	DispatchLoanStatus(ctx context.Context, input LoanStatusAlertInput) error
}
