package alert

import "errors"

// Input errors name the missing field so callers can log something useful.
var (
	ErrMissingRequestID = errors.New("alert: decision without request id")
	ErrMissingDecision  = errors.New("alert: decision without outcome")
	ErrMissingLoanID    = errors.New("alert: loan status without loan id")
	ErrMissingStatus    = errors.New("alert: loan status without status")
)

// ErrDispatchFailed wraps the webhook error when Discord rejects an alert.
var ErrDispatchFailed = errors.New("alert: discord dispatch failed")
