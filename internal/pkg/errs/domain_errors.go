package errs

import "errors"

// Closed error taxonomy for the campaign engine. Every failure that crosses a
// layer boundary is marked with exactly one of these and matched with
// errors.Is; handlers translate them to HTTP statuses, the delivery pipeline
// uses them to decide whether an attempt may consume retry budget.
var (
	// ErrConfig: missing provider credentials or webhook URL. Fatal for the
	// affected action, never retried, surfaced as a campaign-level alert.
	ErrConfig = errors.New("configuration error")

	// ErrDatabase: persistence failure. Retryable within the bounded budget.
	ErrDatabase = errors.New("database operation failed")

	// ErrDelivery: the provider rejected the message or timed out. Retryable
	// within the bounded budget, then the send is marked failed.
	ErrDelivery = errors.New("delivery failed")

	// ErrTemplate: required variable missing, or template missing/inactive.
	// A configuration fault of the template, not a delivery fault; does not
	// consume send retry budget.
	ErrTemplate = errors.New("template error")

	// ErrTokenInvalid: portal token expired, superseded, or unknown. Terminal
	// and user-visible; never retried.
	ErrTokenInvalid = errors.New("token invalid")

	// Scheduler errors
	ErrCampaignNotFound  = errors.New("campaign not found")
	ErrCampaignCancelled = errors.New("campaign cancelled")
	ErrJobNotFound       = errors.New("swms job not found")
)
