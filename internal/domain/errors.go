package domain

import "fmt"

// NotAvailableError reports that the archive has not yet published data for the
// requested key. Recoverable by picking a different date or channel; never
// retried automatically.
type NotAvailableError struct {
	Channel string
	Date    string
	Reason  string
}

func (e *NotAvailableError) Error() string {
	msg := "no data for " + e.Channel
	if e.Date != "" {
		msg += " on " + e.Date
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// ProviderError marks a failure of the embedding or summarization collaborator
// after the orchestrator exhausted its retries.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
