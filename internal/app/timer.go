package app

import "time"

// Timer runs jobs after a delay or on a fixed interval. Cancel functions
// are idempotent.
type Timer interface {
	Every(interval time.Duration, job func()) (cancel func())
	After(delay time.Duration, job func()) (cancel func())
}
