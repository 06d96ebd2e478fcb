package props

// ReportFunc decides how a failed mutation is surfaced to the caller.
//
// The store never swallows a failure and never retries one: every failed
// mutator invokes its ReportFunc exactly once with a stable code and a
// message, and returns (or propagates) whatever the policy produces. Which
// policy applies is an environment property fixed at construction, not a
// per-call choice - hosts with a structured error collector use Collect,
// hosts without one use Fatal, and embedders may supply their own.
//
// An empty code is defaulted to DefaultCode.
type ReportFunc func(code ErrorCode, message string) error

// Collect is the default policy: the failure becomes a recoverable
// *StoreError returned from the mutator.
func Collect(code ErrorCode, message string) error {
	return NewStoreError(code, message)
}

// Fatal is the policy for hosts without a structured error collector: the
// failure panics with the same *StoreError that Collect would return.
func Fatal(code ErrorCode, message string) error {
	panic(NewStoreError(code, message))
}
