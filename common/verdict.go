package common

// FailureKind identifies the closed set of reasons a diagnostic run can fail
type FailureKind int

const (
	// FailureNone means there is no failure to report
	FailureNone FailureKind = iota
	// FailureStoreNotFound means the cache file is absent
	FailureStoreNotFound
	// FailureConnection means the cache file exists but could not be opened
	FailureConnection
	// FailureSchemaMissing means the cache opened but lacks the observed table
	FailureSchemaMissing
	// FailureQuery means one of the diagnostic or polling queries failed
	FailureQuery
)

// String returns the printable name of the failure kind
func (kind FailureKind) String() string {
	switch kind {
	case FailureNone:
		return "none"
	case FailureStoreNotFound:
		return "store not found"
	case FailureConnection:
		return "connection error"
	case FailureSchemaMissing:
		return "schema missing"
	case FailureQuery:
		return "query error"
	default:
		return "unknown"
	}
}

// Verdict is the outcome of a diagnostic check sequence. Expected conditions travel as
// data through this struct instead of as errors between components.
type Verdict struct {
	Success bool
	Warning bool
	Kind    FailureKind
	Detail  string
}

// SuccessVerdict returns a fully successful verdict
func SuccessVerdict() Verdict {
	return Verdict{
		Success: true,
		Kind:    FailureNone,
	}
}

// WarningVerdict returns a successful verdict carrying a warning detail
func WarningVerdict(detail string) Verdict {
	return Verdict{
		Success: true,
		Warning: true,
		Kind:    FailureNone,
		Detail:  detail,
	}
}

// FailureVerdict returns a failed verdict with the provided kind and detail
func FailureVerdict(kind FailureKind, detail string) Verdict {
	return Verdict{
		Success: false,
		Kind:    kind,
		Detail:  detail,
	}
}
