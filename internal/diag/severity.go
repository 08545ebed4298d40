package diag

// Severity ranks a diagnostic. The order is meaningful: comparisons like
// HasErrors use >=, so new levels must keep ascending gravity.
type Severity uint8

const (
	// SevInfo marks purely informational findings.
	SevInfo Severity = iota
	// SevWarning marks suspicious but accepted code.
	SevWarning
	// SevError marks findings that fail the check run.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
