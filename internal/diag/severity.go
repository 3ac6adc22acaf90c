package diag

// Severity ranks a diagnostic: info, warning, error.
// Layout analysis never aborts on a warning; errors are reserved for
// conditions that make the rest of a file unusable.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
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
