package diag

// Severity ranks a diagnostic. Errors make Bag.HasErrors true and
// fail the run; warnings and infos are reported but do not.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]string{
	SevInfo:    "INFO",
	SevWarning: "WARNING",
	SevError:   "ERROR",
}

// String returns the upper-case name used in rendered diagnostics.
func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}
