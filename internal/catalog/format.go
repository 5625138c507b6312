package catalog

import "strings"

// Format selects how a workflow is served.
type Format string

const (
	FormatRaw Format = "raw"
	FormatAPI Format = "api"
)

// ParseFormat normalizes a query value. The result may be invalid; callers
// check Valid after the target file has been found.
func ParseFormat(s string) Format {
	return Format(strings.ToLower(s))
}

func (f Format) Valid() bool {
	return f == FormatRaw || f == FormatAPI
}
