// Package probe defines the result vocabulary shared by the check and its
// output formats.
package probe

import (
	"fmt"
	"strings"
)

// Status represents the outcome of a check execution.
type Status string

const (
	StatusOK       Status = "ok"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
	StatusUnknown  Status = "unknown"
)

// ExitCode maps a status to the process exit status consumed by the
// monitoring supervisor. The mapping is a fixed external contract.
func (s Status) ExitCode() int {
	switch s {
	case StatusOK:
		return 0
	case StatusWarning:
		return 1
	case StatusCritical:
		return 2
	default:
		return 3
	}
}

// Label returns the uppercase severity word used in plugin output.
func (s Status) Label() string {
	return strings.ToUpper(string(s))
}

// Result is the standard output format for a check run.
type Result struct {
	Status  Status         `json:"status"`
	Message string         `json:"message"`
	Metrics map[string]any `json:"metrics,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

// PluginLine renders the result as a plugin output line. Non-OK results are
// prefixed with the severity word; OK results carry the bare message.
func (r *Result) PluginLine() string {
	if r.Status == StatusOK {
		return r.Message
	}
	return r.Status.Label() + ": " + r.Message
}

// Unknown builds an UNKNOWN result with a formatted message.
func Unknown(format string, args ...any) *Result {
	return &Result{
		Status:  StatusUnknown,
		Message: fmt.Sprintf(format, args...),
	}
}
