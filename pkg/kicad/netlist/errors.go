package netlist

import (
	"fmt"
	"strings"
)

// UnavailableError reports that the external netlist export step failed,
// as opposed to an in-core parse defect.
type UnavailableError struct {
	Reason string
	Err    error
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("netlist unavailable: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("netlist unavailable: %s", e.Reason)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// ComponentNotFoundError reports a reference designator with no pins in
// the raw netlist.
type ComponentNotFoundError struct {
	Reference string
}

func (e *ComponentNotFoundError) Error() string {
	return fmt.Sprintf("component %s not found in netlist", e.Reference)
}

// NetNotFoundError reports a net query that matched nothing at any tier.
type NetNotFoundError struct {
	Query string
}

func (e *NetNotFoundError) Error() string {
	return fmt.Sprintf("no net matching %q", e.Query)
}

// AmbiguousNetError reports a net query that matched more than one net.
// Matches carries every candidate so the caller can disambiguate; the
// resolver never guesses which one was meant.
type AmbiguousNetError struct {
	Query   string
	Matches []string
}

func (e *AmbiguousNetError) Error() string {
	return fmt.Sprintf("net query %q is ambiguous: matches %s",
		e.Query, strings.Join(e.Matches, ", "))
}
