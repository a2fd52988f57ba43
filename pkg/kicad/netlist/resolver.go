package netlist

import (
	"sort"
	"strconv"
)

// Resolver answers connectivity queries over one raw netlist. It is
// built fresh per invocation and read-only afterwards.
type Resolver struct {
	assignments []PinAssignment
	netNames    []string // distinct nets, first-appearance order
}

// NewResolver indexes a tuple stream for querying.
func NewResolver(assignments []PinAssignment) *Resolver {
	r := &Resolver{assignments: assignments}
	seen := make(map[string]bool)
	for _, a := range assignments {
		if !seen[a.Net] {
			seen[a.Net] = true
			r.netNames = append(r.netNames, a.Net)
		}
	}
	return r
}

// NetNames returns every distinct net name in the netlist, in first
// appearance order.
func (r *Resolver) NetNames() []string {
	return r.netNames
}

// PinsForReference returns every pin of one component with the net each
// pin resolves to, sorted by pin number under the mixed-key order.
func (r *Resolver) PinsForReference(ref string) ([]PinRecord, error) {
	var pins []PinRecord
	for _, a := range r.assignments {
		if a.Reference == ref {
			pins = append(pins, PinRecord{
				PinNumber: a.PinNumber,
				PinName:   a.PinName,
				Net:       a.Net,
			})
		}
	}
	if len(pins) == 0 {
		return nil, &ComponentNotFoundError{Reference: ref}
	}

	sort.SliceStable(pins, func(i, j int) bool {
		return pinNumberLess(pins[i].PinNumber, pins[j].PinNumber)
	})
	return pins, nil
}

// ComponentsForNet resolves a net query through MatchNets and returns the
// members of the single matching net, ordered by reference then pin
// number. Zero matches fail with NetNotFoundError; several matches fail
// with AmbiguousNetError carrying the full candidate list.
func (r *Resolver) ComponentsForNet(query string) (string, []NetMember, error) {
	candidates := MatchNets(query, r.netNames)
	switch len(candidates) {
	case 0:
		return "", nil, &NetNotFoundError{Query: query}
	case 1:
		// fall through
	default:
		return "", nil, &AmbiguousNetError{Query: query, Matches: candidates}
	}

	net := candidates[0]
	var members []NetMember
	for _, a := range r.assignments {
		if a.Net == net {
			members = append(members, NetMember{
				Reference: a.Reference,
				PinNumber: a.PinNumber,
				PinName:   a.PinName,
			})
		}
	}

	sort.SliceStable(members, func(i, j int) bool {
		if members[i].Reference != members[j].Reference {
			return members[i].Reference < members[j].Reference
		}
		return pinNumberLess(members[i].PinNumber, members[j].PinNumber)
	})
	return net, members, nil
}

// pinNumberLess orders pin numbers the way packages number their pins:
// purely numeric pins ascend by value and precede alphanumeric pins
// (BGA-style A1, B2, ...), which order lexicographically.
func pinNumberLess(a, b string) bool {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	switch {
	case aerr == nil && berr == nil:
		return ai < bi
	case aerr == nil:
		return true
	case berr == nil:
		return false
	default:
		return a < b
	}
}
