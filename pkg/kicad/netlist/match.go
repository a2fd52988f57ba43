package netlist

import "strings"

// MatchNets selects candidate net names for a query in three strictly
// ordered tiers, short-circuiting at the first tier that produces at
// least one candidate:
//
//  1. exact, case-sensitive equality
//  2. case-insensitive equality
//  3. case-insensitive substring containment
//
// Net names are inconsistently cased and carry user-authored hierarchy
// prefixes, so a literal lookup often fails even when the intent is
// unambiguous. Whichever tier fires, its result is returned verbatim:
// relaxing strictness is allowed, picking between plausible nets is not.
func MatchNets(query string, nets []string) []string {
	var matches []string

	for _, net := range nets {
		if net == query {
			matches = append(matches, net)
		}
	}
	if len(matches) > 0 {
		return matches
	}

	lowerQuery := strings.ToLower(query)
	for _, net := range nets {
		if strings.ToLower(net) == lowerQuery {
			matches = append(matches, net)
		}
	}
	if len(matches) > 0 {
		return matches
	}

	for _, net := range nets {
		if strings.Contains(strings.ToLower(net), lowerQuery) {
			matches = append(matches, net)
		}
	}
	return matches
}
