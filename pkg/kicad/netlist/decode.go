package netlist

import (
	"fmt"

	"github.com/ProbeLab/kicadquery/pkg/kicad/sexp"
)

// Decode turns an exported netlist document into the ordered tuple
// stream. The shape of interest is
//
//	(export ... (nets
//	  (net (code "1") (name "/SCL2")
//	    (node (ref "U101") (pin "31") (pinfunction "IO19") ...)
//	    ...)))
//
// Nets and their nodes are kept in document order; that order is the
// tie-break for all downstream sorting.
func Decode(data []byte) ([]PinAssignment, error) {
	root, err := sexp.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse netlist: %w", err)
	}

	netsSections := sexp.FindAllNodesDeep(root, "nets")
	if len(netsSections) == 0 {
		return nil, fmt.Errorf("netlist has no nets section")
	}

	var assignments []PinAssignment
	for _, net := range sexp.FindAllNodes(netsSections[0], "net") {
		name, _ := sexp.ChildValue(net, "name")
		for _, node := range sexp.FindAllNodes(net, "node") {
			ref, okRef := sexp.ChildValue(node, "ref")
			pin, okPin := sexp.ChildValue(node, "pin")
			if !okRef || !okPin {
				continue
			}
			pinName, _ := sexp.ChildValue(node, "pinfunction")
			assignments = append(assignments, PinAssignment{
				Reference: ref,
				PinNumber: pin,
				PinName:   pinName,
				Net:       name,
			})
		}
	}

	return assignments, nil
}
