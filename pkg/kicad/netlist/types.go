// Package netlist resolves pin-to-net connectivity for a design. The raw
// netlist itself comes from an external net-tracing collaborator (kicad-cli
// netlist export); this package decodes its S-expression form into pin
// assignment tuples and answers pins-by-reference and components-by-net
// queries over them, with tiered net-name matching.
package netlist

// PinAssignment is one raw netlist tuple: one pin of one placed component
// and the net it traces to.
type PinAssignment struct {
	Reference string
	PinNumber string
	PinName   string // pin function name; may be empty
	Net       string
}

// PinRecord is one pin of a reference-indexed query result.
type PinRecord struct {
	PinNumber string `json:"pin_number"`
	PinName   string `json:"pin_name"`
	Net       string `json:"net"`
}

// NetMember is one pin of a net-indexed query result. The net name is
// implied by the query, so only the endpoint is carried.
type NetMember struct {
	Reference string `json:"reference"`
	PinNumber string `json:"pin_number"`
	PinName   string `json:"pin_name"`
}
