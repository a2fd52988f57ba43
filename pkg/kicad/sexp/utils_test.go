package sexp

import (
	"testing"
)

const utilsFixture = `(kicad_sch
	(version 20231120)
	(symbol (lib_id "Device:R")
		(at 100 50 0)
		(uuid sym-uuid-1)
		(property "Reference" "R1" (at 100 45 0))
		(property "Value" "10k" (at 100 55 0))
		(pin "1" (uuid pin-1) hide)
	)
	(sheet
		(property "Sheetname" "Power")
		(property "Sheetfile" "power.kicad_sch")
	)
)`

func TestFindNode(t *testing.T) {
	root := mustParse(t, utilsFixture)
	sch := root.Children[0]

	version, ok := FindNode(sch, "version")
	if !ok {
		t.Fatal("version node not found")
	}
	v, err := GetInt(version, 1)
	if err != nil || v != 20231120 {
		t.Errorf("Expected version 20231120, got %d (err %v)", v, err)
	}

	if _, ok := FindNode(sch, "missing"); ok {
		t.Error("FindNode matched a key that does not exist")
	}
}

func TestFindAllNodes(t *testing.T) {
	root := mustParse(t, utilsFixture)
	sch := root.Children[0]
	sym := sch.Children[2]

	props := FindAllNodes(sym, "property")
	if len(props) != 2 {
		t.Fatalf("Expected 2 direct property nodes, got %d", len(props))
	}

	// Direct search must not see the sheet's properties.
	key, _ := GetString(props[0], 1)
	if key != "Reference" {
		t.Errorf("Expected first property 'Reference', got %q", key)
	}
}

func TestFindAllNodesDeep(t *testing.T) {
	root := mustParse(t, utilsFixture)

	props := FindAllNodesDeep(root, "property")
	if len(props) != 4 {
		t.Fatalf("Expected 4 property nodes at any depth, got %d", len(props))
	}

	// Document order: symbol properties before sheet properties.
	first, _ := GetString(props[0], 1)
	last, _ := GetString(props[3], 1)
	if first != "Reference" || last != "Sheetfile" {
		t.Errorf("Deep search out of document order: first %q, last %q", first, last)
	}
}

func TestChildValue(t *testing.T) {
	root := mustParse(t, utilsFixture)
	sym := root.Children[0].Children[2]

	libID, ok := ChildValue(sym, "lib_id")
	if !ok || libID != "Device:R" {
		t.Errorf("Expected lib_id 'Device:R', got %q (found %v)", libID, ok)
	}

	if _, ok := ChildValue(sym, "footprint"); ok {
		t.Error("ChildValue reported a missing key as present")
	}
}

func TestHasSymbol(t *testing.T) {
	root := mustParse(t, utilsFixture)
	pin := root.Children[0].Children[2].Children[6]

	if pin.Name() != "pin" {
		t.Fatalf("Fixture changed: expected pin node, got %q", pin.Name())
	}
	if !HasSymbol(pin, "hide") {
		t.Error("Expected hide flag on pin")
	}
	if HasSymbol(pin, "shown") {
		t.Error("HasSymbol matched a flag that is not present")
	}
}

func TestGetNodeName(t *testing.T) {
	root := mustParse(t, `(wire (pts (xy 0 0)))`)
	name, err := GetNodeName(root.Children[0])
	if err != nil || name != "wire" {
		t.Errorf("Expected node name 'wire', got %q (err %v)", name, err)
	}

	if _, err := GetNodeName(root.Children[0].Children[0]); err == nil {
		t.Error("Expected error for atom node")
	}
}
