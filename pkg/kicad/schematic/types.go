// Package schematic builds the symbol registry for a KiCad project: it
// discovers every schematic document under a project root, parses each one,
// and extracts placed symbol instances with their property bags.
package schematic

// SchematicExt is the file extension of KiCad schematic documents.
const SchematicExt = ".kicad_sch"

// SymbolInstance is one placed component in one schematic document.
type SymbolInstance struct {
	LibID      string            // library identifier, e.g. "Device:R"
	UUID       string            // instance identifier, unique per design
	Properties map[string]string // Reference, Value, Footprint, user fields...
	SourceFile string            // document the instance was found in
}

// Reference returns the instance's reference designator, or "".
func (s *SymbolInstance) Reference() string {
	return s.Properties["Reference"]
}

// Document is one parsed schematic file: its symbol instances plus the
// child-sheet files it references.
type Document struct {
	Path       string
	Symbols    []SymbolInstance
	SheetFiles []string // paths referenced by (sheet ...) forms, as written
}

// Registry is the flat symbol index over a whole hierarchical design.
// It is built fresh per query and never mutated afterwards.
type Registry struct {
	Instances []SymbolInstance
	Files     []string // documents visited, in discovery order

	byRef map[string][]int // reference -> indexes into Instances
}

// References returns every reference designator in the registry,
// duplicates included, in document order.
func (r *Registry) References() []string {
	refs := make([]string, 0, len(r.Instances))
	for i := range r.Instances {
		refs = append(refs, r.Instances[i].Reference())
	}
	return refs
}

// FindByReference returns the unique instance carrying the reference.
// A reference held by more than one instance is a data-quality defect and
// is reported, never silently collapsed to one of the instances.
func (r *Registry) FindByReference(ref string) (*SymbolInstance, error) {
	idxs := r.byRef[ref]
	switch len(idxs) {
	case 0:
		return nil, &NotFoundError{Reference: ref}
	case 1:
		return &r.Instances[idxs[0]], nil
	default:
		dup := &DuplicateReferenceError{Reference: ref}
		for _, i := range idxs {
			dup.Files = append(dup.Files, r.Instances[i].SourceFile)
		}
		return nil, dup
	}
}

// DumpProperties flattens an instance into the component-properties query
// result: identity fields merged with every schematic property.
func (r *Registry) DumpProperties(inst *SymbolInstance) map[string]string {
	out := make(map[string]string, len(inst.Properties)+3)
	for k, v := range inst.Properties {
		out[k] = v
	}
	out["lib_id"] = inst.LibID
	out["uuid"] = inst.UUID
	out["source_file"] = inst.SourceFile
	return out
}
