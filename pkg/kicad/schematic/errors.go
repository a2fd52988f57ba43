package schematic

import (
	"fmt"
	"strings"
)

// NotFoundError reports a reference designator absent from the registry.
type NotFoundError struct {
	Reference string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("component %s not found in project", e.Reference)
}

// DuplicateReferenceError reports a reference designator held by more
// than one symbol instance across the design. Files lists the documents
// the colliding instances were found in.
type DuplicateReferenceError struct {
	Reference string
	Files     []string
}

func (e *DuplicateReferenceError) Error() string {
	return fmt.Sprintf("reference %s is not unique: found in %s",
		e.Reference, strings.Join(e.Files, ", "))
}

// NoSchematicFilesError reports a project directory containing no
// schematic documents at all.
type NoSchematicFilesError struct {
	Dir string
}

func (e *NoSchematicFilesError) Error() string {
	return fmt.Sprintf("no schematic files found in %s", e.Dir)
}
