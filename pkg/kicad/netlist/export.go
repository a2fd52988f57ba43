package netlist

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Exporter produces the raw netlist document for a schematic. The real
// implementation shells out to kicad-cli; tests substitute a fixture.
type Exporter interface {
	Export(ctx context.Context, schematicPath string) ([]byte, error)
}

// KicadCLI exports netlists through the kicad-cli tool, which performs
// the actual net tracing (junctions, labels, power-symbol merging) across
// the full sheet hierarchy.
type KicadCLI struct {
	Binary string // defaults to "kicad-cli"
}

func (k *KicadCLI) binary() string {
	if k.Binary != "" {
		return k.Binary
	}
	return "kicad-cli"
}

// Export runs `kicad-cli sch export netlist` into a temporary file and
// returns its content. Any failure of the tool is an *UnavailableError.
func (k *KicadCLI) Export(ctx context.Context, schematicPath string) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "kicadquery-netlist-")
	if err != nil {
		return nil, &UnavailableError{Reason: "failed to create temp dir", Err: err}
	}
	defer os.RemoveAll(tmpDir)

	outPath := filepath.Join(tmpDir, "export.net")
	cmd := exec.CommandContext(ctx, k.binary(),
		"sch", "export", "netlist",
		"--format", "kicadsexpr",
		"--output", outPath,
		schematicPath,
	)
	var stderr strings.Builder
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		reason := fmt.Sprintf("%s failed", k.binary())
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			reason = fmt.Sprintf("%s failed: %s", k.binary(), msg)
		}
		return nil, &UnavailableError{Reason: reason, Err: err}
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, &UnavailableError{Reason: "failed to read exported netlist", Err: err}
	}
	return data, nil
}

// Load exports and decodes the netlist for one schematic.
func Load(ctx context.Context, exporter Exporter, schematicPath string) (*Resolver, error) {
	data, err := exporter.Export(ctx, schematicPath)
	if err != nil {
		return nil, err
	}
	assignments, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return NewResolver(assignments), nil
}
