package schematic

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const mainSheet = `(kicad_sch
	(version 20231120)
	(generator "eeschema")
	(uuid root-uuid)
	(lib_symbols
		(symbol "Device:R"
			(property "Reference" "R" (at 0 0 0))
			(property "Value" "R" (at 0 0 0))
			(symbol "R_0_1"
				(rectangle (start -1.016 -2.54) (end 1.016 2.54))
			)
		)
	)
	(symbol (lib_id "Device:R")
		(at 100 50 0)
		(uuid r124-uuid)
		(property "Reference" "R124" (at 100 45 0))
		(property "Value" "200R" (at 100 55 0))
		(property "Footprint" "Resistor_SMD:R_0603_1608Metric" (at 100 55 0))
		(property "LCSC Part" "C22935" (at 100 55 0))
	)
	(symbol (lib_id "power:GND")
		(at 120 80 0)
		(uuid pwr-uuid)
		(property "Reference" "#PWR01" (at 120 85 0))
		(property "Value" "GND" (at 120 85 0))
	)
	(sheet (at 200 50)
		(uuid sheet-uuid)
		(property "Sheetname" "MCU")
		(property "Sheetfile" "mcu.kicad_sch")
	)
)`

const mcuSheet = `(kicad_sch
	(version 20231120)
	(generator "eeschema")
	(uuid mcu-uuid)
	(symbol (lib_id "MCU_Espressif:ESP32-S3")
		(at 80 60 0)
		(uuid u101-uuid)
		(property "Reference" "U101" (at 80 55 0))
		(property "Value" "ESP32-S3" (at 80 65 0))
	)
)`

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("Failed to create %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return dir
}

func TestBuildRegistry(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"board.kicad_sch": mainSheet,
		"mcu.kicad_sch":   mcuSheet,
	})

	reg, err := BuildRegistry(dir)
	if err != nil {
		t.Fatalf("BuildRegistry failed: %v", err)
	}

	// R124, #PWR01 and U101; the lib_symbols definition must not register.
	if len(reg.Instances) != 3 {
		t.Fatalf("Expected 3 instances, got %d: %v", len(reg.Instances), reg.References())
	}

	r124, err := reg.FindByReference("R124")
	if err != nil {
		t.Fatalf("FindByReference(R124) failed: %v", err)
	}
	if r124.LibID != "Device:R" {
		t.Errorf("Expected lib_id 'Device:R', got %q", r124.LibID)
	}
	if r124.Properties["LCSC Part"] != "C22935" {
		t.Errorf("User-defined property missing: %v", r124.Properties)
	}
}

func TestDumpProperties(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"board.kicad_sch": mainSheet,
		"mcu.kicad_sch":   mcuSheet,
	})

	reg, err := BuildRegistry(dir)
	if err != nil {
		t.Fatalf("BuildRegistry failed: %v", err)
	}
	r124, err := reg.FindByReference("R124")
	if err != nil {
		t.Fatalf("FindByReference(R124) failed: %v", err)
	}

	props := reg.DumpProperties(r124)
	want := map[string]string{
		"Value":     "200R",
		"Footprint": "Resistor_SMD:R_0603_1608Metric",
		"lib_id":    "Device:R",
		"uuid":      "r124-uuid",
	}
	for k, v := range want {
		if props[k] != v {
			t.Errorf("Expected %s=%q, got %q", k, v, props[k])
		}
	}
	if props["source_file"] != filepath.Join(dir, "board.kicad_sch") {
		t.Errorf("Unexpected source_file %q", props["source_file"])
	}
}

func TestFindByReferenceNotFound(t *testing.T) {
	dir := writeProject(t, map[string]string{"board.kicad_sch": mainSheet})

	reg, err := BuildRegistry(dir)
	if err != nil {
		t.Fatalf("BuildRegistry failed: %v", err)
	}

	_, err = reg.FindByReference("C999")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Expected *NotFoundError, got %v", err)
	}
	if nf.Reference != "C999" {
		t.Errorf("Error names wrong reference: %q", nf.Reference)
	}
}

func TestDuplicateReference(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"a.kicad_sch": mcuSheet,
		"b.kicad_sch": mcuSheet,
	})

	reg, err := BuildRegistry(dir)
	if err != nil {
		t.Fatalf("BuildRegistry failed: %v", err)
	}

	_, err = reg.FindByReference("U101")
	var dup *DuplicateReferenceError
	if !errors.As(err, &dup) {
		t.Fatalf("Expected *DuplicateReferenceError, got %v", err)
	}
	if len(dup.Files) != 2 {
		t.Errorf("Expected 2 colliding files, got %v", dup.Files)
	}
}

func TestNoSchematicFiles(t *testing.T) {
	dir := t.TempDir()

	_, err := BuildRegistry(dir)
	var nsf *NoSchematicFilesError
	if !errors.As(err, &nsf) {
		t.Fatalf("Expected *NoSchematicFilesError, got %v", err)
	}
}

func TestDiscoverFilesRecursive(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"board.kicad_sch":         mainSheet,
		"sub/module.kicad_sch":    mcuSheet,
		"sub/notes.txt":           "not a schematic",
		"sub/deep/leaf.kicad_sch": mcuSheet,
	})

	files, err := DiscoverFiles(dir)
	if err != nil {
		t.Fatalf("DiscoverFiles failed: %v", err)
	}
	if len(files) != 3 {
		t.Errorf("Expected 3 schematic files, got %d: %v", len(files), files)
	}
}

func TestSheetFiles(t *testing.T) {
	doc, err := func() (*Document, error) {
		dir := writeProject(t, map[string]string{"board.kicad_sch": mainSheet})
		return ParseDocument(filepath.Join(dir, "board.kicad_sch"))
	}()
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}

	if len(doc.SheetFiles) != 1 || doc.SheetFiles[0] != "mcu.kicad_sch" {
		t.Errorf("Expected sheet files [mcu.kicad_sch], got %v", doc.SheetFiles)
	}
}

func TestRootSchematic(t *testing.T) {
	t.Run("single file", func(t *testing.T) {
		dir := writeProject(t, map[string]string{"anything.kicad_sch": mainSheet})
		root, err := RootSchematic(dir)
		if err != nil {
			t.Fatalf("RootSchematic failed: %v", err)
		}
		if filepath.Base(root) != "anything.kicad_sch" {
			t.Errorf("Expected anything.kicad_sch, got %s", root)
		}
	})

	t.Run("named after project file", func(t *testing.T) {
		dir := writeProject(t, map[string]string{
			"alpha.kicad_sch": mainSheet,
			"board.kicad_sch": mainSheet,
			"board.kicad_pro": "{}",
		})
		root, err := RootSchematic(dir)
		if err != nil {
			t.Fatalf("RootSchematic failed: %v", err)
		}
		if filepath.Base(root) != "board.kicad_sch" {
			t.Errorf("Expected board.kicad_sch, got %s", root)
		}
	})

	t.Run("alphabetical fallback", func(t *testing.T) {
		dir := writeProject(t, map[string]string{
			"zeta.kicad_sch":  mainSheet,
			"alpha.kicad_sch": mainSheet,
		})
		root, err := RootSchematic(dir)
		if err != nil {
			t.Fatalf("RootSchematic failed: %v", err)
		}
		if filepath.Base(root) != "alpha.kicad_sch" {
			t.Errorf("Expected alpha.kicad_sch, got %s", root)
		}
	})

	t.Run("empty project", func(t *testing.T) {
		if _, err := RootSchematic(t.TempDir()); err == nil {
			t.Error("Expected error for project without schematics")
		}
	})
}
