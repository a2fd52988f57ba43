package schematic

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ProbeLab/kicadquery/pkg/kicad/sexp"
)

// DiscoverFiles finds every schematic document under projectDir,
// recursively, sorted by path. An empty result is a NoSchematicFilesError.
func DiscoverFiles(projectDir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(projectDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), SchematicExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan project directory: %w", err)
	}
	if len(files) == 0 {
		return nil, &NoSchematicFilesError{Dir: projectDir}
	}
	sort.Strings(files)
	return files, nil
}

// ParseDocument reads and parses one schematic file, extracting its
// symbol instances and sheet file references.
func ParseDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	root, err := sexp.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	doc := &Document{Path: path}
	doc.Symbols = extractSymbols(root, path)
	doc.SheetFiles = extractSheetFiles(root)
	return doc, nil
}

// extractSymbols collects every (symbol ...) form at any depth that is a
// placed instance. Library symbol definitions and graphics-only symbols
// are recognizable by what they lack: a definition has no lib_id child
// (its identity is a positional name) and a decorative symbol has no
// Reference property. Neither belongs in the registry.
func extractSymbols(root *sexp.Node, sourceFile string) []SymbolInstance {
	var instances []SymbolInstance

	for _, node := range sexp.FindAllNodesDeep(root, "symbol") {
		libID, ok := sexp.ChildValue(node, "lib_id")
		if !ok {
			continue
		}

		inst := SymbolInstance{
			LibID:      libID,
			Properties: make(map[string]string),
			SourceFile: sourceFile,
		}
		if uuid, ok := sexp.ChildValue(node, "uuid"); ok {
			inst.UUID = uuid
		}
		for _, prop := range sexp.FindAllNodes(node, "property") {
			key, err := sexp.GetString(prop, 1)
			if err != nil {
				continue
			}
			value, err := sexp.GetString(prop, 2)
			if err != nil {
				value = ""
			}
			inst.Properties[key] = value
		}

		if inst.Reference() == "" {
			continue
		}
		instances = append(instances, inst)
	}

	return instances
}

// extractSheetFiles collects the Sheetfile property of every (sheet ...)
// form. These feed the hierarchical traversal done by the netlist export
// collaborator; each physical document is still parsed exactly once here
// no matter how many sheet instances reference it.
func extractSheetFiles(root *sexp.Node) []string {
	var files []string
	seen := make(map[string]bool)

	for _, node := range sexp.FindAllNodesDeep(root, "sheet") {
		for _, prop := range sexp.FindAllNodes(node, "property") {
			key, err := sexp.GetString(prop, 1)
			if err != nil || key != "Sheetfile" {
				continue
			}
			value, err := sexp.GetString(prop, 2)
			if err != nil || value == "" || seen[value] {
				continue
			}
			seen[value] = true
			files = append(files, value)
		}
	}

	return files
}

// BuildRegistry discovers and parses every schematic document under
// projectDir and merges their symbols into one registry. Files parse
// independently, so the work runs one goroutine per document; the merge
// is in discovery order, keeping the registry deterministic.
func BuildRegistry(projectDir string) (*Registry, error) {
	files, err := DiscoverFiles(projectDir)
	if err != nil {
		return nil, err
	}

	docs := make([]*Document, len(files))
	var g errgroup.Group
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			doc, err := ParseDocument(path)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	reg := &Registry{
		Files: files,
		byRef: make(map[string][]int),
	}
	for _, doc := range docs {
		for _, inst := range doc.Symbols {
			reg.Instances = append(reg.Instances, inst)
			reg.byRef[inst.Reference()] = append(reg.byRef[inst.Reference()], len(reg.Instances)-1)
		}
	}
	return reg, nil
}

// RootSchematic picks the design's root document out of projectDir.
// A single document is the root by default; otherwise prefer the one
// named after the directory, then the one named after the project file,
// then the alphabetically first.
func RootSchematic(projectDir string) (string, error) {
	entries, err := os.ReadDir(projectDir)
	if err != nil {
		return "", fmt.Errorf("failed to read project directory: %w", err)
	}

	var schematics []string
	var projects []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch {
		case strings.HasSuffix(e.Name(), SchematicExt):
			schematics = append(schematics, e.Name())
		case strings.HasSuffix(e.Name(), ".kicad_pro"):
			projects = append(projects, e.Name())
		}
	}

	if len(schematics) == 0 {
		return "", &NoSchematicFilesError{Dir: projectDir}
	}
	if len(schematics) == 1 {
		return filepath.Join(projectDir, schematics[0]), nil
	}

	dirName := filepath.Base(filepath.Clean(projectDir))
	for _, name := range schematics {
		if strings.TrimSuffix(name, SchematicExt) == dirName {
			return filepath.Join(projectDir, name), nil
		}
	}

	sort.Strings(projects)
	for _, pro := range projects {
		want := strings.TrimSuffix(pro, ".kicad_pro") + SchematicExt
		for _, name := range schematics {
			if name == want {
				return filepath.Join(projectDir, name), nil
			}
		}
	}

	sort.Strings(schematics)
	return filepath.Join(projectDir, schematics[0]), nil
}
