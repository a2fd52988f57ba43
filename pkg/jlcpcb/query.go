package jlcpcb

import (
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"
)

// SearchOptions describes one catalog search. At least one of Search,
// Category, Package or Manufacturer must be set.
type SearchOptions struct {
	Search       string // free-text terms
	Category     string // "First Category" column filter
	Package      string // "Package" column filter
	Manufacturer string // "Manufacturer" column filter
	InStock      bool   // only parts with stock > 0
	BasicOnly    bool   // only 'Basic' library type parts
	Limit        int    // maximum results; defaults to 20
}

// HasCriteria reports whether any search criterion is set.
func (o SearchOptions) HasCriteria() bool {
	return o.Search != "" || o.Category != "" || o.Package != "" || o.Manufacturer != ""
}

// Part is one catalog row in result form.
type Part struct {
	LCSC           string      `json:"lcsc"`
	FirstCategory  string      `json:"first_category"`
	SecondCategory string      `json:"second_category"`
	MfrPart        string      `json:"mfr_part"`
	Package        string      `json:"package"`
	SolderJoints   string      `json:"solder_joints"`
	Manufacturer   string      `json:"manufacturer"`
	LibraryType    string      `json:"library_type"`
	Description    string      `json:"description"`
	Datasheet      string      `json:"datasheet"`
	PriceTiers     []PriceTier `json:"price_tiers"`
	Stock          int         `json:"stock"`
}

// Result is the search response shape.
type Result struct {
	Results []Part `json:"results"`
	Count   int    `json:"count"`
}

var fts5Special = regexp.MustCompile(`["*\-+():^~]`)

// sanitizeTerm escapes FTS5 metacharacters by quoting the term and
// doubling any internal quotes.
func sanitizeTerm(term string) string {
	if fts5Special.MatchString(term) {
		return `"` + strings.ReplaceAll(term, `"`, `""`) + `"`
	}
	return term
}

// buildQuery renders the FTS5 SELECT for the given options. The catalog
// uses a trigram tokenizer, so MATCH only works for terms of three or
// more characters; shorter terms fall back to a LIKE on Description.
// Stock and Library Type are unindexed columns and go into plain WHERE
// clauses.
func buildQuery(o SearchOptions) (string, error) {
	if !o.HasCriteria() {
		return "", fmt.Errorf("at least one search criterion required")
	}

	columns := []string{
		`"LCSC Part"`, `"First Category"`, `"Second Category"`, `"MFR.Part"`,
		`"Package"`, `"Solder Joint"`, `"Manufacturer"`, `"Library Type"`,
		`"Description"`, `"Datasheet"`, `"Price"`, `"Stock"`,
	}

	var matchChunks, otherChunks []string
	for _, word := range strings.Fields(o.Search) {
		if len(word) >= 3 {
			matchChunks = append(matchChunks, fmt.Sprintf(`"%s"`, sanitizeTerm(word)))
		} else {
			otherChunks = append(otherChunks, fmt.Sprintf(`"Description" LIKE '%%%s%%'`, word))
		}
	}
	if o.Category != "" {
		matchChunks = append(matchChunks, fmt.Sprintf(`"First Category":"%s"`, sanitizeTerm(o.Category)))
	}
	if o.Package != "" {
		matchChunks = append(matchChunks, fmt.Sprintf(`"Package":"%s"`, sanitizeTerm(o.Package)))
	}
	if o.Manufacturer != "" {
		matchChunks = append(matchChunks, fmt.Sprintf(`"Manufacturer":"%s"`, sanitizeTerm(o.Manufacturer)))
	}
	if o.InStock {
		otherChunks = append(otherChunks, `CAST("Stock" AS INTEGER) > 0`)
	}
	if o.BasicOnly {
		otherChunks = append(otherChunks, `"Library Type" = 'Basic'`)
	}

	var where []string
	if len(matchChunks) > 0 {
		where = append(where, "parts MATCH '"+strings.Join(matchChunks, " AND ")+"'")
	}
	where = append(where, otherChunks...)

	limit := o.Limit
	if limit <= 0 {
		limit = 20
	}

	query := fmt.Sprintf("SELECT %s FROM parts WHERE %s LIMIT %d",
		strings.Join(columns, ", "), strings.Join(where, " AND "), limit)
	return query, nil
}

// Search runs one catalog query against the database at dbPath.
func Search(dbPath string, o SearchOptions) (*Result, error) {
	query, err := buildQuery(o)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open parts database: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("parts query failed: %w", err)
	}
	defer rows.Close()

	result := &Result{Results: []Part{}}
	for rows.Next() {
		var p Part
		var price, stock sql.NullString
		var lcsc, cat1, cat2, mfrPart, pkg, joints, mfr, libType, desc, sheet sql.NullString
		if err := rows.Scan(&lcsc, &cat1, &cat2, &mfrPart, &pkg, &joints,
			&mfr, &libType, &desc, &sheet, &price, &stock); err != nil {
			return nil, fmt.Errorf("failed to scan parts row: %w", err)
		}
		p.LCSC = lcsc.String
		p.FirstCategory = cat1.String
		p.SecondCategory = cat2.String
		p.MfrPart = mfrPart.String
		p.Package = pkg.String
		p.SolderJoints = joints.String
		p.Manufacturer = mfr.String
		p.LibraryType = libType.String
		p.Description = desc.String
		p.Datasheet = sheet.String
		p.PriceTiers = ParsePriceTiers(price.String)
		p.Stock = parseStock(stock.String)
		result.Results = append(result.Results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("parts query failed: %w", err)
	}

	result.Count = len(result.Results)
	return result, nil
}

// parseStock reads a stock cell as an integer, treating anything
// unparseable as zero.
func parseStock(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
