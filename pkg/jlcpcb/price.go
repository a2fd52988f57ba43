package jlcpcb

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// PriceTier is one quantity break of a part's price schedule. MaxQty is
// nil for open-ended tiers.
type PriceTier struct {
	MinQty    int     `json:"min_qty"`
	MaxQty    *int    `json:"max_qty"`
	UnitPrice float64 `json:"unit_price"`
}

// The catalog stores price schedules as comma-joined tier strings, e.g.
// "1-9:0.0234,10-29:0.0195,30-:0.0166". A tier is a quantity range and a
// unit price; the upper bound may be missing ("30-") or the range may be
// a bare quantity ("200:0.01").
var priceLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `\d+(?:\.\d+)?`},
	{Name: "Punct", Pattern: `[-:]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

type priceTierExpr struct {
	Min   int     `parser:"@Number"`
	Max   *int    `parser:"('-' @Number?)?"`
	Price float64 `parser:"':' @Number"`
}

var priceTierParser = participle.MustBuild[priceTierExpr](
	participle.Lexer(priceLexer),
	participle.Elide("Whitespace"),
)

// ParsePriceTiers parses a price schedule string into structured tiers.
// Malformed tiers are skipped; tier order is preserved. The tiers are
// reported as data only — quantity pricing is computed elsewhere.
func ParsePriceTiers(priceStr string) []PriceTier {
	var tiers []PriceTier
	for _, chunk := range strings.Split(priceStr, ",") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		expr, err := priceTierParser.ParseString("", chunk)
		if err != nil {
			continue
		}
		tiers = append(tiers, PriceTier{
			MinQty:    expr.Min,
			MaxQty:    expr.Max,
			UnitPrice: expr.Price,
		})
	}
	return tiers
}
