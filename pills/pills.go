// Package pills holds the static contraceptive reference data: pill-type
// ingredient expansion, pack-day cycle arithmetic, and the side-effects
// dataset. Everything here is immutable configuration, safe for concurrent
// reads.
package pills

// Pill types accepted by the interaction checker.
const (
	Combined      = "combined"
	ProgestinOnly = "progestin_only"
)

var components = map[string][]string{
	Combined:      {"ethinyl estradiol", "levonorgestrel"},
	ProgestinOnly: {"norethindrone"},
}

var labels = map[string]string{
	Combined:      "Combined pill",
	ProgestinOnly: "Progestin-only pill",
}

// Lookup implements interfaces.PillLookup over the static tables.
type Lookup struct{}

// Ingredients expands a pill type into its canonical hormonal component
// names. Unknown types fall back to the combined pill set.
func (Lookup) Ingredients(pillType string) []string {
	if c, ok := components[pillType]; ok {
		return append([]string(nil), c...)
	}
	return append([]string(nil), components[Combined]...)
}

// Label returns the display label for a pill type.
func (Lookup) Label(pillType string) string {
	if l, ok := labels[pillType]; ok {
		return l
	}
	return labels[Combined]
}

// KnownType reports whether the pill type is one the checker accepts.
func KnownType(pillType string) bool {
	_, ok := components[pillType]
	return ok
}
