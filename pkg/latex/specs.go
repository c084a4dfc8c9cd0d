package latex

// Argument spec characters.
const (
	specMandatory = '{'
	specOptional  = '['
	specStar      = '*'
)

// DefaultMacroSpecs lists argument specs for common macros. Macros absent
// from the table take no arguments.
//
//nolint:gochecknoglobals // Read-only lookup table.
var DefaultMacroSpecs = map[string]string{
	"documentclass":   "[{",
	"usepackage":      "[{",
	"title":           "[{",
	"author":          "{",
	"date":            "{",
	"part":            "*[{",
	"chapter":         "*[{",
	"section":         "*[{",
	"subsection":      "*[{",
	"subsubsection":   "*[{",
	"paragraph":       "*[{",
	"caption":         "*[{",
	"label":           "{",
	"ref":             "{",
	"eqref":           "{",
	"pageref":         "{",
	"cite":            "*[[{",
	"footnote":        "[{",
	"emph":            "{",
	"textbf":          "{",
	"textit":          "{",
	"texttt":          "{",
	"textsc":          "{",
	"underline":       "{",
	"url":             "{",
	"href":            "{{",
	"includegraphics": "*[{",
	"input":           "{",
	"include":         "{",
	"item":            "[",
	"multicolumn":     "{{{",
	"multirow":        "{{{",
	"vspace":          "*{",
	"hspace":          "*{",
	"newcommand":      "*{[[{",
	"renewcommand":    "*{[[{",
	"frac":            "{{",
	"sqrt":            "[{",
}

// DefaultEnvironmentSpecs lists argument specs read after \begin{name}.
//
//nolint:gochecknoglobals // Read-only lookup table.
var DefaultEnvironmentSpecs = map[string]string{
	"table":           "[",
	"table*":          "[",
	"figure":          "[",
	"figure*":         "[",
	"tabular":         "[{",
	"tabular*":        "{[{",
	"tabularx":        "{[{",
	"longtable":       "[{",
	"minipage":        "[[[{",
	"array":           "[{",
	"thebibliography": "{",
}
