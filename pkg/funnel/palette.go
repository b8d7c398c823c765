package funnel

// Palette maps a row index to a hex color. Charts use it to assign colors to
// rows that do not carry one. A Palette must be deterministic so two charts
// drawn from the same data produce identical colors.
type Palette func(index int) string

// defaultPalette is Paul Tol's qualitative color palette, designed for
// colorblind accessibility. See: https://personal.sron.nl/~pault/
var defaultPalette = []string{
	"#4477AA", // Blue
	"#EE6677", // Rose
	"#228833", // Green
	"#CCBB44", // Olive/Yellow
	"#66CCEE", // Cyan
	"#AA3377", // Purple
	"#BBBBBB", // Grey
	"#EE8866", // Orange
	"#44BB99", // Teal
	"#FFAABB", // Pink
}

// DefaultPalette cycles through a 10-color categorical palette keyed by row
// position.
func DefaultPalette(index int) string {
	return defaultPalette[index%len(defaultPalette)]
}
