package dateutil

// Equinox selects the vernal or autumnal equinox.
type Equinox int

const (
	Vernal Equinox = iota
	Autumnal
)

type equinoxCoefficients struct {
	early    float64 // 1900-1979
	modern   float64 // 1980-2099
	fallback int
}

var equinoxTable = map[Equinox]equinoxCoefficients{
	Vernal:   {early: 20.8357, modern: 20.8431, fallback: 20},
	Autumnal: {early: 23.2588, modern: 23.2488, fallback: 23},
}

// EquinoxDay returns the day of month (March for Vernal, September for
// Autumnal) on which the equinox falls in Japan.
//
// This is the polynomial approximation published for 1900-2099, not an
// astronomical computation. Outside that range a fixed day is returned.
// An unknown kind returns 0, which is never a day of month.
func EquinoxDay(kind Equinox, year int) int {
	c, ok := equinoxTable[kind]
	if !ok {
		return 0
	}
	if year < 1900 || year > 2099 {
		return c.fallback
	}

	base, leap := c.modern, (year-1980)/4
	if year <= 1979 {
		// integer division truncates toward zero, as the published formula does
		base, leap = c.early, (year-1983)/4
	}

	return int(base + 0.242194*float64(year-1980) - float64(leap))
}
