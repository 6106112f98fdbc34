package datatable

import "strings"

// Direction describes the order in which a column is sorted.
type Direction string

const (
	// Ascending sorts from the lowest value to the highest.
	Ascending Direction = "ascending"

	// Descending sorts from the highest value to the lowest.
	Descending Direction = "descending"
)

// ParseDirection reads a direction sent by a client. Anything that is not
// recognizably descending sorts ascending.
func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "descending", "desc":
		return Descending
	default:
		return Ascending
	}
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// Indicator returns the sort indicator shown next to a column header.
func (d Direction) Indicator() Indicator {
	if d == Descending {
		return IndicatorDown
	}
	return IndicatorUp
}

// Indicator names the icon the presentation layer draws for a direction.
type Indicator string

const (
	IndicatorUp   Indicator = "arrowup"
	IndicatorDown Indicator = "arrowdown"
)
