// Package zone models the 3x3 goal grid shared by every component.
//
// Zones are indexed 0..8 in row-major order with row 0 at the top of the
// goal: 0-2 upper band (left, center, right), 3-5 mid band, 6-8 low band.
package zone

import (
	"errors"
	"fmt"
)

// Count is the number of zones in the goal grid.
const Count = 9

// ErrInvalidZone is returned when a zone id falls outside the grid.
var ErrInvalidZone = errors.New("invalid zone")

// Index identifies one goal cell, 0-based.
type Index int

// Row is a horizontal band of the goal.
type Row int

// Column is a vertical band of the goal.
type Column int

// Rows.
const (
	Top Row = iota
	Middle
	Bottom
)

// Columns.
const (
	Left Column = iota
	Center
	Right
)

var names = [Count]string{
	"Upper Left", "Upper Center", "Upper Right",
	"Middle Left", "Middle Center", "Middle Right",
	"Lower Left", "Lower Center", "Lower Right",
}

var shortNames = [Count]string{
	"Up.L", "Up.C", "Up.R",
	"Mid.L", "Mid.C", "Mid.R",
	"Low.L", "Low.C", "Low.R",
}

// All returns the nine zone indices in row-major order.
func All() [Count]Index {
	var out [Count]Index
	for i := range out {
		out[i] = Index(i)
	}
	return out
}

// Valid reports whether i addresses a cell of the grid.
func (i Index) Valid() bool { return i >= 0 && i < Count }

// Row returns the horizontal band of the zone.
func (i Index) Row() Row { return Row(int(i) / 3) }

// Column returns the vertical band of the zone.
func (i Index) Column() Column { return Column(int(i) % 3) }

// OracleID converts to the 1-based id used by save-probability oracles.
func (i Index) OracleID() int { return int(i) + 1 }

// FromOracleID converts a 1-based oracle zone id to an Index.
func FromOracleID(id int) (Index, error) {
	if id < 1 || id > Count {
		return 0, fmt.Errorf("%w: oracle id %d", ErrInvalidZone, id)
	}
	return Index(id - 1), nil
}

// Name returns a human readable label such as "Lower Left".
func (i Index) Name() string {
	if !i.Valid() {
		return fmt.Sprintf("zone(%d)", int(i))
	}
	return names[i]
}

// Short returns an abbreviated label for tabular output.
func (i Index) Short() string {
	if !i.Valid() {
		return "?"
	}
	return shortNames[i]
}

func (i Index) String() string { return i.Name() }

func (r Row) String() string {
	switch r {
	case Top:
		return "high"
	case Middle:
		return "mid-height"
	case Bottom:
		return "low"
	default:
		return "unknown"
	}
}

func (c Column) String() string {
	switch c {
	case Left:
		return "left"
	case Right:
		return "right"
	case Center:
		return "central"
	default:
		return "unknown"
	}
}
