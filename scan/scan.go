/*
Package scan maps between the order pixels are visited in when building the
run stream (encounter order) and their position in the row-major raster.

Every Order is a stateless bijection on [0, width*height) that depends only
on the raster size.
*/
package scan

import "fmt"

// Order is a pixel traversal, stored in bit 0 of the container flags
type Order uint8

const (
	// RowMajor visits each row left to right, top to bottom
	RowMajor Order = iota
	// ColumnMajor visits each column top to bottom, left to right
	ColumnMajor
)

// Orders lists every supported order, in tie-break preference
var Orders = []Order{RowMajor, ColumnMajor}

var names = map[Order]string{
	RowMajor:    "row",
	ColumnMajor: "column",
}

// Valid reports whether o is a supported order
func (o Order) Valid() bool {
	_, ok := names[o]
	return ok
}

func (o Order) String() string {
	if s, ok := names[o]; ok {
		return s
	}
	return fmt.Sprintf("Order(%d)", uint8(o))
}

// ParseOrder returns the Order named s
func ParseOrder(s string) (Order, error) {
	for o, name := range names {
		if name == s {
			return o, nil
		}
	}
	return 0, fmt.Errorf("scan: unknown order %q", s)
}

// Raster returns the row-major raster index of encounter index e
func (o Order) Raster(e, width, height int) int {
	if o == ColumnMajor {
		return e%height*width + e/height
	}
	return e
}

// Encounter returns the encounter index of row-major raster index r. It is
// the inverse of Raster.
func (o Order) Encounter(r, width, height int) int {
	if o == ColumnMajor {
		return r%width*height + r/width
	}
	return r
}
