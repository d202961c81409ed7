package types

import "fmt"

// Axis selects one of the three cartesian axes.
type Axis uint8

const (
	XAxis Axis = iota
	YAxis
	ZAxis
)

// Get the next axis in X -> Y -> Z -> X order.
func (a Axis) Next() Axis {
	return (a + 1) % 3
}

// Get the unit vector along this axis.
func (a Axis) Unit() Vec3 {
	var v Vec3
	v[a] = 1
	return v
}

func (a Axis) String() string {
	switch a {
	case XAxis:
		return "x"
	case YAxis:
		return "y"
	case ZAxis:
		return "z"
	}
	return fmt.Sprintf("axis(%d)", uint8(a))
}
