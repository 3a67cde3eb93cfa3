// Package starmap reconstructs 3D positions on a star map plane from three
// surveyed corner positions.
//
// The map image is treated as a unit square: <0,0> at the top-left corner,
// <1,0> at the top-right, <0,1> at the bottom-left. Given the 3D positions
// those three corners correspond to, the package evaluates the affine map
// from the square to the plane through the corners, either at normalized
// coordinates or at (row, col) cells of an N×N grid laid over the square.
package starmap

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// ErrDegenerateFrame reports three collinear corner positions, which
	// span no plane.
	ErrDegenerateFrame = errors.New("starmap: corner positions are collinear")

	// ErrInvalidGridSize reports a non-positive grid resolution.
	ErrInvalidGridSize = errors.New("starmap: grid size must be positive")
)

// collinearEps bounds the sine of the angle between the two basis vectors
// below which the frame is treated as degenerate.
const collinearEps = 1e-9

// Point3 is a position in 3D space. Point3 is a plain value: methods return
// new values and never mutate the receiver.
type Point3 struct {
	X, Y, Z float64
}

// Add returns the componentwise sum p + q.
func (p Point3) Add(q Point3) Point3 {
	return Point3{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Sub returns the componentwise difference p - q.
func (p Point3) Sub(q Point3) Point3 {
	return Point3{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Scale returns p scaled by c.
func (p Point3) Scale(c float64) Point3 {
	return Point3{p.X * c, p.Y * c, p.Z * c}
}

// CornerFrame is the affine frame defined by three surveyed corners: the
// reference origin plus the corners the unit column and row directions map
// to. A frame is immutable once constructed, so any number of goroutines may
// evaluate it concurrently.
type CornerFrame struct {
	origin    Point3
	colCorner Point3
	rowCorner Point3
}

// NewCornerFrame builds a frame from the three surveyed corner positions.
// It returns ErrDegenerateFrame when the corners are collinear (or close
// enough to collinear that grid lookups would be numerically meaningless).
func NewCornerFrame(origin, colCorner, rowCorner Point3) (*CornerFrame, error) {
	cb := r3.Vec(colCorner.Sub(origin))
	rb := r3.Vec(rowCorner.Sub(origin))
	span := r3.Norm(cb) * r3.Norm(rb)
	if r3.Norm(r3.Cross(cb, rb)) <= collinearEps*math.Max(span, 1) {
		return nil, fmt.Errorf("%w: origin %v, col corner %v, row corner %v",
			ErrDegenerateFrame, origin, colCorner, rowCorner)
	}
	return &CornerFrame{origin: origin, colCorner: colCorner, rowCorner: rowCorner}, nil
}

// Origin returns the position the reference origin maps to.
func (f *CornerFrame) Origin() Point3 { return f.origin }

// ColCorner returns the position the unit column direction maps to.
func (f *CornerFrame) ColCorner() Point3 { return f.colCorner }

// RowCorner returns the position the unit row direction maps to.
func (f *CornerFrame) RowCorner() Point3 { return f.rowCorner }

// Basis returns the two direction vectors spanning the plane: colBasis from
// the origin to the column corner, rowBasis from the origin to the row
// corner. They are derived from the corners on every call rather than
// cached.
func (f *CornerFrame) Basis() (colBasis, rowBasis Point3) {
	return f.colCorner.Sub(f.origin), f.rowCorner.Sub(f.origin)
}

// MapUnit evaluates the frame at normalized coordinates (u, v): the result
// is origin + u*colBasis + v*rowBasis. Inputs outside [0,1] extrapolate
// linearly beyond the surveyed square; callers wanting strict bounds must
// clamp first. Non-finite inputs propagate into the result per the usual
// floating-point rules.
func (f *CornerFrame) MapUnit(u, v float64) Point3 {
	colBasis, rowBasis := f.Basis()
	return f.origin.Add(colBasis.Scale(u)).Add(rowBasis.Scale(v))
}

// MapGridCell evaluates the frame at grid coordinates over a size×size grid
// laid on the surveyed square. Row and col may be fractional: the center of
// the second row of a size-3 grid is row 1.5. Columns advance along
// colBasis and rows along rowBasis, so (row=0, col=0) is the origin,
// (row=size, col=0) the row corner and (row=0, col=size) the column corner.
func (f *CornerFrame) MapGridCell(size int, row, col float64) (Point3, error) {
	if size <= 0 {
		return Point3{}, fmt.Errorf("%w: %d", ErrInvalidGridSize, size)
	}
	n := float64(size)
	return f.MapUnit(col/n, row/n), nil
}

// CellCenter returns the position of the center of cell (row, col) of a
// size×size grid, with 0-based indices. It is shorthand for MapGridCell at
// row+0.5, col+0.5.
func (f *CornerFrame) CellCenter(size, row, col int) (Point3, error) {
	return f.MapGridCell(size, float64(row)+0.5, float64(col)+0.5)
}
