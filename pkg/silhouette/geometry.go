package silhouette

import "math"

// Point represents a 2D point.
type Point struct {
	X, Y float64
}

// BBox represents an axis-aligned bounding box. X and Y are the minimum
// corner; silhouette coordinates follow the SVG convention (y grows down).
type BBox struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// NewBBox creates a bounding box from coordinates.
func NewBBox(x, y, width, height float64) BBox {
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// MinX returns the left edge X coordinate.
func (b BBox) MinX() float64 {
	return b.X
}

// MaxX returns the right edge X coordinate.
func (b BBox) MaxX() float64 {
	return b.X + b.Width
}

// MinY returns the minimum edge Y coordinate.
func (b BBox) MinY() float64 {
	return b.Y
}

// MaxY returns the maximum edge Y coordinate.
func (b BBox) MaxY() float64 {
	return b.Y + b.Height
}

// Center returns the center point.
func (b BBox) Center() Point {
	return Point{
		X: b.X + b.Width/2,
		Y: b.Y + b.Height/2,
	}
}

// Corners returns the four corner points of the box.
func (b BBox) Corners() [4]Point {
	return [4]Point{
		{X: b.MinX(), Y: b.MinY()},
		{X: b.MaxX(), Y: b.MinY()},
		{X: b.MaxX(), Y: b.MaxY()},
		{X: b.MinX(), Y: b.MaxY()},
	}
}

// AspectRatio returns width divided by height.
func (b BBox) AspectRatio() float64 {
	return b.Width / b.Height
}

// IsValid returns true if the bounding box has positive dimensions.
func (b BBox) IsValid() bool {
	return b.Width > 0 && b.Height > 0
}

// Matrix represents a 2D affine transformation matrix in column-major
// order {a, b, c, d, e, f}, mapping a point (x, y) to
// (a*x + c*y + e, b*x + d*y + f).
type Matrix [6]float64

// Identity returns an identity matrix.
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Transform applies the matrix transformation to a point.
func (m Matrix) Transform(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// Multiply composes two matrices. The result applies m first, then other.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		m[0]*other[0] + m[1]*other[2],
		m[0]*other[1] + m[1]*other[3],
		m[2]*other[0] + m[3]*other[2],
		m[2]*other[1] + m[3]*other[3],
		m[4]*other[0] + m[5]*other[2] + other[4],
		m[4]*other[1] + m[5]*other[3] + other[5],
	}
}

// Translate creates a translation matrix.
func Translate(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// Scale creates a scaling matrix.
func Scale(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// Rotation creates a rotation matrix (angle in radians). Positive angles
// rotate counterclockwise in y-up coordinates, which appears clockwise in
// the y-down silhouette space.
func Rotation(angle float64) Matrix {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Matrix{cos, sin, -sin, cos, 0, 0}
}

// RotateAbout creates a rotation matrix about the point (cx, cy).
func RotateAbout(angle, cx, cy float64) Matrix {
	return Translate(-cx, -cy).
		Multiply(Rotation(angle)).
		Multiply(Translate(cx, cy))
}

// ScaleAbout creates a scaling matrix about the point (cx, cy).
// Negative factors mirror across the corresponding axis through the point.
func ScaleAbout(sx, sy, cx, cy float64) Matrix {
	return Translate(-cx, -cy).
		Multiply(Scale(sx, sy)).
		Multiply(Translate(cx, cy))
}

// TransformBBox returns the axis-aligned envelope of the box under the
// transformation.
func (m Matrix) TransformBBox(b BBox) BBox {
	corners := b.Corners()
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		p := m.Transform(c)
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return BBox{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// IsIdentity returns true if the matrix is an identity matrix.
func (m Matrix) IsIdentity() bool {
	return m[0] == 1 && m[1] == 0 && m[2] == 0 && m[3] == 1 && m[4] == 0 && m[5] == 0
}
