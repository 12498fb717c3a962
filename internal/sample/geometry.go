package sample

import (
	"errors"
	"math"

	"github.com/conduit-lang/typeinfo/runtime/typeinfo"
)

// Quadrant is the plane quadrant a point lies in.
type Quadrant int

const (
	Origin Quadrant = iota
	First
	Second
	Third
	Fourth
)

func (q Quadrant) String() string {
	switch q {
	case First:
		return "First"
	case Second:
		return "Second"
	case Third:
		return "Third"
	case Fourth:
		return "Fourth"
	default:
		return "Origin"
	}
}

// Point is a position in the plane.
type Point struct {
	X float64
	Y float64
}

// NewPoint returns the point (x, y).
func NewPoint(x, y float64) Point { return Point{X: x, Y: y} }

// Distance returns the Euclidean distance to o.
func (p Point) Distance(o Point) float64 { return math.Hypot(o.X-p.X, o.Y-p.Y) }

// Translate moves the point in place.
func (p *Point) Translate(dx, dy float64) {
	p.X += dx
	p.Y += dy
}

// Quadrant classifies the point. Points on an axis count as Origin.
func (p Point) Quadrant() Quadrant {
	switch {
	case p.X > 0 && p.Y > 0:
		return First
	case p.X < 0 && p.Y > 0:
		return Second
	case p.X < 0 && p.Y < 0:
		return Third
	case p.X > 0 && p.Y < 0:
		return Fourth
	}
	return Origin
}

// TypeTags implements typeinfo.Tagged.
func (p *Point) TypeTags() []typeinfo.TagRecord {
	return []typeinfo.TagRecord{typeinfo.NewTag("Serializable")}
}

// ErrDegenerate is returned for segments whose ends coincide.
var ErrDegenerate = errors.New("segment ends coincide")

// Segment joins two points.
type Segment struct {
	Start Point
	End   Point
	Label string `typeinfo:",readonly"`
}

// NewSegment returns the segment from a to b.
func NewSegment(a, b Point) (*Segment, error) {
	if a == b {
		return nil, ErrDegenerate
	}
	return &Segment{Start: a, End: b, Label: "segment"}, nil
}

// Length returns the distance between the ends.
func (s *Segment) Length() float64 { return s.Start.Distance(s.End) }

// Midpoint returns the point halfway between the ends.
func (s *Segment) Midpoint() Point {
	return Point{X: (s.Start.X + s.End.X) / 2, Y: (s.Start.Y + s.End.Y) / 2}
}

// Shape is implemented by closed figures.
type Shape interface {
	Area() float64
	Perimeter() float64
}
