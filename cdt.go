// Constrained Delaunay triangulation for Go.
//
// The package takes isolated points, obstacle polylines and free segments,
// and produces a triangulation of their convex hull in which every obstacle
// edge and segment appears as an edge, and every other edge is as Delaunay as
// the constraints allow.
//
// This package is a thin layer over the advanced package, which exposes the
// mesh itself for routing code.
package cdt

import (
	"github.com/microsoft/automatic-graph-layout-sub018/advanced"
	"github.com/paulmach/orb"
)

type (
	Triangulation = advanced.Triangulation
	Input         = advanced.Input
	SiteInput     = advanced.SiteInput
	Polyline      = advanced.Polyline
	Segment       = advanced.Segment
	Option        = advanced.Option

	SiteID     = advanced.SiteID
	EdgeID     = advanced.EdgeID
	TriangleID = advanced.TriangleID
)

var (
	WithLogger     = advanced.WithLogger
	WithValidation = advanced.WithValidation
	WithObserver   = advanced.WithObserver
)

// Triangulate builds and runs a triangulation over the input.
func Triangulate(input Input, opts ...Option) (result *Triangulation, err error) {
	defer func() {
		recoveredErr := advanced.HandleTriangulatePanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()
	tr, err := advanced.New(input, opts...)
	if err != nil {
		return nil, err
	}
	if err := tr.Run(); err != nil {
		return nil, err
	}
	return tr, nil
}

// TriangulatePoints is the plain Delaunay case: no constraints, and the
// triangles come back as counterclockwise point triples.
func TriangulatePoints(points ...orb.Point) ([][3]orb.Point, error) {
	input := Input{Sites: make([]SiteInput, len(points))}
	for i, p := range points {
		input.Sites[i] = SiteInput{Point: p}
	}
	tr, err := Triangulate(input)
	if err != nil {
		return nil, err
	}
	return tr.TrianglePoints(), nil
}
