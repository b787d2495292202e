package advanced

import (
	"github.com/microsoft/automatic-graph-layout-sub018/internal/geom"
	"github.com/pkg/errors"
)

// Validate checks the structure of the finished mesh: triangle winding, the
// agreement between edges and triangles, the presence of every constrained
// edge, the convexity of the perimeter and the local Delaunay property of
// every unconstrained edge. It returns the first violation found.
func (tr *Triangulation) Validate() error {
	if err := tr.ready(); err != nil {
		return err
	}
	for i := range tr.triangles {
		if err := tr.validateTriangle(TriangleID(i)); err != nil {
			return err
		}
	}
	for i := range tr.edges {
		if err := tr.validateEdge(EdgeID(i)); err != nil {
			return err
		}
	}
	if head, count := tr.perimeter(); head != nil {
		pe := head
		for i := 0; i < count; i++ {
			if geom.IsCCW(tr.point(pe.start), tr.point(pe.end), tr.point(pe.next.end)) {
				return errors.Errorf("perimeter is concave at site %d %v", pe.end, tr.point(pe.end))
			}
			pe = pe.next
		}
	}
	return nil
}

func (tr *Triangulation) validateTriangle(t TriangleID) error {
	tri := &tr.triangles[t]
	if !tri.alive {
		return nil
	}
	a, b, c := tr.point(tri.Sites[0]), tr.point(tri.Sites[1]), tr.point(tri.Sites[2])
	if geom.Cross(a, b, c) <= 0 {
		return errors.Errorf("triangle %d %v is not counterclockwise", t, tri.Sites)
	}
	for i, e := range tri.Edges {
		edge := &tr.edges[e]
		if !edge.alive {
			return errors.Errorf("triangle %d uses deleted edge %d", t, e)
		}
		if !edge.IsAdjacent(tri.Sites[i]) || !edge.IsAdjacent(tri.Sites.At(i+1)) {
			return errors.Errorf("edge %d of triangle %d does not join its sites %d and %d", e, t, tri.Sites[i], tri.Sites.At(i+1))
		}
		want := edge.CwTriangle
		if tri.Sites[i] == edge.Upper {
			want = edge.CcwTriangle
		}
		if want != t {
			return errors.Errorf("edge %d is not bound to triangle %d on its side", e, t)
		}
	}
	return nil
}

func (tr *Triangulation) validateEdge(e EdgeID) error {
	edge := &tr.edges[e]
	if !edge.alive {
		if edge.Constrained {
			return errors.Errorf("constrained edge %d was deleted", e)
		}
		return nil
	}
	if edge.Constrained && edge.TriangleCount() == 0 && tr.triangleCount > 0 {
		return errors.Errorf("constrained edge %d between %v and %v is not in the mesh", e, tr.point(edge.Upper), tr.point(edge.Lower))
	}
	if tr.isSentinel(edge.Upper) || tr.isSentinel(edge.Lower) {
		return errors.Errorf("edge %d touches a sentinel", e)
	}
	for _, t := range [2]TriangleID{edge.CcwTriangle, edge.CwTriangle} {
		if t != NoTriangle && (!tr.triangles[t].alive || !tr.triangles[t].Edges.Contains(e)) {
			return errors.Errorf("edge %d points at triangle %d which does not hold it", e, t)
		}
	}
	if edge.CcwTriangle != NoTriangle && edge.CcwTriangle == edge.CwTriangle {
		return errors.Errorf("edge %d has triangle %d on both sides", e, edge.CcwTriangle)
	}
	if tr.isIllegal(e) {
		return errors.Errorf("edge %d between %v and %v is not locally Delaunay", e, tr.point(edge.Upper), tr.point(edge.Lower))
	}
	return nil
}
