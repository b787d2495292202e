package advanced

import (
	"github.com/microsoft/automatic-graph-layout-sub018/internal/geom"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

func (tr *Triangulation) ready() error {
	if tr.state != stateDone {
		return ErrNotRun
	}
	return nil
}

// Site returns the site behind a handle. The pointer is valid until the next
// mutation of the triangulation.
func (tr *Triangulation) Site(id SiteID) *Site {
	return &tr.sites[id]
}

func (tr *Triangulation) Edge(id EdgeID) *Edge {
	return &tr.edges[id]
}

func (tr *Triangulation) Triangle(id TriangleID) *Triangle {
	return &tr.triangles[id]
}

// Sites lists the real sites; the sentinels used by the sweep are left out.
func (tr *Triangulation) Sites() []SiteID {
	ids := make([]SiteID, tr.realSites)
	for i := range ids {
		ids[i] = SiteID(i)
	}
	return ids
}

func (tr *Triangulation) Edges() []EdgeID {
	var ids []EdgeID
	for i := range tr.edges {
		if tr.edges[i].alive {
			ids = append(ids, EdgeID(i))
		}
	}
	return ids
}

func (tr *Triangulation) Triangles() []TriangleID {
	ids := make([]TriangleID, 0, tr.triangleCount)
	for i := range tr.triangles {
		if tr.triangles[i].alive {
			ids = append(ids, TriangleID(i))
		}
	}
	return ids
}

// FindSite looks a site up by its exact coordinates.
func (tr *Triangulation) FindSite(p orb.Point) (SiteID, error) {
	if id, ok := tr.byPoint[p]; ok && int(id) < tr.realSites {
		return id, nil
	}
	return NoSite, errors.Wrapf(ErrSiteNotFound, "%v", p)
}

// RestoreCapacities resets the residual capacity of every unconstrained edge
// to its full capacity.
func (tr *Triangulation) RestoreCapacities() {
	for i := range tr.edges {
		if edge := &tr.edges[i]; edge.alive && !edge.Constrained {
			edge.ResidualCapacity = edge.Capacity
		}
	}
}

// SetInEdges fills Site.InEdges. Run already does this while finalizing, so
// after Run it costs nothing.
func (tr *Triangulation) SetInEdges() {
	tr.buildInEdges()
}

// ThreadFromSite follows the ray from a site toward target through the mesh
// and returns the edges it pierces, in order, skipping the ones whose two
// sites share an owner: those run along a single obstacle. Triangles carry no
// owner, so the test looks at the edge's end sites rather than at the
// triangles on either side. The walk stops in the triangle holding target or
// where the ray leaves the mesh.
func (tr *Triangulation) ThreadFromSite(from SiteID, target orb.Point) ([]EdgeID, error) {
	if err := tr.ready(); err != nil {
		return nil, err
	}
	if from < 0 || int(from) >= tr.realSites {
		return nil, errors.Wrapf(ErrSiteNotFound, "site handle %d", from)
	}
	tr.buildInEdges()

	var pierced []EdgeID
	origin := tr.point(from)
	vertex := from
	for guard := 0; guard <= len(tr.triangles)+tr.realSites; guard++ {
		if tr.point(vertex) == target {
			return pierced, nil
		}
		t, exit, along := tr.coneTriangle(vertex, target)
		if along != NoSite {
			// The ray runs along an edge.
			if geom.OnSegmentInterior(target, tr.point(vertex), tr.point(along)) {
				return pierced, nil
			}
			vertex = along
			continue
		}
		if t == NoTriangle || tr.triangleContains(t, target) {
			return pierced, nil
		}
		for {
			if !tr.ownerAligned(exit) {
				pierced = append(pierced, exit)
			}
			t = tr.edges[exit].OtherTriangle(t)
			if t == NoTriangle || tr.triangleContains(t, target) {
				return pierced, nil
			}
			o := tr.triangles[t].OppositeSite(exit)
			side := geom.Orientation(origin, target, tr.point(o))
			if side == 0 {
				// The ray runs through a vertex; continue from there.
				vertex = o
				break
			}
			edge := &tr.edges[exit]
			stay := edge.Upper
			if geom.Orientation(origin, target, tr.point(stay)) != side {
				stay = edge.Lower
			}
			exit = tr.mustEdge(o, edge.OtherSite(stay))
		}
	}
	return pierced, nil
}

// The triangle at site s whose angle strictly holds the direction to target,
// and the edge across from s in it. When the direction runs along an edge
// instead, the far end of that edge comes back as along.
func (tr *Triangulation) coneTriangle(s SiteID, target orb.Point) (TriangleID, EdgeID, SiteID) {
	ps := tr.point(s)
	for _, e := range tr.incidentEdges(s) {
		other := tr.edges[e].OtherSite(s)
		po := tr.point(other)
		if geom.Orientation(ps, po, target) == 0 &&
			(po[0]-ps[0])*(target[0]-ps[0])+(po[1]-ps[1])*(target[1]-ps[1]) > 0 {
			return NoTriangle, NoEdge, other
		}
	}
	for _, e := range tr.incidentEdges(s) {
		edge := &tr.edges[e]
		for _, t := range [2]TriangleID{edge.CcwTriangle, edge.CwTriangle} {
			if t == NoTriangle {
				continue
			}
			tri := &tr.triangles[t]
			i := tri.Sites.Index(s)
			x, y := tr.point(tri.Sites.At(i+1)), tr.point(tri.Sites.At(i+2))
			if geom.InCone(target, ps, x, y) {
				return t, tri.Edges.At(i + 1), NoSite
			}
		}
	}
	return NoTriangle, NoEdge, NoSite
}

func (tr *Triangulation) ownerAligned(e EdgeID) bool {
	edge := &tr.edges[e]
	upper := &tr.sites[edge.Upper]
	for _, owner := range tr.sites[edge.Lower].Owners {
		if upper.HasOwner(owner) {
			return true
		}
	}
	return false
}

// TrianglePoints lists the corners of every triangle, counterclockwise.
func (tr *Triangulation) TrianglePoints() [][3]orb.Point {
	ids := tr.Triangles()
	result := make([][3]orb.Point, len(ids))
	for i, id := range ids {
		s := tr.triangles[id].Sites
		result[i] = [3]orb.Point{tr.point(s[0]), tr.point(s[1]), tr.point(s[2])}
	}
	return result
}
