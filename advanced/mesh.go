package advanced

import (
	"reflect"

	"github.com/microsoft/automatic-graph-layout-sub018/internal/geom"
	"github.com/paulmach/orb"
)

// Handles into the arenas owned by a Triangulation. Removed edges and
// triangles are tombstoned, so a handle is never reused within one run.
type (
	SiteID     int32
	EdgeID     int32
	TriangleID int32
)

const (
	NoSite     SiteID     = -1
	NoEdge     EdgeID     = -1
	NoTriangle TriangleID = -1
)

// Capacity assigned to unconstrained edges. Routing code consumes
// ResidualCapacity and puts it back with RestoreCapacities.
const DefaultEdgeCapacity = 1000

type Site struct {
	Point orb.Point
	// Everything that contributed this point. Coincident input points are
	// merged into one site and their owners are unioned.
	Owners []any
	// Edges for which this site is the upper end.
	Edges []EdgeID
	// Edges for which this site is the lower end. Empty until SetInEdges runs.
	InEdges []EdgeID
}

func (s *Site) addOwner(owner any) {
	if owner == nil {
		return
	}
	for _, existing := range s.Owners {
		if sameOwner(existing, owner) {
			return
		}
	}
	s.Owners = append(s.Owners, owner)
}

func (s *Site) HasOwner(owner any) bool {
	for _, existing := range s.Owners {
		if sameOwner(existing, owner) {
			return true
		}
	}
	return false
}

// Owners without a comparable type (slices, maps) are never considered equal
// to anything, since comparing them through an interface would panic.
func sameOwner(a, b any) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || ta == nil || !ta.Comparable() {
		return false
	}
	return a == b
}

// An Edge joins two sites ordered by height. Looking from Upper toward Lower,
// CcwTriangle is on the left and CwTriangle on the right.
type Edge struct {
	Upper, Lower SiteID

	CcwTriangle, CwTriangle TriangleID

	Constrained bool
	// The obstacle polyline this edge was created for, if any.
	Owner any

	Capacity, ResidualCapacity int

	alive bool
}

func (e *Edge) Alive() bool {
	return e.alive
}

func (e *Edge) IsAdjacent(s SiteID) bool {
	return e.Upper == s || e.Lower == s
}

// OtherSite returns the end of the edge that is not s.
func (e *Edge) OtherSite(s SiteID) SiteID {
	if e.Upper == s {
		return e.Lower
	}
	return e.Upper
}

// OtherTriangle returns the triangle on the far side of the edge from t.
func (e *Edge) OtherTriangle(t TriangleID) TriangleID {
	if e.CcwTriangle == t {
		return e.CwTriangle
	}
	return e.CcwTriangle
}

func (e *Edge) TriangleCount() int {
	n := 0
	if e.CcwTriangle != NoTriangle {
		n++
	}
	if e.CwTriangle != NoTriangle {
		n++
	}
	return n
}

// anyTriangle returns one of the bordering triangles, preferring the clockwise
// one.
func (e *Edge) anyTriangle() TriangleID {
	if e.CwTriangle != NoTriangle {
		return e.CwTriangle
	}
	return e.CcwTriangle
}

// A Triangle keeps its sites counterclockwise. Edges[i] joins Sites[i] to
// Sites[i+1].
type Triangle struct {
	Sites Triple[SiteID]
	Edges Triple[EdgeID]

	alive bool
}

func (t *Triangle) Alive() bool {
	return t.alive
}

// The site across from edge e.
func (t *Triangle) OppositeSite(e EdgeID) SiteID {
	i := t.Edges.Index(e)
	if i < 0 {
		fatalf("edge %d is not on triangle %v", e, t.Sites)
	}
	return t.Sites.At(i + 2)
}

// The edge across from site s.
func (t *Triangle) OppositeEdge(s SiteID) EdgeID {
	i := t.Sites.Index(s)
	if i < 0 {
		fatalf("site %d is not on triangle %v", s, t.Sites)
	}
	return t.Edges.At(i + 1)
}

func (tr *Triangulation) point(s SiteID) orb.Point {
	return tr.sites[s].Point
}

func (tr *Triangulation) isSentinel(s SiteID) bool {
	return s == tr.sentinels[0] || s == tr.sentinels[1]
}

func (tr *Triangulation) addSite(p orb.Point, owner any) SiteID {
	if id, ok := tr.byPoint[p]; ok {
		tr.sites[id].addOwner(owner)
		return id
	}
	id := SiteID(len(tr.sites))
	tr.sites = append(tr.sites, Site{Point: p})
	tr.sites[id].addOwner(owner)
	tr.byPoint[p] = id
	return id
}

// Order two distinct sites as upper, lower.
func (tr *Triangulation) order(a, b SiteID) (upper, lower SiteID) {
	if geom.Above(tr.point(a), tr.point(b)) {
		return a, b
	}
	return b, a
}

func (tr *Triangulation) edgeBetween(a, b SiteID) (EdgeID, bool) {
	upper, lower := tr.order(a, b)
	for _, e := range tr.sites[upper].Edges {
		if tr.edges[e].Lower == lower {
			return e, true
		}
	}
	return NoEdge, false
}

func (tr *Triangulation) mustEdge(a, b SiteID) EdgeID {
	e, ok := tr.edgeBetween(a, b)
	if !ok {
		fatalf("no edge between sites %d and %d", a, b)
	}
	return e
}

// Get the edge between a and b, creating it if needed.
func (tr *Triangulation) edgeFor(a, b SiteID) EdgeID {
	if e, ok := tr.edgeBetween(a, b); ok {
		return e
	}
	if a == b {
		fatalf("cannot create an edge from site %d to itself", a)
	}
	upper, lower := tr.order(a, b)
	id := EdgeID(len(tr.edges))
	tr.edges = append(tr.edges, Edge{
		Upper:            upper,
		Lower:            lower,
		CcwTriangle:      NoTriangle,
		CwTriangle:       NoTriangle,
		Capacity:         DefaultEdgeCapacity,
		ResidualCapacity: DefaultEdgeCapacity,
		alive:            true,
	})
	tr.sites[upper].Edges = append(tr.sites[upper].Edges, id)
	if tr.inEdgesBuilt {
		tr.sites[lower].InEdges = append(tr.sites[lower].InEdges, id)
	}
	return id
}

func (tr *Triangulation) deleteEdge(e EdgeID) {
	edge := &tr.edges[e]
	if edge.TriangleCount() != 0 {
		fatalf("deleting edge %d which still borders triangles %d and %d", e, edge.CcwTriangle, edge.CwTriangle)
	}
	edge.alive = false
	tr.sites[edge.Upper].Edges = removeEdgeID(tr.sites[edge.Upper].Edges, e)
	if tr.inEdgesBuilt {
		tr.sites[edge.Lower].InEdges = removeEdgeID(tr.sites[edge.Lower].InEdges, e)
	}
}

func removeEdgeID(list []EdgeID, e EdgeID) []EdgeID {
	for i, item := range list {
		if item == e {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// Edges touching s. Edges where s is the lower end are only known once the
// in-edges have been built; during the sweep the newest site is above all of
// its neighbors, so its out-edges are enough.
func (tr *Triangulation) incidentEdges(s SiteID) []EdgeID {
	site := &tr.sites[s]
	all := make([]EdgeID, 0, len(site.Edges)+len(site.InEdges))
	all = append(all, site.Edges...)
	return append(all, site.InEdges...)
}

// Create a triangle over three sites, creating missing edges and binding it to
// all three. The sites may come in either winding.
func (tr *Triangulation) newTriangle(a, b, c SiteID) TriangleID {
	area := geom.Cross(tr.point(a), tr.point(b), tr.point(c))
	if area == 0 {
		fatalf("degenerate triangle over collinear sites %d, %d, %d", a, b, c)
	}
	if area < 0 {
		b, c = c, b
	}
	id := TriangleID(len(tr.triangles))
	tri := Triangle{Sites: Triple[SiteID]{a, b, c}, alive: true}
	for i := 0; i < 3; i++ {
		tri.Edges[i] = tr.edgeFor(tri.Sites[i], tri.Sites.At(i+1))
	}
	tr.triangles = append(tr.triangles, tri)
	tr.triangleCount++
	for i := 0; i < 3; i++ {
		tr.bindEdgeToTriangle(id, i)
	}
	return id
}

// The triangle is the ccw neighbor of its i-th edge when that edge runs from
// its upper site, since the triangle is on the left of Sites[i]->Sites[i+1].
func (tr *Triangulation) bindEdgeToTriangle(t TriangleID, i int) {
	tri := &tr.triangles[t]
	edge := &tr.edges[tri.Edges[i]]
	slot := &edge.CwTriangle
	if tri.Sites[i] == edge.Upper {
		slot = &edge.CcwTriangle
	}
	if *slot != NoTriangle {
		fatalf("edge %d already has triangle %d on the side of new triangle %d", tri.Edges[i], *slot, t)
	}
	*slot = t
}

// Remove a triangle, leaving its edges in place even when they end up with no
// triangles at all.
func (tr *Triangulation) removeTriangle(t TriangleID) {
	tri := &tr.triangles[t]
	if !tri.alive {
		fatalf("triangle %d removed twice", t)
	}
	tri.alive = false
	tr.triangleCount--
	for _, e := range tri.Edges {
		edge := &tr.edges[e]
		if edge.CcwTriangle == t {
			edge.CcwTriangle = NoTriangle
		}
		if edge.CwTriangle == t {
			edge.CwTriangle = NoTriangle
		}
	}
}

// Delete edges of the list that no longer border any triangle. Constrained
// edges are kept, since they are part of the input.
func (tr *Triangulation) deleteBareEdges(edges []EdgeID) {
	for _, e := range edges {
		edge := &tr.edges[e]
		if edge.alive && !edge.Constrained && edge.TriangleCount() == 0 {
			tr.deleteEdge(e)
		}
	}
}

// Flip the diagonal e of the quadrilateral formed by its two triangles,
// returning the apexes that the new diagonal joins. p is the apex of the ccw
// triangle.
func (tr *Triangulation) flipEdge(e EdgeID) (p, q SiteID) {
	edge := tr.edges[e]
	p = tr.triangles[edge.CcwTriangle].OppositeSite(e)
	q = tr.triangles[edge.CwTriangle].OppositeSite(e)
	tr.removeTriangle(edge.CcwTriangle)
	tr.removeTriangle(edge.CwTriangle)
	tr.deleteEdge(e)
	tr.newTriangle(p, edge.Upper, q)
	tr.newTriangle(p, q, edge.Lower)
	return p, q
}

// Whether the edge e should be flipped: the apexes straddle it and each lies
// in the circumcircle of the other's triangle.
func (tr *Triangulation) isIllegal(e EdgeID) bool {
	edge := &tr.edges[e]
	if edge.Constrained || edge.CcwTriangle == NoTriangle || edge.CwTriangle == NoTriangle {
		return false
	}
	p := tr.point(tr.triangles[edge.CcwTriangle].OppositeSite(e))
	q := tr.point(tr.triangles[edge.CwTriangle].OppositeSite(e))
	u, l := tr.point(edge.Upper), tr.point(edge.Lower)
	return geom.Straddles(p, q, u, l) && geom.InCircle(q, p, u, l)
}

// Does the triangle contain p, boundary included?
func (tr *Triangulation) triangleContains(t TriangleID, p orb.Point) bool {
	s := tr.triangles[t].Sites
	a, b, c := tr.point(s[0]), tr.point(s[1]), tr.point(s[2])
	return geom.Orientation(a, b, p) >= 0 && geom.Orientation(b, c, p) >= 0 && geom.Orientation(c, a, p) >= 0
}
