package advanced

import (
	"github.com/microsoft/automatic-graph-layout-sub018/internal/geom"
	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

// Finalization turns the sweep result into a triangulation of the convex hull
// of the real sites:
//
//  1. Fill every valley of the front, so the whole mesh is convex and every
//     hull edge runs through its interior.
//  2. Insert the hull edges the mesh lacks, so no real site hangs on
//     sentinel triangles only.
//  3. Drop the sentinels with their triangles and edges.
//  4. Collapse whatever concave corners remain on the perimeter.
//  5. Flip the edges that lost their Delaunay property along the way.
func (tr *Triangulation) finalize() {
	tr.zipChain(tr.front.elements())
	tr.front = nil

	tr.buildInEdges()
	tr.enforceHull()
	tr.removeSentinels()
	filled := tr.makePerimeterConvex()
	flips := tr.legalizeAll()
	tr.log.Debug("finalized", zap.Int("perimeterFills", filled), zap.Int("flips", flips))
}

func (tr *Triangulation) buildInEdges() {
	if tr.inEdgesBuilt {
		return
	}
	for i := range tr.sites {
		tr.sites[i].InEdges = tr.sites[i].InEdges[:0]
	}
	for i := range tr.edges {
		if edge := &tr.edges[i]; edge.alive {
			tr.sites[edge.Lower].InEdges = append(tr.sites[edge.Lower].InEdges, EdgeID(i))
		}
	}
	tr.inEdgesBuilt = true
}

func (tr *Triangulation) realPoints() []orb.Point {
	points := make([]orb.Point, tr.realSites)
	for i := range points {
		points[i] = tr.sites[i].Point
	}
	return points
}

// Real sites come first in the arena, so hull indices are site handles.
func (tr *Triangulation) enforceHull() {
	hull := geom.ConvexHull(tr.realPoints())
	for i := range hull {
		a := SiteID(hull[i])
		b := SiteID(hull[geom.CircularIndex(i+1, len(hull))])
		if _, ok := tr.edgeBetween(a, b); ok {
			continue
		}
		upper, lower := tr.order(a, b)
		tr.log.Debug("hull edge", zap.Int32("upper", int32(upper)), zap.Int32("lower", int32(lower)))
		tr.insertSegment(upper, lower)
	}
}

func (tr *Triangulation) removeSentinels() {
	for i := range tr.triangles {
		tri := &tr.triangles[i]
		if tri.alive && (tri.Sites.Contains(tr.sentinels[0]) || tri.Sites.Contains(tr.sentinels[1])) {
			tr.removeTriangle(TriangleID(i))
		}
	}
	for _, s := range tr.sentinels {
		for _, e := range tr.incidentEdges(s) {
			tr.deleteEdge(e)
		}
	}
	for i := range tr.edges {
		if edge := &tr.edges[i]; edge.alive && !edge.Constrained && edge.TriangleCount() == 0 {
			tr.deleteEdge(EdgeID(i))
		}
	}
}

// A perimeterEdge is a node of the circular list of boundary edges, walked
// with the mesh on the right, that is, clockwise.
type perimeterEdge struct {
	start, end SiteID
	edge       EdgeID
	prev, next *perimeterEdge
}

func (tr *Triangulation) perimeterEdgeFor(e EdgeID) *perimeterEdge {
	edge := &tr.edges[e]
	if edge.CcwTriangle != NoTriangle {
		return &perimeterEdge{start: edge.Lower, end: edge.Upper, edge: e}
	}
	return &perimeterEdge{start: edge.Upper, end: edge.Lower, edge: e}
}

// Turn around the end of the boundary edge e through the triangles until the
// next boundary edge comes up.
func (tr *Triangulation) nextPerimeterEdge(e EdgeID) EdgeID {
	t := tr.edges[e].anyTriangle()
	e = tr.triangles[t].Edges.At(tr.triangles[t].Edges.Index(e) + 2)
	for tr.edges[e].TriangleCount() == 2 {
		t = tr.edges[e].OtherTriangle(t)
		e = tr.triangles[t].Edges.At(tr.triangles[t].Edges.Index(e) + 2)
	}
	return e
}

// Build the perimeter list from any boundary edge. Returns nil for an empty
// mesh.
func (tr *Triangulation) perimeter() (*perimeterEdge, int) {
	first := NoEdge
	for i := range tr.edges {
		if edge := &tr.edges[i]; edge.alive && edge.TriangleCount() == 1 {
			first = EdgeID(i)
			break
		}
	}
	if first == NoEdge {
		return nil, 0
	}
	head := tr.perimeterEdgeFor(first)
	last, count := head, 1
	for e := tr.nextPerimeterEdge(first); e != first; e = tr.nextPerimeterEdge(e) {
		pe := tr.perimeterEdgeFor(e)
		pe.prev = last
		last.next = pe
		last = pe
		count++
		if count > len(tr.edges) {
			fatalf("perimeter walk from edge %d does not close", first)
		}
	}
	last.next = head
	head.prev = last
	return head, count
}

// Walking clockwise, a counterclockwise turn is a dent in the perimeter.
// Fill it with a triangle and look again at the corner behind, which the new
// edge may have dented.
func (tr *Triangulation) makePerimeterConvex() int {
	a, count := tr.perimeter()
	filled := 0
	for stable := 0; a != nil && count > 3 && stable < count; {
		b := a.next
		if !geom.IsCCW(tr.point(a.start), tr.point(a.end), tr.point(b.end)) {
			a = b
			stable++
			continue
		}
		tr.newTriangle(a.start, a.end, b.end)
		a.edge = tr.mustEdge(a.start, b.end)
		a.end = b.end
		a.next = b.next
		b.next.prev = a
		a = a.prev
		count--
		filled++
		stable = 0
	}
	return filled
}

// Flip every illegal unconstrained edge until none is left.
func (tr *Triangulation) legalizeAll() int {
	stack := make([]EdgeID, 0, len(tr.edges))
	for i := range tr.edges {
		if edge := &tr.edges[i]; edge.alive && !edge.Constrained {
			stack = append(stack, EdgeID(i))
		}
	}
	return tr.flipUntilLegal(stack)
}

// Lawson's flip loop: flip each illegal edge on the stack and push the four
// edges around the new diagonal. Returns the number of flips.
func (tr *Triangulation) flipUntilLegal(stack []EdgeID) int {
	flips := 0
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !tr.edges[e].alive || !tr.isIllegal(e) {
			continue
		}
		edge := tr.edges[e]
		p, q := tr.flipEdge(e)
		flips++
		stack = append(stack,
			tr.mustEdge(p, edge.Upper), tr.mustEdge(edge.Upper, q),
			tr.mustEdge(q, edge.Lower), tr.mustEdge(edge.Lower, p),
		)
	}
	return flips
}
