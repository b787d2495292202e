package advanced

import (
	"github.com/microsoft/automatic-graph-layout-sub018/internal/geom"
	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

// Insert every constrained edge hanging down from the new site that the point
// event did not already produce.
func (tr *Triangulation) edgeEvents(s SiteID) {
	var pending []EdgeID
	for _, e := range tr.sites[s].Edges {
		if edge := &tr.edges[e]; edge.Constrained && edge.TriangleCount() == 0 {
			pending = append(pending, e)
		}
	}
	for _, e := range pending {
		// An earlier insertion may have produced this one on the way.
		if tr.edges[e].TriangleCount() > 0 {
			continue
		}
		tr.log.Debug("edge event", zap.Int32("edge", int32(e)), zap.Int32("upper", int32(s)), zap.Int32("lower", int32(tr.edges[e].Lower)))
		tr.insertSegment(s, tr.edges[e].Lower)
	}
}

// segmentInserter makes the segment a-b an edge of the mesh. The tracer
// deletes every triangle the segment crosses and sorts the sites of the
// crossed area into the chains to the left and right of a->b. Each chain then
// forms a polygon with the segment, and both are re-triangulated.
//
// While the sweep runs, the segment may also pass over the front, through
// empty space. The front sites below it join a chain as well, and their front
// elements are replaced.
type segmentInserter struct {
	tr     *Triangulation
	a, b   SiteID
	pa, pb orb.Point

	left, right []SiteID

	removedEdges []EdgeID
	removedFront []frontElement
	created      []TriangleID
}

// a must be the upper end.
func (tr *Triangulation) insertSegment(a, b SiteID) {
	s := &segmentInserter{tr: tr, a: a, b: b, pa: tr.point(a), pb: tr.point(b)}
	s.trace()

	for _, el := range s.removedFront {
		tr.front.remove(el)
	}
	s.triangulateChain(s.left, a, b)
	s.triangulateChain(s.right, a, b)
	tr.deleteBareEdges(s.removedEdges)

	if tr.front != nil {
		s.registerFrontEdges()
	}
	tr.log.Debug("segment inserted",
		zap.Int32("a", int32(a)), zap.Int32("b", int32(b)),
		zap.Int("left", len(s.left)), zap.Int("right", len(s.right)),
		zap.Int("triangles", len(s.created)),
	)
}

// Which side of a->b the site is on: 1 for left, -1 for right.
func (s *segmentInserter) side(v SiteID) int {
	return geom.Orientation(s.pa, s.pb, s.tr.point(v))
}

func (s *segmentInserter) addSite(v SiteID) {
	if v == s.a || v == s.b {
		return
	}
	switch s.side(v) {
	case 1:
		s.left = appendSite(s.left, v)
	case -1:
		s.right = appendSite(s.right, v)
	default:
		fatalWrapf(ErrSiteOnConstraint, "site %v on segment %v-%v", s.tr.point(v), s.pa, s.pb)
	}
}

func appendSite(chain []SiteID, v SiteID) []SiteID {
	if len(chain) > 0 && chain[len(chain)-1] == v {
		return chain
	}
	return append(chain, v)
}

func (s *segmentInserter) removeTriangle(t TriangleID) {
	s.removedEdges = append(s.removedEdges, s.tr.triangles[t].Edges[:]...)
	s.tr.removeTriangle(t)
}

func (s *segmentInserter) trace() {
	tri, exit, done := s.start()
	for !done {
		tri, exit, done = s.cross(tri, exit)
	}
}

// Decide how the segment leaves a: over the front to the left or right, or
// into one of the triangles around a.
func (s *segmentInserter) start() (TriangleID, EdgeID, bool) {
	tr := s.tr
	if tr.front != nil {
		if el, ok := tr.front.find(s.a); ok {
			if prev, ok := tr.front.prev(el); ok && prev.Right == s.a &&
				geom.IsCCW(tr.point(prev.Left), s.pa, s.pb) {
				return s.walkFrontLeft(prev)
			}
			if geom.IsCCW(s.pa, tr.point(el.Right), s.pb) {
				return s.walkFrontRight(el)
			}
		}
	}

	for _, e := range tr.incidentEdges(s.a) {
		edge := &tr.edges[e]
		for _, t := range [2]TriangleID{edge.CcwTriangle, edge.CwTriangle} {
			if t == NoTriangle {
				continue
			}
			tri := &tr.triangles[t]
			i := tri.Sites.Index(s.a)
			x, y := tri.Sites.At(i+1), tri.Sites.At(i+2)
			ox := geom.Orientation(s.pa, tr.point(x), s.pb)
			oy := geom.Orientation(s.pa, tr.point(y), s.pb)
			if ox < 0 || oy > 0 || (ox == 0 && oy == 0) {
				continue
			}
			// The segment leaves a between x and y, so it crosses the edge
			// across from a.
			s.addSite(x)
			s.addSite(y)
			return t, tri.Edges.At(i + 1), false
		}
	}
	fatalf("no triangle around site %d holds the direction to site %d", s.a, s.b)
	return NoTriangle, NoEdge, true
}

// Leave triangle t through its edge exit. Returns the next triangle and the
// edge it will be left through.
func (s *segmentInserter) cross(t TriangleID, exit EdgeID) (TriangleID, EdgeID, bool) {
	tr := s.tr
	s.removeTriangle(t)
	next := tr.edges[exit].anyTriangle()
	if next == NoTriangle {
		return s.leaveMesh(exit)
	}
	return s.pass(next, exit)
}

// The segment enters triangle t through entry. Either the apex is b and the
// trace is over, or find which of the other two edges the segment leaves by.
func (s *segmentInserter) pass(t TriangleID, entry EdgeID) (TriangleID, EdgeID, bool) {
	tr := s.tr
	tri := &tr.triangles[t]
	o := tri.OppositeSite(entry)
	if o == s.b {
		s.removeTriangle(t)
		return NoTriangle, NoEdge, true
	}
	s.addSite(o)
	edge := &tr.edges[entry]
	stay := edge.Upper
	if s.side(stay) != s.side(o) {
		stay = edge.Lower
	}
	// o and stay are on the same side, so the segment crosses the edge from o
	// to the other end of the entry.
	return t, tr.mustEdge(o, edge.OtherSite(stay)), false
}

// The segment crossed a front edge from below and continues above the front.
func (s *segmentInserter) leaveMesh(exit EdgeID) (TriangleID, EdgeID, bool) {
	tr := s.tr
	if tr.front == nil {
		fatalf("segment %d-%d leaves the mesh through edge %d", s.a, s.b, exit)
	}
	edge := &tr.edges[exit]
	left := edge.Upper
	if tr.point(edge.Lower)[0] < tr.point(left)[0] {
		left = edge.Lower
	}
	el, ok := tr.front.find(left)
	if !ok || el.Edge != exit {
		fatalf("edge %d has a single triangle but is not on the front", exit)
	}
	if s.pb[0] < s.pa[0] {
		return s.walkFrontLeft(el)
	}
	return s.walkFrontRight(el)
}

// Walk the front leftward from el while its sites stay below the segment,
// which for a segment heading down and left is its left side. The first site
// found above it closes the walk, and the segment dives under the front edge
// ending there.
func (s *segmentInserter) walkFrontLeft(el frontElement) (TriangleID, EdgeID, bool) {
	tr := s.tr
	for {
		s.removedFront = append(s.removedFront, el)
		s.addSite(el.Left)
		prev, ok := tr.front.prev(el)
		if !ok {
			fatalf("segment %d-%d runs off the left end of the front", s.a, s.b)
		}
		el = prev
		if el.Left == s.b || s.side(el.Left) <= 0 {
			break
		}
	}
	s.removedFront = append(s.removedFront, el)
	if el.Left == s.b {
		return NoTriangle, NoEdge, true
	}
	s.addSite(el.Left)
	return s.underFront(el)
}

func (s *segmentInserter) walkFrontRight(el frontElement) (TriangleID, EdgeID, bool) {
	tr := s.tr
	for {
		s.removedFront = append(s.removedFront, el)
		s.addSite(el.Right)
		next, ok := tr.front.next(el)
		if !ok {
			fatalf("segment %d-%d runs off the right end of the front", s.a, s.b)
		}
		el = next
		if el.Right == s.b || s.side(el.Right) >= 0 {
			break
		}
	}
	s.removedFront = append(s.removedFront, el)
	if el.Right == s.b {
		return NoTriangle, NoEdge, true
	}
	s.addSite(el.Right)
	return s.underFront(el)
}

func (s *segmentInserter) underFront(el frontElement) (TriangleID, EdgeID, bool) {
	t := s.tr.edges[el.Edge].anyTriangle()
	if t == NoTriangle {
		fatalf("front edge %d has no triangle under it", el.Edge)
	}
	return s.pass(t, el.Edge)
}

// Triangulate the polygon a, chain..., b by picking the chain site whose
// circle through a and b holds no other chain site, then recursing on both
// sides of it.
func (s *segmentInserter) triangulateChain(chain []SiteID, a, b SiteID) {
	if len(chain) == 0 {
		return
	}
	tr := s.tr
	pa, pb := tr.point(a), tr.point(b)
	c := 0
	for i := 1; i < len(chain); i++ {
		if geom.InCircle(tr.point(chain[i]), pa, pb, tr.point(chain[c])) {
			c = i
		}
	}
	s.created = append(s.created, tr.newTriangle(a, b, chain[c]))
	s.triangulateChain(chain[:c], a, chain[c])
	s.triangulateChain(chain[c+1:], chain[c], b)
}

// Edges of the new triangles with empty space above them now bound the
// triangulated area from above. An edge whose only triangle lies above it,
// like the sentinel base, stays off the front.
func (s *segmentInserter) registerFrontEdges() {
	tr := s.tr
	for _, t := range s.created {
		if !tr.triangles[t].alive {
			continue
		}
		for _, e := range tr.triangles[t].Edges {
			edge := &tr.edges[e]
			if edge.TriangleCount() != 1 || tr.front.hasEdge(e) {
				continue
			}
			left, right := edge.Upper, edge.Lower
			if tr.point(right)[0] < tr.point(left)[0] {
				left, right = right, left
			}
			apex := tr.triangles[t].OppositeSite(e)
			if geom.Orientation(tr.point(left), tr.point(right), tr.point(apex)) >= 0 {
				continue
			}
			tr.front.insert(left, right, e)
		}
	}
}
