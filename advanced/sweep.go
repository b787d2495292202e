package advanced

import (
	"github.com/microsoft/automatic-graph-layout-sub018/internal/geom"
	"go.uber.org/zap"
)

// The sweep moves a horizontal line upward over the sites. Everything below
// the line is triangulated and bounded from above by the front. The initial
// triangle is the two sentinels plus the lowest site:
//
//	p1 ---- s0 ---- p2   (front)
//	  \     |     /
//	   \    |    /
//	    p1------p2
func (tr *Triangulation) sweep(order []SiteID) {
	p1, p2 := tr.sentinels[0], tr.sentinels[1]
	tr.front = newFront(tr)

	s0 := order[0]
	tr.newTriangle(p1, p2, s0)
	tr.front.insert(p1, s0, tr.mustEdge(p1, s0))
	tr.front.insert(s0, p2, tr.mustEdge(s0, p2))
	tr.edgeEvents(s0)
	tr.notifyObserver()

	for _, s := range order[1:] {
		tr.pointEvent(s)
		tr.edgeEvents(s)
		tr.notifyObserver()
	}
}

func (tr *Triangulation) notifyObserver() {
	tr.step++
	if tr.opts.observer != nil {
		tr.opts.observer(tr.step, tr.snapshot())
	}
}

// Admit a site into the mesh: cover it by the front edge below it, then fill
// the empty space that opened up next to it.
func (tr *Triangulation) pointEvent(pi SiteID) {
	p := tr.point(pi)
	hit := tr.front.projectToFront(p[0])

	var left, right SiteID
	if p[0]-tr.point(hit.Left)[0] <= geom.Tolerance {
		// The site is right above the left end of the hit element, so that end
		// gets buried under two triangles.
		prev, ok := tr.front.prev(hit)
		if !ok {
			fatalf("site %d projects onto the first front element", pi)
		}
		left, right = prev.Left, hit.Right
		tr.insertAndLegalizeTriangle(pi, hit)
		tr.insertAndLegalizeTriangle(pi, prev)
		tr.front.remove(prev)
		tr.front.remove(hit)
		tr.log.Debug("point event", zap.Int32("site", int32(pi)), zap.String("case", "left"))
	} else {
		left, right = hit.Left, hit.Right
		tr.insertAndLegalizeTriangle(pi, hit)
		tr.front.remove(hit)
		tr.log.Debug("point event", zap.Int32("site", int32(pi)), zap.String("case", "middle"))
	}

	leftElement := tr.front.insert(left, pi, tr.mustEdge(left, pi))
	rightElement := tr.front.insert(pi, right, tr.mustEdge(pi, right))

	// The right side zips only elements starting at pi, so leftElement stays
	// on the front.
	tr.triangulateEmptySpaceToTheRight(rightElement)
	tr.triangulateEmptySpaceToTheLeft(leftElement)
}

// Cover the front element el with a triangle reaching up to pi. A site lying
// exactly on the element's edge splits the triangle under that edge instead.
func (tr *Triangulation) insertAndLegalizeTriangle(pi SiteID, el frontElement) {
	if geom.Orientation(tr.point(el.Left), tr.point(el.Right), tr.point(pi)) != 0 {
		tr.newTriangle(el.Left, el.Right, pi)
		tr.legalizeEdge(pi, el.Edge)
		return
	}

	/*
		left ----pi---- right
		    \         /
		     \       /
		        o
	*/
	under := tr.edges[el.Edge].anyTriangle()
	if under == NoTriangle {
		fatalf("front edge %d has no triangle under it", el.Edge)
	}
	o := tr.triangles[under].OppositeSite(el.Edge)
	tr.removeTriangle(under)
	tr.deleteEdge(el.Edge)
	tr.newTriangle(el.Left, o, pi)
	tr.newTriangle(el.Right, o, pi)
	tr.legalizeEdge(pi, tr.mustEdge(el.Left, o))
	tr.legalizeEdge(pi, tr.mustEdge(el.Right, o))
}

// Restore the Delaunay condition on e, which was just made the far side of a
// triangle with apex pi. Flips propagate to the two edges that become
// opposite pi. If pi no longer sits on either triangle of e, e is legalized
// on its own.
func (tr *Triangulation) legalizeEdge(pi SiteID, e EdgeID) {
	if !tr.edges[e].alive || !tr.isIllegal(e) {
		return
	}
	edge := tr.edges[e]
	if tr.triangles[edge.CcwTriangle].OppositeSite(e) != pi && tr.triangles[edge.CwTriangle].OppositeSite(e) != pi {
		// An earlier flip took pi off this edge's triangles.
		tr.flipUntilLegal([]EdgeID{e})
		return
	}
	p, q := tr.flipEdge(e)
	far := q
	if q == pi {
		far = p
	}
	tr.log.Debug("flip", zap.Int32("edge", int32(e)), zap.Int32("site", int32(pi)), zap.Int32("apex", int32(far)))
	tr.legalizeEdge(pi, tr.mustEdge(edge.Upper, far))
	tr.legalizeEdge(pi, tr.mustEdge(edge.Lower, far))
}

// Fill the triangle over two consecutive front elements and replace them by
// the element joining their outer ends.
//
//	   a.Left        b.Right
//	       \        /
//	      a \      / b
//	         \    /
//	        a.Right
func (tr *Triangulation) shortcutTwoFrontElements(a, b frontElement) frontElement {
	tr.newTriangle(a.Left, a.Right, b.Right)
	tr.front.remove(a)
	tr.front.remove(b)
	merged := tr.front.insert(a.Left, b.Right, tr.mustEdge(a.Left, b.Right))
	tr.legalizeEdge(b.Right, a.Edge)
	// A flip of a.Edge can leave a.Left off both triangles of b.Edge.
	tr.legalizeEdge(a.Left, b.Edge)
	return merged
}

// Can the middle vertex of the triple be buried by the zipper? It has to be a
// valley, and the angle at it has to be acute so no skinny triangles come out.
func (tr *Triangulation) acuteValley(left, middle, right SiteID) bool {
	a, m, b := tr.point(left), tr.point(middle), tr.point(right)
	if !geom.IsCCW(a, m, b) {
		return false
	}
	return (a[0]-m[0])*(b[0]-m[0])+(a[1]-m[1])*(b[1]-m[1]) > 0
}

// el starts at the new site.
func (tr *Triangulation) triangulateEmptySpaceToTheRight(el frontElement) {
	pi := el.Left
	for {
		next, ok := tr.front.next(el)
		if !ok {
			return
		}
		if !tr.acuteValley(pi, el.Right, next.Right) {
			tr.triangulateBasinToTheRight(el)
			return
		}
		el = tr.shortcutTwoFrontElements(el, next)
	}
}

// el ends at the new site.
func (tr *Triangulation) triangulateEmptySpaceToTheLeft(el frontElement) {
	pi := el.Right
	for {
		prev, ok := tr.front.prev(el)
		if !ok {
			return
		}
		if !tr.acuteValley(prev.Left, el.Left, pi) {
			tr.triangulateBasinToTheLeft(el)
			return
		}
		el = tr.shortcutTwoFrontElements(prev, el)
	}
}

// A basin is a dip in the front next to the new site. It is entered through an
// edge that drops more than 45 degrees away from the site, runs down to the
// bottom and back up to the next local maximum or the height of the site.
func (tr *Triangulation) triangulateBasinToTheRight(el frontElement) {
	pi, first := tr.point(el.Left), tr.point(el.Right)
	if first[0]-pi[0] >= pi[1]-first[1] {
		return
	}
	basin := []frontElement{el}
	cur := el
	descending := true
	for {
		next, ok := tr.front.next(cur)
		if !ok {
			break
		}
		from, to := tr.point(next.Left), tr.point(next.Right)
		if descending && to[1] >= from[1] {
			descending = false
		}
		if !descending && to[1] < from[1] {
			break
		}
		basin = append(basin, next)
		cur = next
		if !descending && to[1] >= pi[1] {
			break
		}
	}
	if len(basin) < 2 {
		return
	}
	tr.log.Debug("basin", zap.String("side", "right"), zap.Int("elements", len(basin)))
	tr.zipChain(basin)
}

func (tr *Triangulation) triangulateBasinToTheLeft(el frontElement) {
	pi, first := tr.point(el.Right), tr.point(el.Left)
	if pi[0]-first[0] >= pi[1]-first[1] {
		return
	}
	basin := []frontElement{el}
	cur := el
	descending := true
	for {
		prev, ok := tr.front.prev(cur)
		if !ok {
			break
		}
		from, to := tr.point(prev.Right), tr.point(prev.Left)
		if descending && to[1] >= from[1] {
			descending = false
		}
		if !descending && to[1] < from[1] {
			break
		}
		basin = append(basin, prev)
		cur = prev
		if !descending && to[1] >= pi[1] {
			break
		}
	}
	if len(basin) < 2 {
		return
	}
	// zipChain wants the elements left to right.
	for i, j := 0, len(basin)-1; i < j; i, j = i+1, j-1 {
		basin[i], basin[j] = basin[j], basin[i]
	}
	tr.log.Debug("basin", zap.String("side", "left"), zap.Int("elements", len(basin)))
	tr.zipChain(basin)
}

// Fill every valley of a run of consecutive front elements, given left to
// right. After filling one, step back once, since the merged element may form
// a new valley with its left neighbor.
func (tr *Triangulation) zipChain(chain []frontElement) {
	i := 0
	for i+1 < len(chain) {
		a, b := chain[i], chain[i+1]
		if !geom.IsCCW(tr.point(a.Left), tr.point(a.Right), tr.point(b.Right)) {
			i++
			continue
		}
		merged := tr.shortcutTwoFrontElements(a, b)
		chain[i] = merged
		chain = append(chain[:i+1], chain[i+2:]...)
		if i > 0 {
			i--
		}
	}
}
