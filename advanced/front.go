package advanced

import (
	"math"

	"github.com/google/btree"
)

// A frontElement is one edge of the advancing front: the x-monotone chain of
// edges bounding the triangulated area from above. Elements are keyed by
// their left site, which is unique along the front.
type frontElement struct {
	Left, Right SiteID
	Edge        EdgeID

	x float64 // x of Left
}

func frontElementLess(a, b frontElement) bool {
	if a.x != b.x {
		return a.x < b.x
	}
	return a.Left < b.Left
}

type front struct {
	tr   *Triangulation
	tree *btree.BTreeG[frontElement]
}

func newFront(tr *Triangulation) *front {
	return &front{tr: tr, tree: btree.NewG(16, frontElementLess)}
}

func (f *front) key(left SiteID) frontElement {
	return frontElement{Left: left, x: f.tr.point(left)[0]}
}

func (f *front) insert(left, right SiteID, edge EdgeID) frontElement {
	el := f.key(left)
	el.Right = right
	el.Edge = edge
	if replaced, ok := f.tree.ReplaceOrInsert(el); ok {
		fatalf("front already has an element from site %d (to %d)", left, replaced.Right)
	}
	return el
}

func (f *front) remove(el frontElement) {
	if _, ok := f.tree.Delete(el); !ok {
		fatalf("front element %d->%d is not on the front", el.Left, el.Right)
	}
}

// Find the element starting at the given site.
func (f *front) find(left SiteID) (frontElement, bool) {
	return f.tree.Get(f.key(left))
}

// Is the edge currently a front edge?
func (f *front) hasEdge(e EdgeID) bool {
	edge := &f.tr.edges[e]
	left := edge.Upper
	if f.tr.point(edge.Lower)[0] < f.tr.point(left)[0] {
		left = edge.Lower
	}
	el, ok := f.find(left)
	return ok && el.Edge == e
}

func (f *front) prev(el frontElement) (result frontElement, found bool) {
	f.tree.DescendLessOrEqual(el, func(item frontElement) bool {
		if item.Left == el.Left {
			return true
		}
		result, found = item, true
		return false
	})
	return
}

func (f *front) next(el frontElement) (result frontElement, found bool) {
	f.tree.AscendGreaterOrEqual(el, func(item frontElement) bool {
		if item.Left == el.Left {
			return true
		}
		result, found = item, true
		return false
	})
	return
}

// The element a vertical line at x hits: the last one whose left site is not
// to the right of x.
func (f *front) projectToFront(x float64) frontElement {
	pivot := frontElement{Left: math.MaxInt32, x: x}
	var result frontElement
	found := false
	f.tree.DescendLessOrEqual(pivot, func(item frontElement) bool {
		result, found = item, true
		return false
	})
	if !found {
		fatalf("x=%g lies left of the front", x)
	}
	return result
}

func (f *front) elements() []frontElement {
	list := make([]frontElement, 0, f.tree.Len())
	f.tree.Ascend(func(item frontElement) bool {
		list = append(list, item)
		return true
	})
	return list
}

func (f *front) len() int {
	return f.tree.Len()
}
