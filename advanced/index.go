package advanced

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/quadtree"
	"go.uber.org/zap"
)

// The triangle index keys every triangle by the center of its bounding box.
// A triangle holding p has its center within its own half extent of p, so a
// query padded by the largest half extent finds every candidate.
type triangleIndex struct {
	tree *quadtree.Quadtree
	pad  float64
}

type indexedTriangle struct {
	id     TriangleID
	bound  orb.Bound
	center orb.Point
}

func (it indexedTriangle) Point() orb.Point {
	return it.center
}

func (tr *Triangulation) triangleBound(t TriangleID) orb.Bound {
	s := tr.triangles[t].Sites
	return orb.MultiPoint{tr.point(s[0]), tr.point(s[1]), tr.point(s[2])}.Bound()
}

func (tr *Triangulation) buildIndex() *triangleIndex {
	ids := tr.Triangles()
	if len(ids) == 0 {
		return &triangleIndex{}
	}
	items := make([]indexedTriangle, len(ids))
	meshBound := tr.triangleBound(ids[0])
	pad := 0.0
	for i, id := range ids {
		b := tr.triangleBound(id)
		items[i] = indexedTriangle{id: id, bound: b, center: b.Center()}
		meshBound = meshBound.Union(b)
		pad = math.Max(pad, math.Max(b.Max[0]-b.Min[0], b.Max[1]-b.Min[1])/2)
	}
	index := &triangleIndex{tree: quadtree.New(meshBound), pad: pad}
	for _, item := range items {
		if err := index.tree.Add(item); err != nil {
			tr.log.Warn("triangle left out of the index", zap.Int32("triangle", int32(item.id)), zap.Error(err))
		}
	}
	return index
}

// Locate finds a triangle containing p, boundary included. The index behind
// it is built on first use and is safe for concurrent readers.
func (tr *Triangulation) Locate(p orb.Point) (TriangleID, bool) {
	if tr.ready() != nil {
		return NoTriangle, false
	}
	tr.indexOnce.Do(func() {
		tr.index = tr.buildIndex()
	})
	if tr.index.tree == nil {
		return NoTriangle, false
	}
	query := p.Bound().Pad(tr.index.pad)
	for _, candidate := range tr.index.tree.InBound(nil, query) {
		item := candidate.(indexedTriangle)
		if item.bound.Pad(1e-9).Contains(p) && tr.triangleContains(item.id, p) {
			return item.id, true
		}
	}
	return NoTriangle, false
}
