package advanced

import "github.com/microsoft/automatic-graph-layout-sub018/internal/geom"

// Triple is a fixed-arity list of three items indexed circularly, so At(3) is
// At(0) and At(-1) is At(2). Triangles keep their sites and edges in triples.
type Triple[T comparable] [3]T

func (t Triple[T]) At(i int) T {
	return t[geom.CircularIndex(i, 3)]
}

// Index of v in the triple, or -1 if it is absent.
func (t Triple[T]) Index(v T) int {
	for i, item := range t {
		if item == v {
			return i
		}
	}
	return -1
}

func (t Triple[T]) Contains(v T) bool {
	return t.Index(v) >= 0
}
