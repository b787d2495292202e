package advanced

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A front over the chain (0,0) -> (1,1) -> (3,0) -> (4,2)
func testFront(t *testing.T) (*Triangulation, *front, []SiteID) {
	tr, err := New(Input{Sites: []SiteInput{
		{Point: orb.Point{0, 0}},
		{Point: orb.Point{1, 1}},
		{Point: orb.Point{3, 0}},
		{Point: orb.Point{4, 2}},
	}})
	require.NoError(t, err)
	sites := tr.Sites()
	f := newFront(tr)
	for i := 0; i+1 < len(sites); i++ {
		f.insert(sites[i], sites[i+1], tr.edgeFor(sites[i], sites[i+1]))
	}
	return tr, f, sites
}

func TestFront_Neighbors(t *testing.T) {
	_, f, sites := testFront(t)
	require.Equal(t, 3, f.len())

	middle, ok := f.find(sites[1])
	require.True(t, ok)
	assert.Equal(t, sites[2], middle.Right)

	prev, ok := f.prev(middle)
	require.True(t, ok)
	assert.Equal(t, sites[0], prev.Left)

	next, ok := f.next(middle)
	require.True(t, ok)
	assert.Equal(t, sites[2], next.Left)

	_, ok = f.prev(prev)
	assert.False(t, ok)
	_, ok = f.next(next)
	assert.False(t, ok)
}

func TestFront_ProjectToFront(t *testing.T) {
	_, f, sites := testFront(t)
	assert.Equal(t, sites[0], f.projectToFront(0.5).Left)
	assert.Equal(t, sites[1], f.projectToFront(1).Left)
	assert.Equal(t, sites[2], f.projectToFront(3.5).Left)

	assert.Panics(t, func() {
		f.projectToFront(-1)
	})
}

func TestFront_HasEdge(t *testing.T) {
	tr, f, sites := testFront(t)
	assert.True(t, f.hasEdge(tr.mustEdge(sites[1], sites[2])))
	assert.False(t, f.hasEdge(tr.edgeFor(sites[0], sites[2])))

	el, _ := f.find(sites[1])
	f.remove(el)
	assert.False(t, f.hasEdge(el.Edge))
	assert.Equal(t, []SiteID{sites[0], sites[2]}, []SiteID{f.elements()[0].Left, f.elements()[1].Left})
}

func TestFront_InsertTwice(t *testing.T) {
	tr, f, sites := testFront(t)
	assert.Panics(t, func() {
		f.insert(sites[0], sites[2], tr.edgeFor(sites[0], sites[2]))
	})
}
