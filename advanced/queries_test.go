package advanced

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/microsoft/automatic-graph-layout-sub018/internal/geom"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A kite split along its short diagonal:
//
//	        (4,1)
//	(0,0)     |     (10,0)
//	        (4,-1)
func kite(t *testing.T, wall bool) *Triangulation {
	input := sites(orb.Point{0, 0}, orb.Point{4, 1}, orb.Point{4, -1}, orb.Point{10, 0})
	if wall {
		input.Obstacles = []*Polyline{{Points: []orb.Point{{4, 1}, {4, -1}}}}
	}
	tr := mustRun(t, input)
	AssertValidTriangulation(t, tr)
	require.Len(t, tr.Triangles(), 2)
	return tr
}

func TestQueries_NotRun(t *testing.T) {
	tr, err := New(sites(orb.Point{0, 0}, orb.Point{1, 0}, orb.Point{0, 1}))
	require.NoError(t, err)

	_, ok := tr.Locate(orb.Point{0.1, 0.1})
	assert.False(t, ok)
	_, err = tr.ThreadFromSite(0, orb.Point{1, 1})
	assert.ErrorIs(t, err, ErrNotRun)
	_, err = tr.GeoJSON()
	assert.ErrorIs(t, err, ErrNotRun)
	assert.ErrorIs(t, tr.Validate(), ErrNotRun)
	assert.ErrorIs(t, tr.DrawPNG(filepath.Join(t.TempDir(), "mesh.png"), 1), ErrNotRun)
}

func TestFindSite(t *testing.T) {
	tr := kite(t, false)
	s, err := tr.FindSite(orb.Point{10, 0})
	require.NoError(t, err)
	assert.Equal(t, orb.Point{10, 0}, tr.Site(s).Point)

	_, err = tr.FindSite(orb.Point{10, 1e-3})
	assert.ErrorIs(t, err, ErrSiteNotFound)

	// Sentinels are not sites
	_, err = tr.FindSite(tr.point(tr.sentinels[0]))
	assert.ErrorIs(t, err, ErrSiteNotFound)
}

func TestLocate(t *testing.T) {
	tr := kite(t, false)

	left, ok := tr.Locate(orb.Point{2, 0})
	require.True(t, ok)
	assert.True(t, tr.Triangle(left).Sites.Contains(0))

	right, ok := tr.Locate(orb.Point{8, 0})
	require.True(t, ok)
	assert.True(t, tr.Triangle(right).Sites.Contains(3))
	assert.NotEqual(t, left, right)

	// On a corner
	_, ok = tr.Locate(orb.Point{4, 1})
	assert.True(t, ok)

	_, ok = tr.Locate(orb.Point{20, 20})
	assert.False(t, ok)
}

func TestLocate_Concurrent(t *testing.T) {
	tr := mustRun(t, RandomSites(21, 200, 100))
	points := RandomSites(22, 50, 100)

	var wg sync.WaitGroup
	for _, s := range points.Sites {
		wg.Add(1)
		go func(p orb.Point) {
			defer wg.Done()
			if id, ok := tr.Locate(p); ok {
				assert.True(t, tr.triangleContains(id, p))
			}
		}(s.Point)
	}
	wg.Wait()
}

func TestLocate_EveryCentroid(t *testing.T) {
	tr := mustRun(t, RandomSites(23, 150, 100))
	for _, id := range tr.Triangles() {
		s := tr.Triangle(id).Sites
		a, b, c := tr.point(s[0]), tr.point(s[1]), tr.point(s[2])
		centroid := orb.Point{(a[0] + b[0] + c[0]) / 3, (a[1] + b[1] + c[1]) / 3}
		found, ok := tr.Locate(centroid)
		require.True(t, ok)
		assert.Equal(t, id, found)
	}
}

func TestRestoreCapacities(t *testing.T) {
	tr := kite(t, true)
	var free, wall *Edge
	for _, e := range tr.Edges() {
		if tr.Edge(e).Constrained {
			wall = tr.Edge(e)
		} else {
			free = tr.Edge(e)
		}
	}
	require.NotNil(t, wall)
	require.NotNil(t, free)
	assert.Equal(t, 0, wall.Capacity)
	assert.Equal(t, DefaultEdgeCapacity, free.Capacity)

	free.ResidualCapacity -= 300
	tr.RestoreCapacities()
	assert.Equal(t, DefaultEdgeCapacity, free.ResidualCapacity)
	assert.Equal(t, 0, wall.ResidualCapacity)
}

func TestSetInEdges(t *testing.T) {
	tr := mustRun(t, RandomSites(31, 40, 10))
	tr.SetInEdges()
	for _, e := range tr.Edges() {
		edge := tr.Edge(e)
		assert.Contains(t, tr.Site(edge.Lower).InEdges, e)
		assert.Contains(t, tr.Site(edge.Upper).Edges, e)
	}
}

func TestThreadFromSite(t *testing.T) {
	t.Run("through an edge", func(t *testing.T) {
		tr := kite(t, false)
		from, _ := tr.FindSite(orb.Point{0, 0})
		pierced, err := tr.ThreadFromSite(from, orb.Point{8, 0})
		require.NoError(t, err)
		require.Len(t, pierced, 1)
		edge := tr.Edge(pierced[0])
		assert.ElementsMatch(t,
			[]orb.Point{{4, 1}, {4, -1}},
			[]orb.Point{tr.point(edge.Upper), tr.point(edge.Lower)},
		)
	})

	t.Run("owner aligned edges are skipped", func(t *testing.T) {
		tr := kite(t, true)
		from, _ := tr.FindSite(orb.Point{0, 0})
		pierced, err := tr.ThreadFromSite(from, orb.Point{8, 0})
		require.NoError(t, err)
		assert.Empty(t, pierced)
	})

	t.Run("through a vertex and out of the mesh", func(t *testing.T) {
		tr := kite(t, false)
		from, _ := tr.FindSite(orb.Point{0, 0})
		pierced, err := tr.ThreadFromSite(from, orb.Point{15, 0})
		require.NoError(t, err)
		assert.Len(t, pierced, 1)
	})

	t.Run("along an edge", func(t *testing.T) {
		tr := kite(t, false)
		from, _ := tr.FindSite(orb.Point{0, 0})
		pierced, err := tr.ThreadFromSite(from, orb.Point{2, 0.5})
		require.NoError(t, err)
		assert.Empty(t, pierced)
	})

	t.Run("bad site", func(t *testing.T) {
		tr := kite(t, false)
		_, err := tr.ThreadFromSite(SiteID(tr.realSites), orb.Point{1, 0})
		assert.ErrorIs(t, err, ErrSiteNotFound)
	})

	t.Run("random", func(t *testing.T) {
		tr := mustRun(t, RandomSites(41, 100, 100))
		from := tr.Sites()[0]
		target := orb.Point{50, 50}
		pierced, err := tr.ThreadFromSite(from, target)
		require.NoError(t, err)
		for _, e := range pierced {
			edge := tr.Edge(e)
			assert.True(t, geom.SegmentsCross(tr.point(from), target, tr.point(edge.Upper), tr.point(edge.Lower)),
				"edge %d is not crossed by the ray", e)
		}
	})
}

func TestGeoJSON(t *testing.T) {
	tr := kite(t, true)
	fc, err := tr.GeoJSON()
	require.NoError(t, err)

	kinds := make(map[string]int)
	for _, f := range fc.Features {
		kinds[f.Properties["kind"].(string)]++
	}
	assert.Equal(t, map[string]int{KindTriangle: 2, KindConstraint: 1}, kinds)

	data, err := fc.MarshalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind":"constraint"`)
}

func TestDebugOutput(t *testing.T) {
	tr := kite(t, true)
	for _, id := range tr.Triangles() {
		assert.NotEmpty(t, tr.DescribeTriangle(id))
	}

	path := filepath.Join(t.TempDir(), "mesh.png")
	require.NoError(t, tr.DrawPNG(path, 20))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())
}
