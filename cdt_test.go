package cdt

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Smoke tests. The internals are tested in the advanced package.
func TestTriangulatePoints(t *testing.T) {
	triangles, err := TriangulatePoints(
		orb.Point{1, -1},
		orb.Point{1, 1},
		orb.Point{-1, 1},
		orb.Point{-1, -1},
	)
	assert.NoError(t, err)
	assert.Len(t, triangles, 2)
}

func TestTriangulate(t *testing.T) {
	square := &Polyline{
		Points: []orb.Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}},
		Closed: true,
	}
	tr, err := Triangulate(Input{
		Sites:     []SiteInput{{Point: orb.Point{2, 2}}},
		Obstacles: []*Polyline{square},
	}, WithValidation(true))
	require.NoError(t, err)
	require.NoError(t, tr.Validate())
	assert.Len(t, tr.Triangles(), 4)

	center, err := tr.FindSite(orb.Point{2, 2})
	require.NoError(t, err)
	assert.Empty(t, tr.Site(center).Owners)
}
