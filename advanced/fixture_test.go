package advanced

import (
	"embed"
	"log"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/JoshVarga/svgparser"
	"github.com/microsoft/automatic-graph-layout-sub018/internal/geom"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"
)

// This file parses the svg fixtures into inputs. This is not a full (or even
// correct) svg parser. Every polygon becomes a closed obstacle and every
// polyline an open one. If anything goes wrong, it panics.
//
// Fixtures are available by name in the fixtures/ directory, sans extension.

//go:embed fixtures
var fixtures embed.FS

func LoadFixture(name string) Input {
	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	if err != nil {
		log.Fatalf("Could not load fixture %q: %v", name, err)
	}

	defer fixture.Close()
	rootEl, err := svgparser.Parse(fixture, true)
	if err != nil {
		log.Fatalf("Failed to parse fixture %q: %v", name, err)
	}

	var input Input
	for _, el := range rootEl.FindAll("polygon") {
		input.Obstacles = append(input.Obstacles, &Polyline{Points: parseFixturePoints(el.Attributes["points"]), Closed: true})
	}
	for _, el := range rootEl.FindAll("polyline") {
		input.Obstacles = append(input.Obstacles, &Polyline{Points: parseFixturePoints(el.Attributes["points"])})
	}
	if len(input.Obstacles) == 0 {
		log.Fatalf("No obstacles found in fixture %q", name)
	}
	return input
}

func parseFixturePoints(pointString string) []orb.Point {
	var points []orb.Point
	for _, pointString := range strings.Fields(pointString) {
		pointStrings := strings.Split(pointString, ",")
		if len(pointStrings) != 2 {
			log.Fatalf("Invalid point string %q", pointString)
		}
		x, err := strconv.ParseFloat(pointStrings[0], 64)
		if err != nil {
			log.Fatalf("Invalid x value %q: %v", pointStrings[0], err)
		}
		y, err := strconv.ParseFloat(pointStrings[1], 64)
		if err != nil {
			log.Fatalf("Invalid y value %q: %v", pointStrings[1], err)
		}
		points = append(points, orb.Point{x, y})
	}
	return points
}

// Some ad hoc code specified fixtures
func star(x, y, outerRadius, innerRadius float64) *Polyline {
	var points []orb.Point
	for i := 0; i < 10; i++ {
		r := outerRadius
		if i%2 == 1 {
			r = innerRadius
		}
		angle := 2 * math.Pi * float64(i) / 10
		points = append(points, orb.Point{x + r*math.Cos(angle), y + r*math.Sin(angle)})
	}
	return &Polyline{Points: points, Closed: true}
}

func SimpleStar() Input {
	return Input{Obstacles: []*Polyline{star(0, 0, 5, 2)}}
}

func SquareWithHole() Input {
	return Input{Obstacles: []*Polyline{
		{Points: []orb.Point{{-5, -5}, {5, -5}, {5, 5}, {-5, 5}}, Closed: true},
		{Points: []orb.Point{{-2, -2}, {-2, 2}, {2, 2}, {2, -2}}, Closed: true},
	}}
}

func StarOutline() Input {
	return Input{Obstacles: []*Polyline{
		star(0, 0, 10, 5),
		star(0, 0, 8, 3),
	}}
}

func StarStripes() Input {
	// Multiple inset stars
	var input Input
	const outerRadius = 10
	const indentScale = 0.7
	const gapScale = 0.9
	scale := 1.0
	for i := 0; i < 20; i++ {
		r := outerRadius * scale
		input.Obstacles = append(input.Obstacles, star(0, 0, r, r*indentScale))
		scale *= gapScale
	}
	return input
}

// Sites scattered uniformly over a square, the same for every run.
func RandomSites(seed int64, n int, size float64) Input {
	rng := rand.New(rand.NewSource(seed))
	input := Input{Sites: make([]SiteInput, n)}
	for i := range input.Sites {
		input.Sites[i] = SiteInput{Point: orb.Point{rng.Float64() * size, rng.Float64() * size}}
	}
	return input
}

// Sites snapped to integer coordinates, so level rows, collinear runs and
// duplicates are common.
func RandomGridSites(seed int64, n, size int) Input {
	rng := rand.New(rand.NewSource(seed))
	input := Input{Sites: make([]SiteInput, n)}
	for i := range input.Sites {
		input.Sites[i] = SiteInput{Point: orb.Point{float64(rng.Intn(size + 1)), float64(rng.Intn(size + 1))}}
	}
	return input
}

// Add up to n segments joining random pairs of the input's sites. A candidate
// is dropped if it crosses or overlaps a segment already taken, or if a site
// lies on it, so the result passes WithValidation.
func AddRandomSegments(seed int64, input Input, n int) Input {
	rng := rand.New(rand.NewSource(seed))
	points := make([]orb.Point, len(input.Sites))
	for i, s := range input.Sites {
		points[i] = s.Point
	}
	if len(points) < 2 {
		return input
	}
	for tries := 0; tries < 20*n && len(input.Segments) < n; tries++ {
		a, b := points[rng.Intn(len(points))], points[rng.Intn(len(points))]
		if a == b || !segmentFits(input.Segments, points, a, b) {
			continue
		}
		input.Segments = append(input.Segments, Segment{A: a, B: b})
	}
	return input
}

func segmentFits(segments []Segment, points []orb.Point, a, b orb.Point) bool {
	for _, p := range points {
		if geom.OnSegmentInterior(p, a, b) {
			return false
		}
	}
	for _, seg := range segments {
		if (seg.A == a && seg.B == b) || (seg.A == b && seg.B == a) ||
			geom.SegmentsCross(seg.A, seg.B, a, b) ||
			geom.OnSegmentInterior(seg.A, a, b) || geom.OnSegmentInterior(seg.B, a, b) ||
			geom.OnSegmentInterior(a, seg.A, seg.B) || geom.OnSegmentInterior(b, seg.A, seg.B) {
			return false
		}
	}
	return true
}

// Sites on an integer grid: every row is level and every square cocircular.
func Grid(columns, rows int) Input {
	var input Input
	for y := 0; y < rows; y++ {
		for x := 0; x < columns; x++ {
			input.Sites = append(input.Sites, SiteInput{Point: orb.Point{float64(x), float64(y)}})
		}
	}
	return input
}

func mustRun(t *testing.T, input Input, opts ...Option) *Triangulation {
	t.Helper()
	tr, err := New(input, opts...)
	require.NoError(t, err)
	require.NoError(t, tr.Run())
	return tr
}

// Every input segment has to come out as a constrained edge.
func AssertSegmentsKept(t *testing.T, tr *Triangulation, input Input) {
	t.Helper()
	for _, seg := range input.Segments {
		edge := tr.edgeBetweenPoints(t, seg.A, seg.B)
		require.True(t, edge.Constrained, "segment %v-%v is not constrained", seg.A, seg.B)
	}
}

// Helper to check that a finished triangulation is valid. On top of
// Validate, the rules are:
// 1. Every real site is a corner of some triangle, unless the sites span no
// area at all.
// 2. The sum of the areas of all triangles is the area of the convex hull.
// 3. No triangle uses a sentinel.
func AssertValidTriangulation(t *testing.T, tr *Triangulation) {
	t.Helper()
	require.NoError(t, tr.Validate())

	hull := geom.ConvexHull(tr.realPoints())
	if hull == nil {
		require.Empty(t, tr.Triangles())
		return
	}
	var hullArea float64
	for i := range hull {
		hullArea += geom.Cross(orb.Point{}, tr.point(SiteID(hull[i])), tr.point(SiteID(hull[geom.CircularIndex(i+1, len(hull))])))
	}
	hullArea /= 2

	used := make(map[SiteID]struct{})
	var area float64
	for _, id := range tr.Triangles() {
		s := tr.Triangle(id).Sites
		for _, site := range s {
			require.False(t, tr.isSentinel(site), "triangle %d uses a sentinel", id)
			used[site] = struct{}{}
		}
		area += geom.Cross(tr.point(s[0]), tr.point(s[1]), tr.point(s[2])) / 2
	}
	for _, s := range tr.Sites() {
		_, ok := used[s]
		require.True(t, ok, "site %d %v is not in any triangle", s, tr.point(s))
	}
	require.InDelta(t, hullArea, area, 1e-6*math.Max(1, hullArea), "sum of the triangle areas must be the hull area")
}
