package advanced

import (
	"math"
	"sort"
	"sync"

	"github.com/microsoft/automatic-graph-layout-sub018/internal/geom"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// SiteInput is an isolated point with an optional owner tag.
type SiteInput struct {
	Point orb.Point
	Owner any
}

// A Polyline obstacle. Its points and edges are owned by the *Polyline
// itself. Closed polylines have an edge from the last point back to the
// first.
type Polyline struct {
	Points []orb.Point
	Closed bool
}

// A Segment that must appear in the mesh.
type Segment struct {
	A, B orb.Point
}

type Input struct {
	Sites     []SiteInput
	Obstacles []*Polyline
	Segments  []Segment
}

type runState int

const (
	stateNew runState = iota
	stateRunning
	stateDone
)

// Triangulation owns the sites, edges and triangles of one constrained
// Delaunay triangulation. Build it with New and compute the mesh with Run.
type Triangulation struct {
	opts options
	log  *zap.Logger

	sites     []Site
	edges     []Edge
	triangles []Triangle
	byPoint   map[orb.Point]SiteID

	realSites     int
	sentinels     [2]SiteID
	triangleCount int
	inEdgesBuilt  bool
	state         runState

	front *front
	step  int

	indexOnce sync.Once
	index     *triangleIndex
}

// New ingests the input: coincident points become one site with the union of
// their owners, and every obstacle edge and segment becomes a constrained
// edge.
func New(input Input, opts ...Option) (*Triangulation, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	tr := &Triangulation{
		opts:      o,
		log:       o.logger,
		byPoint:   make(map[orb.Point]SiteID),
		sentinels: [2]SiteID{NoSite, NoSite},
	}

	for _, site := range input.Sites {
		if !finite(site.Point) {
			return nil, errors.Wrapf(ErrInvalidPoint, "site %v", site.Point)
		}
		tr.addSite(site.Point, site.Owner)
	}
	for i, poly := range input.Obstacles {
		if poly == nil {
			continue
		}
		n := len(poly.Points)
		for j, p := range poly.Points {
			if !finite(p) {
				return nil, errors.Wrapf(ErrInvalidPoint, "obstacle %d point %d", i, j)
			}
		}
		if n == 1 {
			tr.addSite(poly.Points[0], poly)
			continue
		}
		last := n - 1
		if poly.Closed && n > 2 {
			last = n
		}
		for j := 0; j < last; j++ {
			a, b := poly.Points[j], poly.Points[geom.CircularIndex(j+1, n)]
			if err := tr.addConstraint(a, b, poly); err != nil {
				return nil, errors.Wrapf(err, "obstacle %d edge %d", i, j)
			}
		}
	}
	for i, seg := range input.Segments {
		if !finite(seg.A) || !finite(seg.B) {
			return nil, errors.Wrapf(ErrInvalidPoint, "segment %d", i)
		}
		if err := tr.addConstraint(seg.A, seg.B, nil); err != nil {
			return nil, errors.Wrapf(err, "segment %d", i)
		}
	}
	tr.realSites = len(tr.sites)

	if o.validate {
		if err := tr.validateConstraints(); err != nil {
			return nil, err
		}
	}
	return tr, nil
}

func finite(p orb.Point) bool {
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (tr *Triangulation) addConstraint(a, b orb.Point, owner any) error {
	if a == b {
		return errors.Wrapf(ErrDegenerateSegment, "%v", a)
	}
	sa := tr.addSite(a, owner)
	sb := tr.addSite(b, owner)
	e := tr.edgeFor(sa, sb)
	edge := &tr.edges[e]
	edge.Constrained = true
	edge.Capacity = 0
	edge.ResidualCapacity = 0
	if edge.Owner == nil {
		edge.Owner = owner
	}
	return nil
}

// Quadratic checks of the constraint set: no two constrained edges cross and
// no site sits inside a constrained edge.
func (tr *Triangulation) validateConstraints() error {
	var constrained []EdgeID
	for i := range tr.edges {
		if tr.edges[i].Constrained {
			constrained = append(constrained, EdgeID(i))
		}
	}
	for i, e := range constrained {
		a, b := tr.point(tr.edges[e].Upper), tr.point(tr.edges[e].Lower)
		for _, f := range constrained[i+1:] {
			c, d := tr.point(tr.edges[f].Upper), tr.point(tr.edges[f].Lower)
			if geom.SegmentsCross(a, b, c, d) {
				return errors.Wrapf(ErrCrossingConstraints, "%v-%v and %v-%v", a, b, c, d)
			}
		}
		for s := range tr.sites {
			if p := tr.sites[s].Point; geom.OnSegmentInterior(p, a, b) {
				return errors.Wrapf(ErrSiteOnConstraint, "site %v on %v-%v", p, a, b)
			}
		}
	}
	return nil
}

// Run computes the triangulation. Structural failures deep inside the sweep
// come back as errors.
func (tr *Triangulation) Run() (err error) {
	if tr.state != stateNew {
		return ErrAlreadyRun
	}
	tr.state = stateRunning
	defer func() {
		recoveredErr := HandleTriangulatePanicRecover(recover())
		if recoveredErr != nil {
			err = recoveredErr
			tr.log.Error("triangulation failed", zap.Error(err))
		}
		tr.front = nil
		tr.state = stateDone
	}()

	if tr.realSites == 0 {
		return nil
	}
	order := tr.sweepOrder()
	tr.addSentinels()
	tr.sweep(order)
	tr.finalize()

	tr.log.Info("triangulation done",
		zap.Int("sites", tr.realSites),
		zap.Int("edges", tr.liveEdgeCount()),
		zap.Int("triangles", tr.triangleCount),
	)
	return nil
}

// Real sites from lowest to highest in the "above" order. Of two level sites
// the right one is lower here, so it enters the sweep first.
func (tr *Triangulation) sweepOrder() []SiteID {
	order := make([]SiteID, tr.realSites)
	for i := range order {
		order[i] = SiteID(i)
	}
	sort.Slice(order, func(i, j int) bool {
		return geom.Below(tr.point(order[i]), tr.point(order[j]))
	})
	return order
}

// The two sentinels sit below the bounding box, a third of its size out to
// the left and right, so that they bracket every real site.
func (tr *Triangulation) addSentinels() {
	bound := orb.Bound{Min: tr.sites[0].Point, Max: tr.sites[0].Point}
	for _, s := range tr.sites[:tr.realSites] {
		bound = bound.Extend(s.Point)
	}
	dx := (bound.Max[0] - bound.Min[0]) / 3
	dy := (bound.Max[1] - bound.Min[1]) / 3
	if dx == 0 {
		dx = math.Max(dy, 1)
	}
	if dy == 0 {
		dy = dx
	}
	left := orb.Point{bound.Min[0] - dx, bound.Min[1] - dy}
	right := orb.Point{bound.Max[0] + dx, bound.Min[1] - dy}
	tr.sentinels[0] = tr.addSite(left, nil)
	tr.sentinels[1] = tr.addSite(right, nil)
}

func (tr *Triangulation) liveEdgeCount() int {
	n := 0
	for i := range tr.edges {
		if tr.edges[i].alive {
			n++
		}
	}
	return n
}
