package advanced

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Feature kinds in snapshots, under the "kind" property.
const (
	KindTriangle   = "triangle"
	KindConstraint = "constraint"
	KindFront      = "front"
)

// GeoJSON exports the finished mesh: a polygon per triangle and a line string
// per constrained edge.
func (tr *Triangulation) GeoJSON() (*geojson.FeatureCollection, error) {
	if err := tr.ready(); err != nil {
		return nil, err
	}
	return tr.snapshot(), nil
}

// While sweeping, the front is part of the snapshot as well.
func (tr *Triangulation) snapshot() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, id := range tr.Triangles() {
		s := tr.triangles[id].Sites
		ring := orb.Ring{tr.point(s[0]), tr.point(s[1]), tr.point(s[2]), tr.point(s[0])}
		f := geojson.NewFeature(orb.Polygon{ring})
		f.Properties["kind"] = KindTriangle
		f.Properties["id"] = int(id)
		fc.Append(f)
	}
	for i := range tr.edges {
		edge := &tr.edges[i]
		if !edge.alive || !edge.Constrained {
			continue
		}
		f := geojson.NewFeature(orb.LineString{tr.point(edge.Upper), tr.point(edge.Lower)})
		f.Properties["kind"] = KindConstraint
		f.Properties["id"] = i
		f.Properties["meshed"] = edge.TriangleCount() > 0
		fc.Append(f)
	}
	if tr.front != nil {
		for _, el := range tr.front.elements() {
			f := geojson.NewFeature(orb.LineString{tr.point(el.Left), tr.point(el.Right)})
			f.Properties["kind"] = KindFront
			f.Properties["id"] = int(el.Edge)
			fc.Append(f)
		}
	}
	return fc
}
