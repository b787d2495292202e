package advanced

import (
	"fmt"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/microsoft/automatic-graph-layout-sub018/dbg"
)

// DescribeTriangle renders a triangle with readable names for its handles.
// Constrained edges are red, boundary edges yellow.
func (tr *Triangulation) DescribeTriangle(t TriangleID) string {
	tri := &tr.triangles[t]
	var b strings.Builder
	fmt.Fprintf(&b, "%s ", aurora.Bold(dbg.Name(t)))
	for i, s := range tri.Sites {
		e := tri.Edges[i]
		fmt.Fprintf(&b, "%s%v ", aurora.Cyan(dbg.Name(s)), tr.point(s))
		name := dbg.Name(e)
		switch {
		case tr.edges[e].Constrained:
			b.WriteString(aurora.Red("=" + name + "=").String())
		case tr.edges[e].TriangleCount() == 1:
			b.WriteString(aurora.Yellow("-" + name + "-").String())
		default:
			b.WriteString("-" + name + "-")
		}
		b.WriteString(" ")
	}
	return strings.TrimSpace(b.String())
}
