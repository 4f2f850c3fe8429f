// Package uvisland segments a mesh's UV layout into islands, the connected
// charts formed by triangles that share UV vertices, and resolves UV points
// back to the island under them.
package uvisland

import (
	"github.com/taigrr/uvpaint/pkg/math3d"
	"github.com/taigrr/uvpaint/pkg/models"
	"go.uber.org/zap"
)

// Region labels derived from an island's centroid.
const (
	LabelUpper = "upper region"
	LabelLeft  = "left region"
	LabelRight = "right region"
	LabelBody  = "body/front region"
)

// Island is one connected UV chart of a sub-mesh. Triangles hold indices into
// UVs, which is shared with the source sub-mesh and must not be modified.
type Island struct {
	ID        int
	Triangles [][3]int
	UVs       []math3d.Vec2
	Centroid  math3d.Vec2
	Min       math3d.Vec2
	Max       math3d.Vec2
	MeshName  string
	Label     string
}

// Contains reports whether (u, v) lies in the island's bounding box.
func (i *Island) Contains(u, v float64) bool {
	return u >= i.Min.X && u <= i.Max.X && v >= i.Min.Y && v <= i.Max.Y
}

// Option configures Build and Cache.
type Option func(*options)

type options struct {
	log *zap.Logger
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Build segments every sub-mesh with UVs into islands. Triangles are
// connected when they share a UV index. Island IDs start at 1 and follow
// sub-mesh order, then the first triangle of each component, so the same
// mesh always yields the same IDs.
func Build(mesh *models.Mesh, opts ...Option) []Island {
	o := buildOptions(opts)
	var islands []Island
	if mesh == nil {
		return islands
	}

	for si := range mesh.SubMeshes {
		sub := &mesh.SubMeshes[si]
		if !sub.HasUV() {
			o.log.Debug("sub-mesh has no uvs", zap.String("mesh", sub.Name))
			continue
		}
		islands = appendSubMesh(islands, sub, o.log)
	}

	o.log.Info("uv islands built",
		zap.String("mesh", mesh.Name),
		zap.Int("islands", len(islands)),
		zap.Int("submeshes", len(mesh.SubMeshes)))
	return islands
}

func appendSubMesh(islands []Island, sub *models.SubMesh, log *zap.Logger) []Island {
	uvs := sub.UVs
	tris := make([][3]int, 0, len(sub.Triangles))
	dropped := 0
	for _, tri := range sub.Triangles {
		if !inRange(tri, len(uvs)) {
			dropped++
			continue
		}
		tris = append(tris, tri)
	}
	if dropped > 0 {
		log.Warn("dropped triangles with out of range uv indices",
			zap.String("mesh", sub.Name), zap.Int("count", dropped))
	}

	ds := NewDisjointSet(len(tris))
	owner := make([]int, len(uvs))
	for i := range owner {
		owner[i] = -1
	}
	for ti, tri := range tris {
		for _, vi := range tri {
			if owner[vi] < 0 {
				owner[vi] = ti
				continue
			}
			ds.Union(owner[vi], ti)
		}
	}

	// Components in order of their lowest triangle index.
	slot := make(map[int]int)
	first := len(islands)
	for ti, tri := range tris {
		root := ds.Find(ti)
		idx, ok := slot[root]
		if !ok {
			idx = len(islands)
			slot[root] = idx
			islands = append(islands, Island{
				ID:       idx + 1,
				UVs:      uvs,
				MeshName: sub.Name,
			})
		}
		islands[idx].Triangles = append(islands[idx].Triangles, tri)
	}

	for i := first; i < len(islands); i++ {
		summarize(&islands[i])
	}
	return islands
}

func inRange(tri [3]int, n int) bool {
	for _, v := range tri {
		if v < 0 || v >= n {
			return false
		}
	}
	return true
}

// summarize fills the centroid (mean of triangle centroids), bounding box and
// label.
func summarize(is *Island) {
	var sum math3d.Vec2
	first := true
	for _, tri := range is.Triangles {
		a, b, c := is.UVs[tri[0]], is.UVs[tri[1]], is.UVs[tri[2]]
		sum = sum.Add(a.Add(b).Add(c).Scale(1.0 / 3))
		for _, p := range [3]math3d.Vec2{a, b, c} {
			if first {
				is.Min, is.Max = p, p
				first = false
				continue
			}
			is.Min = is.Min.Min(p)
			is.Max = is.Max.Max(p)
		}
	}
	if n := len(is.Triangles); n > 0 {
		is.Centroid = sum.Scale(1 / float64(n))
	} else {
		is.Centroid = math3d.V2(0.5, 0.5)
	}
	is.Label = Label(is.Centroid)
}

// Label names the region a centroid falls in.
func Label(c math3d.Vec2) string {
	switch {
	case c.Y > 0.6:
		return LabelUpper
	case c.X < 0.33:
		return LabelLeft
	case c.X > 0.66:
		return LabelRight
	default:
		return LabelBody
	}
}
