package uvisland

import (
	"math"
)

// DefaultMeshName is reported by Isolate for islands of unnamed meshes.
const DefaultMeshName = "Mesh"

// Picker resolves UV points to islands. It is immutable and safe for
// concurrent use.
type Picker struct {
	islands []Island
	byID    map[int]int
}

// NewPicker indexes islands for picking. The slice is retained.
func NewPicker(islands []Island) *Picker {
	p := &Picker{
		islands: islands,
		byID:    make(map[int]int, len(islands)),
	}
	for i, is := range islands {
		p.byID[is.ID] = i
	}
	return p
}

// Pick returns the ID of the first island, in declaration order, with a
// triangle containing (u, v). Points on an edge count as inside.
func (p *Picker) Pick(u, v float64) (int, bool) {
	if math.IsNaN(u) || math.IsNaN(v) {
		return 0, false
	}
	for i := range p.islands {
		is := &p.islands[i]
		if !is.Contains(u, v) {
			continue
		}
		for _, tri := range is.Triangles {
			if inTriangle(is, tri, u, v) {
				return is.ID, true
			}
		}
	}
	return 0, false
}

// inTriangle is the barycentric point test. Degenerate triangles never
// contain anything.
func inTriangle(is *Island, tri [3]int, px, py float64) bool {
	a, b, c := is.UVs[tri[0]], is.UVs[tri[1]], is.UVs[tri[2]]

	v0x, v0y := c.X-a.X, c.Y-a.Y
	v1x, v1y := b.X-a.X, b.Y-a.Y
	v2x, v2y := px-a.X, py-a.Y

	dot00 := v0x*v0x + v0y*v0y
	dot01 := v0x*v1x + v0y*v1y
	dot02 := v0x*v2x + v0y*v2y
	dot11 := v1x*v1x + v1y*v1y
	dot12 := v1x*v2x + v1y*v2y

	den := dot00*dot11 - dot01*dot01
	if dot00 == 0 || dot11 == 0 || den <= 1e-12*dot00*dot11 {
		return false
	}
	invDen := 1 / math.Max(1e-12, den)
	s := (dot11*dot02 - dot01*dot12) * invDen
	t := (dot00*dot12 - dot01*dot02) * invDen
	return s >= 0 && t >= 0 && s+t <= 1
}

// Island returns the island with the given ID.
func (p *Picker) Island(id int) (Island, bool) {
	i, ok := p.byID[id]
	if !ok {
		return Island{}, false
	}
	return p.islands[i], true
}

// Islands returns all islands in ID order.
func (p *Picker) Islands() []Island {
	out := make([]Island, len(p.islands))
	copy(out, p.islands)
	return out
}

// Len returns the number of islands.
func (p *Picker) Len() int {
	return len(p.islands)
}

// Isolate returns the name of the mesh owning island id, for a viewer to
// show that mesh alone.
func (p *Picker) Isolate(id int) (string, bool) {
	is, ok := p.Island(id)
	if !ok {
		return "", false
	}
	if is.MeshName == "" {
		return DefaultMeshName, true
	}
	return is.MeshName, true
}
