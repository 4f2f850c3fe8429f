// Package models provides the mesh representation consumed by the UV island
// segmenter, plus loaders that produce it.
package models

import (
	"github.com/taigrr/uvpaint/pkg/math3d"
)

// Mesh is a loaded model: a named list of sub-meshes. Path identifies the
// source the mesh was loaded from and is used as its cache identity.
type Mesh struct {
	Name      string
	Path      string
	SubMeshes []SubMesh

	// Bounding box of all positions (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// SubMesh is one triangulated primitive. Triangles index into both Positions
// and UVs, the way an indexed glTF primitive shares one index buffer across
// its attributes. UVs is nil when the primitive has no TEXCOORD_0.
type SubMesh struct {
	Name      string
	Positions []math3d.Vec3
	UVs       []math3d.Vec2
	Triangles [][3]int
}

// HasUV reports whether the sub-mesh carries a UV attribute.
func (s *SubMesh) HasUV() bool {
	return len(s.UVs) > 0
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:      name,
		SubMeshes: make([]SubMesh, 0),
	}
}

// AddSubMesh appends a sub-mesh and returns its index.
func (m *Mesh) AddSubMesh(s SubMesh) int {
	m.SubMeshes = append(m.SubMeshes, s)
	return len(m.SubMeshes) - 1
}

// CalculateBounds computes the axis-aligned bounding box over every sub-mesh.
func (m *Mesh) CalculateBounds() {
	first := true
	for _, s := range m.SubMeshes {
		for _, p := range s.Positions {
			if first {
				m.BoundsMin, m.BoundsMax = p, p
				first = false
				continue
			}
			m.BoundsMin = m.BoundsMin.Min(p)
			m.BoundsMax = m.BoundsMax.Max(p)
		}
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles across all sub-meshes.
func (m *Mesh) TriangleCount() int {
	n := 0
	for _, s := range m.SubMeshes {
		n += len(s.Triangles)
	}
	return n
}

// VertexCount returns the number of vertices across all sub-meshes.
func (m *Mesh) VertexCount() int {
	n := 0
	for _, s := range m.SubMeshes {
		n += len(s.Positions)
	}
	return n
}

// UVSubMeshCount returns how many sub-meshes carry UVs.
func (m *Mesh) UVSubMeshCount() int {
	n := 0
	for i := range m.SubMeshes {
		if m.SubMeshes[i].HasUV() {
			n++
		}
	}
	return n
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Path:      m.Path,
		SubMeshes: make([]SubMesh, len(m.SubMeshes)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	for i, s := range m.SubMeshes {
		c := SubMesh{Name: s.Name}
		c.Positions = append([]math3d.Vec3(nil), s.Positions...)
		if s.UVs != nil {
			c.UVs = append([]math3d.Vec2(nil), s.UVs...)
		}
		c.Triangles = append([][3]int(nil), s.Triangles...)
		clone.SubMeshes[i] = c
	}
	return clone
}
