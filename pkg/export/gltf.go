// Package export writes raycast levels to glTF so they can be inspected in
// ordinary 3D viewers.
package export

import (
	"errors"
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/raycast/pkg/grid"
	"github.com/taigrr/raycast/pkg/render"
)

var ErrBadOptions = errors.New("export: wall height and cell size must be positive")

// Options control the extruded geometry.
type Options struct {
	WallHeight float64
	CellSize   float64
	Palette    render.Palette
}

// DefaultOptions extrudes unit cubes coloured with the default palette.
func DefaultOptions() Options {
	return Options{WallHeight: 1, CellSize: 1, Palette: render.DefaultPalette()}
}

// meshBuilder accumulates triangles for one material.
type meshBuilder struct {
	positions [][3]float32
	normals   [][3]float32
	indices   []uint32
}

// quad appends a four-corner face, ordering the triangles so they wind
// counter-clockwise when seen from the side n points to.
func (b *meshBuilder) quad(c [4][3]float32, n [3]float32) {
	base := uint32(len(b.positions))
	for _, p := range c {
		b.positions = append(b.positions, p)
		b.normals = append(b.normals, n)
	}
	e1 := sub(c[1], c[0])
	e2 := sub(c[2], c[0])
	if dot(cross(e1, e2), n) >= 0 {
		b.indices = append(b.indices, base, base+1, base+2, base, base+2, base+3)
	} else {
		b.indices = append(b.indices, base, base+2, base+1, base, base+3, base+2)
	}
}

// open reports whether a wall face towards (x, y) is visible.
func open(m *grid.Map, x, y int) bool {
	return !m.InBounds(x, y) || m.At(x, y) == grid.Empty
}

// Build extrudes every wall cell of m into a prism. Map x maps to glTF X,
// map y to glTF Z and wall height to Y. Faces shared by two walls are
// skipped. Each tile material becomes one primitive.
func Build(m *grid.Map, opts Options) (*gltf.Document, error) {
	if opts.WallHeight <= 0 || opts.CellSize <= 0 {
		return nil, ErrBadOptions
	}

	builders := make(map[grid.Tile]*meshBuilder)
	s := float32(opts.CellSize)
	h := float32(opts.WallHeight)

	for y := range m.Rows() {
		for x := range m.Cols() {
			t := m.At(x, y)
			if t == grid.Empty {
				continue
			}
			b := builders[t]
			if b == nil {
				b = &meshBuilder{}
				builders[t] = b
			}

			x0, x1 := float32(x)*s, float32(x+1)*s
			z0, z1 := float32(y)*s, float32(y+1)*s

			if open(m, x-1, y) {
				b.quad([4][3]float32{{x0, 0, z0}, {x0, 0, z1}, {x0, h, z1}, {x0, h, z0}}, [3]float32{-1, 0, 0})
			}
			if open(m, x+1, y) {
				b.quad([4][3]float32{{x1, 0, z0}, {x1, h, z0}, {x1, h, z1}, {x1, 0, z1}}, [3]float32{1, 0, 0})
			}
			if open(m, x, y-1) {
				b.quad([4][3]float32{{x0, 0, z0}, {x1, 0, z0}, {x1, h, z0}, {x0, h, z0}}, [3]float32{0, 0, -1})
			}
			if open(m, x, y+1) {
				b.quad([4][3]float32{{x0, 0, z1}, {x0, h, z1}, {x1, h, z1}, {x1, 0, z1}}, [3]float32{0, 0, 1})
			}
			b.quad([4][3]float32{{x0, h, z0}, {x1, h, z0}, {x1, h, z1}, {x0, h, z1}}, [3]float32{0, 1, 0})
		}
	}

	doc := gltf.NewDocument()
	mesh := &gltf.Mesh{Name: "level"}

	for _, t := range m.Materials() {
		b := builders[t]
		c := opts.Palette.Color(t)
		doc.Materials = append(doc.Materials, &gltf.Material{
			Name: fmt.Sprintf("tile-%d", t),
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
				BaseColorFactor: &[4]float64{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255, 1},
				MetallicFactor:  gltf.Float(0),
				RoughnessFactor: gltf.Float(1),
			},
		})

		mesh.Primitives = append(mesh.Primitives, &gltf.Primitive{
			Mode:    gltf.PrimitiveTriangles,
			Indices: gltf.Index(modeler.WriteIndices(doc, b.indices)),
			Attributes: map[string]int{
				gltf.POSITION: modeler.WritePosition(doc, b.positions),
				gltf.NORMAL:   modeler.WriteNormal(doc, b.normals),
			},
			Material: gltf.Index(len(doc.Materials) - 1),
		})
	}

	doc.Meshes = append(doc.Meshes, mesh)
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: "level", Mesh: gltf.Index(len(doc.Meshes) - 1)})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	return doc, nil
}

// ExportGLB builds the level and writes it to path as binary glTF.
func ExportGLB(m *grid.Map, path string, opts Options) error {
	doc, err := Build(m, opts)
	if err != nil {
		return err
	}
	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("save glb: %w", err)
	}
	return nil
}

func sub(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func dot(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}
