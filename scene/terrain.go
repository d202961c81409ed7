package scene

import (
	"fmt"

	"github.com/achilleasa/kdtrace/geometry"
	"github.com/achilleasa/kdtrace/types"
	perlin "github.com/aquilax/go-perlin"
	"github.com/pkg/errors"
)

var ErrInvalidTerrainSize = errors.New("scene: terrain size and scale must be positive")

// Options for generating a heightfield mesh.
type TerrainOptions struct {
	// Number of grid cells along each side.
	Size int

	// World space size of a grid cell.
	Scale float32

	// Peak displacement along the Y axis.
	Height float32

	// Noise generator settings.
	Seed      int64
	Alpha     float64
	Beta      float64
	Octaves   int32
	Frequency float64

	// Number of subdivision passes applied after the grid is built. Each
	// pass re-samples the heightfield at the new vertices.
	Subdivisions int
}

// Get the default terrain options.
func DefaultTerrainOptions() TerrainOptions {
	return TerrainOptions{
		Size:      32,
		Scale:     1,
		Height:    4,
		Seed:      1,
		Alpha:     2,
		Beta:      2,
		Octaves:   3,
		Frequency: 0.1,
	}
}

type heightfield struct {
	noise     *perlin.Perlin
	height    float32
	frequency float64
	delta     float32
}

func (hf *heightfield) sample(x, z float32) float32 {
	return hf.height * float32(hf.noise.Noise2D(float64(x)*hf.frequency, float64(z)*hf.frequency))
}

// Get the surface normal at (x, z) using central differences.
func (hf *heightfield) normal(x, z float32) types.Vec3 {
	dx := hf.sample(x+hf.delta, z) - hf.sample(x-hf.delta, z)
	dz := hf.sample(x, z+hf.delta) - hf.sample(x, z-hf.delta)
	return types.Vec3{-dx, 2 * hf.delta, -dz}.Normalize()
}

// Move a vertex onto the heightfield.
func (hf *heightfield) project(vert *geometry.Vertex) {
	x, z := vert.Position[0], vert.Position[2]
	vert.Position[1] = hf.sample(x, z)
	vert.Normal = hf.normal(x, z)
}

// Generate a perlin-noise heightfield centered at the origin of the XZ plane.
// All triangles face +Y.
func GenerateTerrain(opts TerrainOptions) (*Mesh, error) {
	if opts.Size < 1 || opts.Scale <= 0 {
		return nil, errors.Wrapf(ErrInvalidTerrainSize, "size %d, scale %f", opts.Size, opts.Scale)
	}

	hf := &heightfield{
		noise:     perlin.NewPerlin(opts.Alpha, opts.Beta, opts.Octaves, opts.Seed),
		height:    opts.Height,
		frequency: opts.Frequency,
		delta:     0.5 * opts.Scale,
	}

	half := 0.5 * float32(opts.Size) * opts.Scale
	vertexAt := func(i, j int) geometry.Vertex {
		vert := geometry.Vertex{
			Position: types.Vec3{float32(i)*opts.Scale - half, 0, float32(j)*opts.Scale - half},
			UV:       types.Vec2{float32(i) / float32(opts.Size), float32(j) / float32(opts.Size)},
		}
		hf.project(&vert)
		return vert
	}

	tris := make([]geometry.Triangle, 0, 2*opts.Size*opts.Size)
	for i := 0; i < opts.Size; i++ {
		for j := 0; j < opts.Size; j++ {
			p00 := vertexAt(i, j)
			p01 := vertexAt(i, j+1)
			p10 := vertexAt(i+1, j)
			p11 := vertexAt(i+1, j+1)
			tris = append(tris,
				geometry.Triangle{Vertices: [3]geometry.Vertex{p00, p01, p10}},
				geometry.Triangle{Vertices: [3]geometry.Vertex{p10, p01, p11}},
			)
		}
	}

	mesh, err := NewMesh(fmt.Sprintf("terrain-%d", opts.Seed), tris)
	if err != nil {
		return nil, err
	}
	if opts.Subdivisions < 1 {
		return mesh, nil
	}

	mesh = mesh.Subdivide(opts.Subdivisions)
	for i := range mesh.triangles {
		for j := range mesh.triangles[i].Vertices {
			hf.project(&mesh.triangles[i].Vertices[j])
		}
	}
	mesh.bbox = geometry.ComputeAABB(mesh.triangles)
	return mesh, nil
}
