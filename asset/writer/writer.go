package writer

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/achilleasa/kdtrace/kdtree"
	"github.com/achilleasa/kdtrace/log"
	"github.com/achilleasa/kdtrace/scene"
	"github.com/achilleasa/kdtrace/types"
	"github.com/pkg/errors"
)

var logger = log.New("obj writer")

// Write a mesh in wavefront obj format. Every triangle gets its own
// position, uv and normal records so triangle order and primitive indices
// survive a read/write cycle.
func WriteMesh(w io.Writer, mesh *scene.Mesh) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# %d triangles\n", mesh.Len())
	fmt.Fprintf(bw, "o %s\n", mesh.Name)
	for _, tri := range mesh.Triangles() {
		for _, vert := range tri.Vertices {
			fmt.Fprintf(bw, "v %v %v %v\n", vert.Position[0], vert.Position[1], vert.Position[2])
			fmt.Fprintf(bw, "vt %v %v\n", vert.UV[0], vert.UV[1])
			fmt.Fprintf(bw, "vn %v %v %v\n", vert.Normal[0], vert.Normal[1], vert.Normal[2])
		}
		fmt.Fprintln(bw, "f -3/-3/-3 -2/-2/-2 -1/-1/-1")
	}

	return errors.Wrap(bw.Flush(), "writer: could not write mesh")
}

// Write debug lines in wavefront obj format. Line colors are emitted as
// vertex colors which most viewers understand.
func WriteDebugLines(w io.Writer, lines []kdtree.DebugLine) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# %d debug lines\n", len(lines))
	fmt.Fprintln(bw, "o debug")
	for _, line := range lines {
		for _, p := range [2]types.Vec3{line.From, line.To} {
			fmt.Fprintf(bw, "v %v %v %v %v %v %v\n", p[0], p[1], p[2], line.Color[0], line.Color[1], line.Color[2])
		}
		fmt.Fprintln(bw, "l -2 -1")
	}

	return errors.Wrap(bw.Flush(), "writer: could not write debug lines")
}

// Write a mesh to a file.
func WriteMeshFile(filename string, mesh *scene.Mesh) error {
	return writeFile(filename, func(w io.Writer) error { return WriteMesh(w, mesh) })
}

// Write debug lines to a file.
func WriteDebugLinesFile(filename string, lines []kdtree.DebugLine) error {
	return writeFile(filename, func(w io.Writer) error { return WriteDebugLines(w, lines) })
}

func writeFile(filename string, writeFn func(io.Writer) error) error {
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "writer")
	}

	if err = writeFn(f); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return errors.Wrapf(err, "writer: could not close %s", filename)
	}

	logger.Infof("wrote %s", filename)
	return nil
}
