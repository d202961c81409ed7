package reader

import (
	"strings"

	"github.com/achilleasa/kdtrace/asset"
	"github.com/achilleasa/kdtrace/scene"
	"github.com/pkg/errors"
)

var ErrUnsupportedFormat = errors.New("reader: unsupported file format")

// The Reader interface is implemented by all mesh readers.
type Reader interface {
	// Read a mesh from a resource.
	Read(*asset.Resource) (*scene.Mesh, error)
}

// Read a mesh from a local file or an http(s) URL.
func ReadMesh(filename string) (*scene.Mesh, error) {
	// Select reader based on file extension
	var reader Reader
	switch {
	case strings.HasSuffix(strings.ToLower(filename), ".obj"):
		reader = newWavefrontReader()
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", filename)
	}

	res, err := asset.NewResource(filename, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	return reader.Read(res)
}
