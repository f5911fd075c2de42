package shader

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

// Source file names, both embedded and in a shader directory.
const (
	VertexFile   = "default.vert"
	FragmentFile = "default.frag"
)

//go:embed glsl/default.vert
var defaultVertex string

//go:embed glsl/default.frag
var defaultFragment string

// Sources is the GLSL text of the renderer's program before
// preprocessing.
type Sources struct {
	Vertex   string
	Fragment string
}

// Embedded returns the sources compiled into the binary.
func Embedded() Sources {
	return Sources{Vertex: defaultVertex, Fragment: defaultFragment}
}

// Load reads the sources from dir. An empty dir yields the embedded
// sources.
func Load(dir string) (Sources, error) {
	if dir == "" {
		return Embedded(), nil
	}

	vs, err := os.ReadFile(filepath.Join(dir, VertexFile))
	if err != nil {
		return Sources{}, fmt.Errorf("reading vertex shader: %w", err)
	}
	fs, err := os.ReadFile(filepath.Join(dir, FragmentFile))
	if err != nil {
		return Sources{}, fmt.Errorf("reading fragment shader: %w", err)
	}
	return Sources{Vertex: string(vs), Fragment: string(fs)}, nil
}
