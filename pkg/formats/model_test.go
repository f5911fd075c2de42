package formats

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testModel = `VertexCount: 4
TriangleCount: 2
VertexList (pos, normal)
{
	-1 0 -1 0 1 0
	1 0 -1 0 1 0
	1 0 1 0 1 0
	-1 0 1 0 1 0
}
TriangleList
{
	0 1 2
	0 2 3
}
`

func TestParseModelText_Valid(t *testing.T) {
	m, err := ParseModelText(strings.NewReader(testModel))
	if err != nil {
		t.Fatalf("ParseModelText failed: %v", err)
	}

	if len(m.Vertices) != 4 {
		t.Errorf("expected 4 vertices, got %d", len(m.Vertices))
	}
	if m.TriangleCount() != 2 {
		t.Errorf("expected 2 triangles, got %d", m.TriangleCount())
	}

	v := m.Vertices[2]
	if v.Position != [3]float32{1, 0, 1} {
		t.Errorf("vertex 2 position = %v, want (1, 0, 1)", v.Position)
	}
	if v.Normal != [3]float32{0, 1, 0} {
		t.Errorf("vertex 2 normal = %v, want (0, 1, 0)", v.Normal)
	}

	want := []uint32{0, 1, 2, 0, 2, 3}
	for i, idx := range want {
		if m.Indices[i] != idx {
			t.Errorf("index %d = %d, want %d", i, m.Indices[i], idx)
		}
	}
}

func TestParseModelText_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrTruncatedModel},
		{"bad header", "Vertices: 3\n", ErrMissingHeader},
		{"no vertex list", "VertexCount: 1\nTriangleCount: 0\nTriangleList\n", ErrMissingSection},
		{"short vertex", "VertexCount: 1\nTriangleCount: 0\nVertexList (pos, normal)\n{\n1 2 3\n}\n", ErrInvalidVertex},
		{"bad float", "VertexCount: 1\nTriangleCount: 0\nVertexList (pos, normal)\n{\n1 2 x 0 0 0\n}\n", ErrInvalidVertex},
		{"truncated vertices", "VertexCount: 2\nTriangleCount: 0\nVertexList (pos, normal)\n{\n1 2 3 0 0 0\n", ErrTruncatedModel},
		{"index out of range", strings.Replace(testModel, "0 2 3", "0 2 4", 1), ErrIndexOutOfRange},
		{"bad index", strings.Replace(testModel, "0 2 3", "0 2 -3", 1), ErrInvalidTriangle},
		{"missing close", strings.TrimSuffix(testModel, "}\n"), ErrTruncatedModel},
		{"huge vertex count", "VertexCount: 1099511627776\nTriangleCount: 1\nVertexList (pos, normal)\n{\n1 2 3 0 0 0\n}\n", ErrInvalidVertex},
		{"huge triangle count", "VertexCount: 1\nTriangleCount: 1099511627776\nVertexList (pos, normal)\n{\n1 2 3 0 0 0\n}\nTriangleList\n{\n", ErrTruncatedModel},
		{"no triangles", "VertexCount: 0\nTriangleCount: 0\nVertexList (pos, normal)\n{\n}\nTriangleList\n{\n}\n", ErrEmptyModel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseModelText(strings.NewReader(tt.input))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadModelText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.txt")
	if err := os.WriteFile(path, []byte(testModel), 0644); err != nil {
		t.Fatalf("writing model: %v", err)
	}

	m, err := LoadModelText(path)
	if err != nil {
		t.Fatalf("LoadModelText failed: %v", err)
	}
	if len(m.Indices) != 6 {
		t.Errorf("expected 6 indices, got %d", len(m.Indices))
	}
}

func TestLoadModelText_Missing(t *testing.T) {
	_, err := LoadModelText(filepath.Join(t.TempDir(), "nope.txt"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}
