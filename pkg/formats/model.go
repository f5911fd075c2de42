// Package formats provides parsers for the asset files the renderer loads.
package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Text model format errors.
var (
	ErrMissingHeader   = errors.New("model: missing header field")
	ErrMissingSection  = errors.New("model: missing section")
	ErrTruncatedModel  = errors.New("model: unexpected end of file")
	ErrInvalidVertex   = errors.New("model: invalid vertex line")
	ErrInvalidTriangle = errors.New("model: invalid triangle line")
	ErrIndexOutOfRange = errors.New("model: triangle index out of range")
	ErrEmptyModel      = errors.New("model: no triangles")
)

// maxPrealloc bounds the capacity reserved from header counts. Larger
// models grow as their lines are read.
const maxPrealloc = 1 << 16

// ModelVertex is a vertex as stored in the text model format.
// Texture coordinates are not part of the format and stay zero.
type ModelVertex struct {
	Position [3]float32
	Normal   [3]float32
}

// Model is a parsed text model: a vertex list and a 32-bit triangle list.
type Model struct {
	Vertices []ModelVertex
	Indices  []uint32
}

// TriangleCount returns the number of triangles.
func (m *Model) TriangleCount() int {
	return len(m.Indices) / 3
}

// LoadModelText reads and parses a text model file.
func LoadModelText(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening model: %w", err)
	}
	defer f.Close()

	m, err := ParseModelText(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}

// ParseModelText parses the text model format:
//
//	VertexCount: N
//	TriangleCount: M
//	VertexList (pos, normal)
//	{
//	  px py pz nx ny nz   (N lines)
//	}
//	TriangleList
//	{
//	  i0 i1 i2            (M lines)
//	}
func ParseModelText(r io.Reader) (*Model, error) {
	p := &modelParser{sc: bufio.NewScanner(r)}
	p.sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	vertexCount, err := p.header("VertexCount")
	if err != nil {
		return nil, err
	}
	triangleCount, err := p.header("TriangleCount")
	if err != nil {
		return nil, err
	}

	if err := p.openSection("VertexList"); err != nil {
		return nil, err
	}
	m := &Model{
		Vertices: make([]ModelVertex, 0, min(vertexCount, maxPrealloc)),
		Indices:  make([]uint32, 0, min(triangleCount, maxPrealloc)*3),
	}
	for i := 0; i < vertexCount; i++ {
		fields, err := p.fields()
		if err != nil {
			return nil, err
		}
		if len(fields) < 6 {
			return nil, fmt.Errorf("%w %d: %d fields", ErrInvalidVertex, p.line, len(fields))
		}
		var v [6]float32
		for j := range v {
			f, err := strconv.ParseFloat(fields[j], 32)
			if err != nil {
				return nil, fmt.Errorf("%w %d: %v", ErrInvalidVertex, p.line, err)
			}
			v[j] = float32(f)
		}
		m.Vertices = append(m.Vertices, ModelVertex{
			Position: [3]float32{v[0], v[1], v[2]},
			Normal:   [3]float32{v[3], v[4], v[5]},
		})
	}
	if err := p.closeSection(); err != nil {
		return nil, err
	}

	if err := p.openSection("TriangleList"); err != nil {
		return nil, err
	}
	for i := 0; i < triangleCount; i++ {
		fields, err := p.fields()
		if err != nil {
			return nil, err
		}
		if len(fields) < 3 {
			return nil, fmt.Errorf("%w %d: %d fields", ErrInvalidTriangle, p.line, len(fields))
		}
		for j := 0; j < 3; j++ {
			idx, err := strconv.ParseUint(fields[j], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("%w %d: %v", ErrInvalidTriangle, p.line, err)
			}
			if int(idx) >= vertexCount {
				return nil, fmt.Errorf("%w: %d >= %d", ErrIndexOutOfRange, idx, vertexCount)
			}
			m.Indices = append(m.Indices, uint32(idx))
		}
	}
	if err := p.closeSection(); err != nil {
		return nil, err
	}

	if len(m.Indices) == 0 {
		return nil, ErrEmptyModel
	}
	return m, nil
}

type modelParser struct {
	sc   *bufio.Scanner
	line int
}

// next returns the next non-empty trimmed line.
func (p *modelParser) next() (string, error) {
	for p.sc.Scan() {
		p.line++
		s := strings.TrimSpace(p.sc.Text())
		if s != "" {
			return s, nil
		}
	}
	if err := p.sc.Err(); err != nil {
		return "", fmt.Errorf("reading model: %w", err)
	}
	return "", ErrTruncatedModel
}

func (p *modelParser) fields() ([]string, error) {
	s, err := p.next()
	if err != nil {
		return nil, err
	}
	return strings.Fields(s), nil
}

func (p *modelParser) header(name string) (int, error) {
	s, err := p.next()
	if err != nil {
		return 0, err
	}
	key, value, ok := strings.Cut(s, ":")
	if !ok || strings.TrimSpace(key) != name {
		return 0, fmt.Errorf("%w %q at line %d", ErrMissingHeader, name, p.line)
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w %q at line %d: bad count %q", ErrMissingHeader, name, p.line, value)
	}
	return n, nil
}

// openSection consumes a section title line and the opening brace.
func (p *modelParser) openSection(name string) error {
	s, err := p.next()
	if err != nil {
		return err
	}
	if !strings.HasPrefix(s, name) {
		return fmt.Errorf("%w %q at line %d", ErrMissingSection, name, p.line)
	}
	s, err = p.next()
	if err != nil {
		return err
	}
	if s != "{" {
		return fmt.Errorf("%w %q: expected '{' at line %d", ErrMissingSection, name, p.line)
	}
	return nil
}

func (p *modelParser) closeSection() error {
	s, err := p.next()
	if err != nil {
		return err
	}
	if s != "}" {
		return fmt.Errorf("%w: expected '}' at line %d", ErrMissingSection, p.line)
	}
	return nil
}
