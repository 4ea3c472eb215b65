// Package mesh reads OBJ and STL files into named triangle groups.
package mesh

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"meshview/scene"
)

var (
	// ErrNoTriangles is returned when a file parses but yields no faces.
	ErrNoTriangles = errors.New("mesh: no triangles")

	// ErrUnsupportedFormat is returned for file extensions Load does not know.
	ErrUnsupportedFormat = errors.New("mesh: unsupported format")
)

// Group is a named list of triangles from one o/g block or STL solid.
type Group struct {
	Name      string
	Triangles []scene.Triangle
}

// Mesh is the parsed content of one file.
type Mesh struct {
	Groups []Group

	// Bounds covers every vertex position in the file, referenced or not.
	Bounds scene.BoundingBox
}

// TriangleCount returns the number of triangles over all groups.
func (m *Mesh) TriangleCount() int {
	n := 0
	for _, g := range m.Groups {
		n += len(g.Triangles)
	}
	return n
}

// Parser parses mesh files.
type Parser struct{}

// NewParser creates a new mesh parser.
func NewParser() *Parser {
	return &Parser{}
}

// Load reads the mesh at path, picking the format from the extension.
func Load(path string) (*Mesh, error) {
	return NewParser().Load(path)
}

// Load reads the mesh at path, picking the format from the extension.
func (p *Parser) Load(path string) (*Mesh, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".obj" && ext != ".stl" {
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open mesh: %w", err)
	}
	defer f.Close()

	var m *Mesh
	switch ext {
	case ".obj":
		m, err = p.ParseOBJ(f)
	case ".stl":
		m, err = p.ParseSTL(f, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if m.TriangleCount() == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoTriangles)
	}
	return m, nil
}

// Rule routes groups into one coloured object.
type Rule struct {
	Name  string
	Color color.RGBA

	// Match is a substring of the group name. An empty Match catches every
	// group no other rule took.
	Match string
}

// Route builds one object per rule, in rule order. Each group goes to the
// first rule whose Match occurs in its name, else to the fallback rule.
// Groups matching nothing are dropped when there is no fallback.
func Route(groups []Group, rules []Rule) []*scene.Object {
	tris := make([][]scene.Triangle, len(rules))
	fallback := -1
	for i, r := range rules {
		if r.Match == "" && fallback < 0 {
			fallback = i
		}
	}

	for _, g := range groups {
		dst := fallback
		for i, r := range rules {
			if r.Match != "" && strings.Contains(g.Name, r.Match) {
				dst = i
				break
			}
		}
		if dst < 0 {
			continue
		}
		tris[dst] = append(tris[dst], g.Triangles...)
	}

	out := make([]*scene.Object, len(rules))
	for i, r := range rules {
		out[i] = scene.NewObject(r.Name, r.Color, tris[i])
	}
	return out
}

// Scene routes m into a scene with m's bounds.
func (m *Mesh) Scene(rules []Rule) *scene.Scene {
	return &scene.Scene{
		Objects: Route(m.Groups, rules),
		Bounds:  m.Bounds,
	}
}
