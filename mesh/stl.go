package mesh

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"

	"meshview/linear"
	"meshview/scene"
)

const (
	stlHeaderSize = 80
	stlFacetSize  = 50
)

// ParseSTL reads an ASCII or binary STL stream into a single group. The
// group is named after the solid, or name when the file carries none.
// Facet normals are copied to all three vertices.
func (p *Parser) ParseSTL(r io.Reader, name string) (*Mesh, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading stl: %w", err)
	}
	if isBinarySTL(data) {
		return parseBinarySTL(data, name)
	}
	return parseASCIISTL(data, name)
}

// isBinarySTL checks the size implied by the facet count. Binary files may
// also start with "solid", so the prefix alone does not decide.
func isBinarySTL(data []byte) bool {
	if len(data) >= stlHeaderSize+4 {
		n := binary.LittleEndian.Uint32(data[stlHeaderSize:])
		if uint64(len(data)) == stlHeaderSize+4+uint64(n)*stlFacetSize {
			return true
		}
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return true
	}
	return !bytes.HasPrefix(bytes.TrimSpace(data), []byte("solid"))
}

func parseASCIISTL(data []byte, name string) (*Mesh, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	g := Group{Name: name}
	bounds := scene.EmptyBoundingBox()

	var (
		normal  linear.Vec3
		tri     scene.Triangle
		corners int
		line    int
	)
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				g.Name = strings.Join(fields[1:], " ")
			}
		case "facet":
			if len(fields) != 5 || fields[1] != "normal" {
				return nil, fmt.Errorf("stl line %d: malformed facet", line)
			}
			n, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("stl line %d: %w", line, err)
			}
			normal = n
			corners = 0
		case "vertex":
			v, err := parseVec3(fields)
			if err != nil {
				return nil, fmt.Errorf("stl line %d: %w", line, err)
			}
			if corners >= 3 {
				return nil, fmt.Errorf("stl line %d: facet has more than 3 vertices", line)
			}
			tri[corners] = scene.Vertex{Position: v, Normal: normal}
			bounds = bounds.Extend(v)
			corners++
		case "endfacet":
			if corners != 3 {
				return nil, fmt.Errorf("stl line %d: facet has %d vertices", line, corners)
			}
			g.Triangles = append(g.Triangles, tri)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading stl: %w", err)
	}
	return &Mesh{Groups: []Group{g}, Bounds: bounds}, nil
}

func parseBinarySTL(data []byte, name string) (*Mesh, error) {
	if len(data) < stlHeaderSize+4 {
		return nil, fmt.Errorf("binary stl: short header")
	}
	n := binary.LittleEndian.Uint32(data[stlHeaderSize:])
	body := data[stlHeaderSize+4:]
	if uint64(len(body)) < uint64(n)*stlFacetSize {
		return nil, fmt.Errorf("binary stl: %d facets declared, %d bytes present", n, len(body))
	}

	g := Group{Name: name, Triangles: make([]scene.Triangle, n)}
	bounds := scene.EmptyBoundingBox()
	for i := range g.Triangles {
		rec := body[i*stlFacetSize:]
		normal := readVec3(rec)
		for j := 0; j < 3; j++ {
			v := readVec3(rec[12*(j+1):])
			g.Triangles[i][j] = scene.Vertex{Position: v, Normal: normal}
			bounds = bounds.Extend(v)
		}
	}
	return &Mesh{Groups: []Group{g}, Bounds: bounds}, nil
}

func readVec3(b []byte) linear.Vec3 {
	f := func(off int) float64 {
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b[off:])))
	}
	return linear.V3(f(0), f(4), f(8))
}
