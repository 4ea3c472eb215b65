package mesh

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"meshview/linear"
	"meshview/scene"
)

const defaultGroup = "default"

// objReader holds the state of one OBJ parse.
type objReader struct {
	positions []linear.Vec3
	normals   []linear.Vec3
	groups    []Group
	index     map[string]int
	current   int
	bounds    scene.BoundingBox
}

// ParseOBJ reads a Wavefront OBJ stream.
//
// Supported statements are o, g, v, vn and f. Faces with more than three
// corners are fan-triangulated. Corners without a normal get the normal of
// their triangle.
func (p *Parser) ParseOBJ(r io.Reader) (*Mesh, error) {
	o := &objReader{
		index:   map[string]int{},
		current: -1,
		bounds:  scene.EmptyBoundingBox(),
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		if err := o.statement(fields); err != nil {
			return nil, fmt.Errorf("obj line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading obj: %w", err)
	}

	return &Mesh{Groups: o.groups, Bounds: o.bounds}, nil
}

func (o *objReader) statement(fields []string) error {
	switch fields[0] {
	case "v":
		v, err := parseVec3(fields)
		if err != nil {
			return err
		}
		o.positions = append(o.positions, v)
		o.bounds = o.bounds.Extend(v)
	case "vn":
		n, err := parseVec3(fields)
		if err != nil {
			return err
		}
		o.normals = append(o.normals, n)
	case "o", "g":
		o.group(strings.Join(fields[1:], " "))
	case "f":
		return o.face(fields[1:])
	}
	return nil
}

func (o *objReader) group(name string) {
	if name == "" {
		name = defaultGroup
	}
	if i, ok := o.index[name]; ok {
		o.current = i
		return
	}
	o.index[name] = len(o.groups)
	o.current = len(o.groups)
	o.groups = append(o.groups, Group{Name: name})
}

type corner struct {
	pos       linear.Vec3
	normal    linear.Vec3
	hasNormal bool
}

func (o *objReader) face(refs []string) error {
	if len(refs) < 3 {
		return fmt.Errorf("face needs at least 3 vertices, got %d", len(refs))
	}
	corners := make([]corner, len(refs))
	for i, ref := range refs {
		c, err := o.corner(ref)
		if err != nil {
			return err
		}
		corners[i] = c
	}

	if o.current < 0 {
		o.group(defaultGroup)
	}
	g := &o.groups[o.current]
	for i := 1; i+1 < len(corners); i++ {
		a, b, c := corners[0], corners[i], corners[i+1]
		fn := linear.Cross(b.pos.Sub(a.pos), c.pos.Sub(a.pos))
		var t scene.Triangle
		for j, k := range [3]corner{a, b, c} {
			t[j].Position = k.pos
			t[j].Normal = fn
			if k.hasNormal {
				t[j].Normal = k.normal
			}
		}
		g.Triangles = append(g.Triangles, t)
	}
	return nil
}

// corner resolves one v, v/vt, v//vn or v/vt/vn reference.
func (o *objReader) corner(ref string) (corner, error) {
	parts := strings.Split(ref, "/")
	if len(parts) > 3 {
		return corner{}, fmt.Errorf("invalid face reference %q", ref)
	}
	vi, err := resolve(parts[0], len(o.positions))
	if err != nil {
		return corner{}, fmt.Errorf("vertex %q: %w", ref, err)
	}
	c := corner{pos: o.positions[vi]}
	if len(parts) == 3 && parts[2] != "" {
		ni, err := resolve(parts[2], len(o.normals))
		if err != nil {
			return corner{}, fmt.Errorf("normal %q: %w", ref, err)
		}
		c.normal = o.normals[ni]
		c.hasNormal = true
	}
	return c, nil
}

// resolve turns a 1-based or negative (relative) OBJ index into a slice
// index.
func resolve(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case i > 0 && i <= n:
		return i - 1, nil
	case i < 0 && -i <= n:
		return n + i, nil
	}
	return 0, fmt.Errorf("index %d out of range (have %d)", i, n)
}

func parseVec3(fields []string) (linear.Vec3, error) {
	if len(fields) < 4 {
		return linear.Vec3{}, fmt.Errorf("%s needs 3 components, got %d", fields[0], len(fields)-1)
	}
	var xyz [3]float64
	for i := range xyz {
		f, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return linear.Vec3{}, fmt.Errorf("invalid %s component: %w", fields[0], err)
		}
		xyz[i] = f
	}
	return linear.V3(xyz[0], xyz[1], xyz[2]), nil
}
