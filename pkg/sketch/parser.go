package sketch

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/philipparndt/gobend/pkg/geometry"
)

// Format identifies a sketch file encoding
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor picks the format from a file extension. Unknown extensions are
// read as the line-oriented text format.
func FormatFor(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatText
	}
}

// Parse reads a sketch file and returns a Sketch.
// The format is chosen from the file extension.
func Parse(filename string) (*Sketch, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	s, err := ParseReader(file, FormatFor(filename))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return s, nil
}

// ParseReader reads a sketch in the given format
func ParseReader(reader io.Reader, format Format) (*Sketch, error) {
	switch format {
	case FormatYAML, FormatTOML:
		data, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to read sketch: %w", err)
		}
		var doc document
		if format == FormatYAML {
			dec := yaml.NewDecoder(bytes.NewReader(data))
			dec.KnownFields(true)
			if err := dec.Decode(&doc); err != nil && err != io.EOF {
				return nil, fmt.Errorf("error reading YAML sketch: %w", err)
			}
		} else if _, err := toml.Decode(string(data), &doc); err != nil {
			return nil, fmt.Errorf("error reading TOML sketch: %w", err)
		}
		return doc.build()
	case FormatText:
		return parseText(reader)
	default:
		return nil, fmt.Errorf("unsupported sketch format %q", format)
	}
}

// document is the structured (YAML/TOML) sketch layout
type document struct {
	Name      string   `yaml:"name" toml:"name"`
	Component string   `yaml:"component" toml:"component"`
	Entities  []record `yaml:"entities" toml:"entities"`
}

// record is one entity. Arcs give either mid, or center and normal.
type record struct {
	ID     string    `yaml:"id" toml:"id"`
	Type   string    `yaml:"type" toml:"type"`
	Start  []float64 `yaml:"start" toml:"start"`
	End    []float64 `yaml:"end" toml:"end"`
	Mid    []float64 `yaml:"mid,omitempty" toml:"mid"`
	Center []float64 `yaml:"center,omitempty" toml:"center"`
	Normal []float64 `yaml:"normal,omitempty" toml:"normal"`
}

func (d document) build() (*Sketch, error) {
	s := NewSketch(d.Name)
	s.Component = d.Component
	for i, r := range d.Entities {
		e, err := r.entity(i + 1)
		if err != nil {
			return nil, err
		}
		s.AddEntity(e)
	}
	return s, nil
}

func (r record) entity(n int) (*Entity, error) {
	kind := strings.ToLower(r.Type)
	id := r.ID
	if id == "" {
		id = fmt.Sprintf("%s%d", kind, n)
	}

	point := func(name string, v []float64) (geometry.Vector3, error) {
		if len(v) != 3 {
			return geometry.Vector3{}, fmt.Errorf("entity %s: %s needs 3 coordinates, got %d", id, name, len(v))
		}
		return geometry.NewVector3(v[0], v[1], v[2]), nil
	}

	start, err := point("start", r.Start)
	if err != nil {
		return nil, err
	}
	end, err := point("end", r.End)
	if err != nil {
		return nil, err
	}

	switch kind {
	case "line":
		return NewLine(id, start, end), nil
	case "arc":
		if r.Mid != nil {
			mid, err := point("mid", r.Mid)
			if err != nil {
				return nil, err
			}
			return NewArcThroughPoints(id, start, mid, end)
		}
		center, err := point("center", r.Center)
		if err != nil {
			return nil, err
		}
		normal, err := point("normal", r.Normal)
		if err != nil {
			return nil, err
		}
		return NewArc(id, start, end, center, normal)
	default:
		return nil, fmt.Errorf("entity %s: unknown type %q", id, r.Type)
	}
}

// parseText parses the line-oriented sketch format:
//
//	sketch <name>
//	component <name>
//	line <id> x y z  x y z
//	arc <id> start(x y z) mid(x y z) end(x y z)
//	arc <id> start(x y z) end(x y z) center(x y z) normal(x y z)
//
// Blank lines and lines starting with # are ignored.
func parseText(reader io.Reader) (*Sketch, error) {
	scanner := bufio.NewScanner(reader)
	s := NewSketch("")

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "sketch":
			s.Name = strings.Join(fields[1:], " ")

		case "component":
			s.Component = strings.Join(fields[1:], " ")

		case "line", "arc":
			if len(fields) < 2 {
				return nil, fmt.Errorf("line %d: %s needs an id", lineNo, fields[0])
			}
			coords, err := parseFloats(fields[2:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			r := record{ID: fields[1], Type: fields[0]}
			switch {
			case fields[0] == "line" && len(coords) == 6:
				r.Start, r.End = coords[0:3], coords[3:6]
			case fields[0] == "arc" && len(coords) == 9:
				r.Start, r.Mid, r.End = coords[0:3], coords[3:6], coords[6:9]
			case fields[0] == "arc" && len(coords) == 12:
				r.Start, r.End, r.Center, r.Normal = coords[0:3], coords[3:6], coords[6:9], coords[9:12]
			default:
				return nil, fmt.Errorf("line %d: %s %s has %d coordinates", lineNo, fields[0], fields[1], len(coords))
			}
			e, err := r.entity(s.EntityCount() + 1)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			s.AddEntity(e)

		default:
			return nil, fmt.Errorf("line %d: unknown keyword %q", lineNo, fields[0])
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading sketch: %w", err)
	}

	// component may be declared after the entities
	for _, e := range s.Entities {
		e.component = s.Component
	}

	return s, nil
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid coordinate %q", f)
		}
		out[i] = v
	}
	return out, nil
}
