package sketch

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gobend/pkg/extract"
	"github.com/philipparndt/gobend/pkg/path"
)

const textSketch = `# L-shaped handle bar
sketch handle
component Frame
line l1 0 0 0  10 0 0
arc a1 10 0 0  12 2 0  10 2 0  0 0 1
line l2 12 2 0  12 12 0
`

const yamlSketch = `name: handle
component: Frame
entities:
  - id: l1
    type: line
    start: [0, 0, 0]
    end: [10, 0, 0]
  - id: a1
    type: arc
    start: [10, 0, 0]
    mid: [11.414213562373096, 0.5857864376269049, 0]
    end: [12, 2, 0]
  - id: l2
    type: line
    start: [12, 2, 0]
    end: [12, 12, 0]
`

const tomlSketch = `name = "handle"
component = "Frame"

[[entities]]
id = "l1"
type = "line"
start = [0.0, 0.0, 0.0]
end = [10.0, 0.0, 0.0]

[[entities]]
id = "a1"
type = "arc"
start = [10.0, 0.0, 0.0]
end = [12.0, 2.0, 0.0]
center = [10.0, 2.0, 0.0]
normal = [0.0, 0.0, 1.0]

[[entities]]
id = "l2"
type = "line"
start = [12.0, 2.0, 0.0]
end = [12.0, 12.0, 0.0]
`

func TestParseReaderFormats(t *testing.T) {
	for format, src := range map[Format]string{
		FormatText: textSketch,
		FormatYAML: yamlSketch,
		FormatTOML: tomlSketch,
	} {
		t.Run(string(format), func(t *testing.T) {
			s, err := ParseReader(strings.NewReader(src), format)
			require.NoError(t, err)
			assert.Equal(t, "handle", s.Name)
			assert.Equal(t, "Frame", s.Component)
			require.Equal(t, 3, s.EntityCount())

			arc := s.Entities[1]
			assert.Equal(t, path.Arc, arc.Kind())
			assert.InDelta(t, 2, arc.Radius(), 1e-9)
			assert.InDelta(t, math.Pi, arc.Length(), 1e-9)
			assert.InDelta(t, 1, arc.PlaneNormal().Z, 1e-9)
			assert.InDelta(t, 10, s.Entities[0].Length(), 1e-12)

			els, err := extract.ExtractAll(s.Handles())
			require.NoError(t, err)
			p, err := path.Order(els, 0.1)
			require.NoError(t, err)
			assert.Equal(t, []string{"l1", "a1", "l2"}, p.IDs())
			assert.Equal(t, "Frame", extract.ComponentName(s.Handles()))
		})
	}
}

func TestParseUsesExtension(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "bar.yml")
	require.NoError(t, os.WriteFile(file, []byte(strings.Replace(yamlSketch, "name: handle\n", "", 1)), 0o644))

	s, err := Parse(file)
	require.NoError(t, err)
	assert.Equal(t, "bar", s.Name)
	assert.Equal(t, 3, s.EntityCount())
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFor("a.YAML"))
	assert.Equal(t, FormatTOML, FormatFor("dir/a.toml"))
	assert.Equal(t, FormatText, FormatFor("a.sketch"))
	assert.Equal(t, FormatText, FormatFor("noext"))
}

func TestParseTextErrors(t *testing.T) {
	tests := map[string]string{
		"unknown keyword":   "circle c1 0 0 0",
		"bad coordinate":    "line l1 0 0 x 1 1 1",
		"coordinate count":  "line l1 0 0 0 1 1",
		"collinear arc":     "arc a1 0 0 0 1 0 0 2 0 0",
		"zero normal":       "arc a1 1 0 0 0 1 0 0 0 0 0 0 0",
		"missing entity id": "line",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseReader(strings.NewReader(src), FormatText)
			assert.Error(t, err)
		})
	}
}

func TestParseYAMLRejectsUnknownFields(t *testing.T) {
	_, err := ParseReader(strings.NewReader("name: x\nradius: 3\n"), FormatYAML)
	assert.Error(t, err)
}

func TestBoundingBox(t *testing.T) {
	s, err := ParseReader(strings.NewReader(textSketch), FormatText)
	require.NoError(t, err)
	bb := s.BoundingBox()
	assert.Equal(t, 12.0, bb.Max.X)
	assert.Equal(t, 12.0, bb.Max.Y)
	assert.Equal(t, 0.0, bb.Min.X)
}
