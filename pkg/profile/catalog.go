package profile

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// SupportedVersions lists the catalog schema versions Decode accepts
var SupportedVersions = []string{"1.0"}

// Catalog is a lazily loaded, read-only set of benders. It is safe for
// concurrent use.
type Catalog struct {
	path   string
	logger *zap.Logger

	mu      sync.Mutex
	loaded  bool
	benders []Bender
}

// NewCatalog creates a catalog backed by a YAML file. Nothing is read until
// the first lookup.
func NewCatalog(path string, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{path: path, logger: logger}
}

// Path returns the catalog file
func (c *Catalog) Path() string {
	return c.path
}

// Benders returns all benders, loading the file on first use
func (c *Catalog) Benders() ([]Bender, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		if err := c.load(); err != nil {
			return nil, err
		}
	}
	return append([]Bender(nil), c.benders...), nil
}

// Reload forces the next lookup to read the file again
func (c *Catalog) Reload() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
	return c.load()
}

func (c *Catalog) load() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return &LoadError{Path: c.path, Err: err}
	}
	benders, skipped, err := Decode(bytes.NewReader(data))
	if err != nil {
		return &LoadError{Path: c.path, Err: err}
	}
	for _, s := range skipped {
		c.logger.Warn("skipping invalid bender", zap.String("catalog", c.path), zap.Error(s))
	}
	c.logger.Debug("loaded bender catalog", zap.String("catalog", c.path), zap.Int("benders", len(benders)))

	c.benders = benders
	c.loaded = true
	return nil
}

// Bender finds a bender by id or, failing that, by case-insensitive name
func (c *Catalog) Bender(ref string) (Bender, error) {
	benders, err := c.Benders()
	if err != nil {
		return Bender{}, err
	}
	for _, b := range benders {
		if b.ID == ref {
			return b, nil
		}
	}
	for _, b := range benders {
		if strings.EqualFold(b.Name, ref) {
			return b, nil
		}
	}
	return Bender{}, fmt.Errorf("%w: %q", ErrBenderNotFound, ref)
}

// Select resolves a bender and one of its dies
func (c *Catalog) Select(bender, die string) (Bender, Die, error) {
	b, err := c.Bender(bender)
	if err != nil {
		return Bender{}, Die{}, err
	}
	d, ok := b.Die(die)
	if !ok {
		return Bender{}, Die{}, fmt.Errorf("%w: %q on bender %q", ErrDieNotFound, die, b.Name)
	}
	return b, d, nil
}

type catalogFile struct {
	Version string         `yaml:"version"`
	Benders *[]benderEntry `yaml:"benders"`
}

type benderEntry struct {
	ID      string     `yaml:"id"`
	Name    string     `yaml:"name"`
	MinGrip *float64   `yaml:"min_grip"`
	Dies    []dieEntry `yaml:"dies"`
	Notes   string     `yaml:"notes"`
}

type dieEntry struct {
	ID      string   `yaml:"id"`
	Name    string   `yaml:"name"`
	TubeOD  *float64 `yaml:"tube_od"`
	CLR     *float64 `yaml:"clr"`
	Offset  *float64 `yaml:"offset"`
	MinTail float64  `yaml:"min_tail"`
	Notes   string   `yaml:"notes"`
}

// Decode reads a catalog document. Benders with missing required values are
// skipped and reported in skipped; out-of-range values are clamped into
// range. A missing version is read as "1.0".
func Decode(r io.Reader) (benders []Bender, skipped []error, err error) {
	var doc catalogFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil, fmt.Errorf("%w: empty document", ErrInvalidCatalog)
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	version := doc.Version
	if version == "" {
		version = "1.0"
	}
	supported := false
	for _, v := range SupportedVersions {
		supported = supported || v == version
	}
	if !supported {
		return nil, nil, fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedVersion, version, strings.Join(SupportedVersions, ", "))
	}
	if doc.Benders == nil {
		return nil, nil, fmt.Errorf("%w: missing 'benders' list", ErrInvalidCatalog)
	}

	benders = make([]Bender, 0, len(*doc.Benders))
	for i, entry := range *doc.Benders {
		b, err := entry.bender()
		if err != nil {
			skipped = append(skipped, fmt.Errorf("bender %d: %w", i, err))
			continue
		}
		benders = append(benders, b)
	}
	return benders, skipped, nil
}

func (e benderEntry) bender() (Bender, error) {
	if e.Name == "" {
		return Bender{}, fmt.Errorf("missing name")
	}
	if e.MinGrip == nil {
		return Bender{}, fmt.Errorf("%s: missing min_grip", e.Name)
	}

	b := Bender{
		ID:      orNewID(e.ID),
		Name:    e.Name,
		MinGrip: clamp(*e.MinGrip, 0.001),
		Dies:    make([]Die, 0, len(e.Dies)),
		Notes:   e.Notes,
	}
	for j, d := range e.Dies {
		if d.TubeOD == nil || d.CLR == nil || d.Offset == nil {
			return Bender{}, fmt.Errorf("%s: die %d: tube_od, clr and offset are required", e.Name, j)
		}
		b.Dies = append(b.Dies, Die{
			ID:      orNewID(d.ID),
			Name:    d.Name,
			TubeOD:  clamp(*d.TubeOD, 0.001),
			CLR:     clamp(*d.CLR, 0.001),
			Offset:  clamp(*d.Offset, 0),
			MinTail: clamp(d.MinTail, 0),
			Notes:   d.Notes,
		})
	}
	return b, nil
}

// clamp raises v to lo; NaN becomes lo as well
func clamp(v, lo float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	return v
}

func orNewID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}
