package profile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const catalogYAML = `version: "1.0"
benders:
  - id: jd2
    name: JD2 Model 3
    min_grip: 15.24
    dies:
      - id: d150
        name: 1.5" x 4.5" CLR
        tube_od: 3.81
        clr: 11.43
        offset: 1.5875
        min_tail: 5.08
      - name: 1.75" x 5.5" CLR
        tube_od: 4.445
        clr: 13.97
        offset: -1
  - name: Broken
    dies: []
  - name: Tiny grip
    min_grip: -3
    dies:
      - name: no clr
        tube_od: 1
        offset: 0
`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "benders.yaml")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))
	return file
}

func TestDecodeSkipsAndClamps(t *testing.T) {
	benders, skipped, err := Decode(strings.NewReader(catalogYAML))
	require.NoError(t, err)
	require.Len(t, benders, 1)
	assert.Len(t, skipped, 2)

	b := benders[0]
	assert.Equal(t, "jd2", b.ID)
	assert.Equal(t, 15.24, b.MinGrip)
	require.Len(t, b.Dies, 2)
	assert.Equal(t, 5.08, b.Dies[0].MinTail)
	assert.Equal(t, 0.0, b.Dies[1].Offset, "negative offset is clamped")
	_, err = uuid.Parse(b.Dies[1].ID)
	assert.NoError(t, err, "missing ids are generated")
}

func TestDecodeClampsMinGrip(t *testing.T) {
	benders, skipped, err := Decode(strings.NewReader("benders:\n  - name: B\n    min_grip: -3\n"))
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, benders, 1)
	assert.Equal(t, 0.001, benders[0].MinGrip)
}

func TestDecodeRejects(t *testing.T) {
	_, _, err := Decode(strings.NewReader("version: \"2.0\"\nbenders: []\n"))
	assert.ErrorIs(t, err, ErrUnsupportedVersion)

	_, _, err = Decode(strings.NewReader("version: \"1.0\"\n"))
	assert.ErrorIs(t, err, ErrInvalidCatalog)

	_, _, err = Decode(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrInvalidCatalog)

	_, _, err = Decode(strings.NewReader("benders: 3\n"))
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestCatalogLoadsLazily(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "benders.yaml")
	core, logs := observer.New(zapcore.WarnLevel)
	c := NewCatalog(file, zap.New(core))

	// nothing is read at construction time
	require.NoError(t, os.WriteFile(file, []byte(catalogYAML), 0o644))

	benders, err := c.Benders()
	require.NoError(t, err)
	assert.Len(t, benders, 1)
	assert.Equal(t, 2, logs.FilterMessage("skipping invalid bender").Len())

	// cached until reloaded
	require.NoError(t, os.WriteFile(file, []byte("benders: []\n"), 0o644))
	benders, err = c.Benders()
	require.NoError(t, err)
	assert.Len(t, benders, 1)

	require.NoError(t, c.Reload())
	benders, err = c.Benders()
	require.NoError(t, err)
	assert.Empty(t, benders)
}

func TestCatalogConcurrentFirstUse(t *testing.T) {
	c := NewCatalog(writeCatalog(t, catalogYAML), nil)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b, err := c.Benders()
			if err == nil && len(b) != 1 {
				err = errors.New("unexpected bender count")
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestCatalogMissingFile(t *testing.T) {
	c := NewCatalog(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	_, err := c.Benders()
	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestCatalogSelect(t *testing.T) {
	c := NewCatalog(writeCatalog(t, catalogYAML), nil)

	b, d, err := c.Select("jd2 model 3", "d150")
	require.NoError(t, err)
	assert.Equal(t, "jd2", b.ID)
	assert.Equal(t, 11.43, d.CLR)

	_, d, err = c.Select("jd2", `1.75" x 5.5" clr`)
	require.NoError(t, err)
	assert.Equal(t, 13.97, d.CLR)

	_, _, err = c.Select("nope", "d150")
	assert.ErrorIs(t, err, ErrBenderNotFound)

	_, _, err = c.Select("jd2", "nope")
	assert.ErrorIs(t, err, ErrDieNotFound)
}

func TestFindDieForCLR(t *testing.T) {
	c := NewCatalog(writeCatalog(t, catalogYAML), nil)
	b, err := c.Bender("jd2")
	require.NoError(t, err)

	d, ok := b.FindDieForCLR(11.435, 0)
	require.True(t, ok)
	assert.Equal(t, "d150", d.ID)

	_, ok = b.FindDieForCLR(11.5, 0)
	assert.False(t, ok)

	_, ok = b.FindDieForCLR(11.5, 0.1)
	assert.True(t, ok)
}

func TestMatchesCLRRejectsInvalid(t *testing.T) {
	d := Die{CLR: 10}
	assert.True(t, d.MatchesCLR(10, 0))
	assert.False(t, d.MatchesCLR(-10, 0.1))
	assert.False(t, d.MatchesCLR(10, -1))
}
