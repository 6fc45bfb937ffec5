package path

import (
	"errors"
	"fmt"
	"strings"

	"github.com/philipparndt/gobend/pkg/geometry"
)

var (
	// ErrEmptyPath indicates no elements were supplied.
	ErrEmptyPath = errors.New("path: at least one element is required")
	// ErrNilElement indicates a nil element in the input set.
	ErrNilElement = errors.New("path: nil element")
	// ErrDuplicateElement indicates two elements share an id.
	ErrDuplicateElement = errors.New("path: duplicate element id")
	// ErrInvalidTolerance indicates a non-positive connectivity tolerance.
	ErrInvalidTolerance = errors.New("path: connectivity tolerance must be positive")
	// ErrNotContiguous indicates adjacent steps do not meet within tolerance.
	ErrNotContiguous = errors.New("path: adjacent elements do not connect")
	// ErrNotAlternating indicates the path does not alternate lines and arcs.
	ErrNotAlternating = errors.New("path: lines and arcs must alternate")
	// ErrUnknownPolicy indicates an unsupported direction policy.
	ErrUnknownPolicy = errors.New("path: unknown direction policy")
)

// BranchingError reports an endpoint shared by more than two elements.
type BranchingError struct {
	Point    geometry.Vector3
	Elements []string
}

func (e *BranchingError) Error() string {
	return fmt.Sprintf("path: %d elements meet at %s (%s); only single continuous paths are supported",
		len(e.Elements), e.Point, strings.Join(e.Elements, ", "))
}

// DisconnectedError reports geometry that does not form a single connected run.
type DisconnectedError struct {
	Components int
	FreeEnds   int
}

func (e *DisconnectedError) Error() string {
	return fmt.Sprintf("path: selection forms %d separate pieces with %d free ends; all elements must connect into one continuous path",
		e.Components, e.FreeEnds)
}

// CycleError reports a closed loop: no free end to start from.
type CycleError struct {
	Elements int
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("path: %d elements form a closed loop; the path must have two free ends", e.Elements)
}

// AlternationError reports the first position breaking the line/arc alternation.
type AlternationError struct {
	Position int // 1-based
	Expected Kind
	Got      Kind
}

func (e *AlternationError) Error() string {
	return fmt.Sprintf("path: position %d: expected %s, got %s", e.Position, e.Expected, e.Got)
}

// Is makes errors.Is(err, ErrNotAlternating) hold.
func (e *AlternationError) Is(target error) bool {
	return target == ErrNotAlternating
}
