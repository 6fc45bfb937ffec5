package path

import (
	"fmt"
	"math"

	"github.com/philipparndt/gobend/pkg/geometry"
)

// cell is a quantized coordinate used as adjacency key
type cell [3]int64

// node is one coincident-endpoint location. ends lists the element endpoints
// attached to it as (element index, 0=start/1=end).
type node struct {
	point geometry.Vector3
	ends  [][2]int
}

// adjacency maps endpoints to nodes. Points are bucketed by quantized
// coordinates and matched against neighbouring buckets as well, so two points
// closer than tolerance meet even when they straddle a bucket boundary.
type adjacency struct {
	tolerance float64
	cells     map[cell][]int
	nodes     []node
	elemNodes [][2]int
}

func newAdjacency(n int, tolerance float64) *adjacency {
	return &adjacency{
		tolerance: tolerance,
		cells:     make(map[cell][]int, 2*n),
		nodes:     make([]node, 0, n+1),
		elemNodes: make([][2]int, n),
	}
}

func (a *adjacency) quantize(p geometry.Vector3) cell {
	return cell{
		int64(math.Round(p.X / a.tolerance)),
		int64(math.Round(p.Y / a.tolerance)),
		int64(math.Round(p.Z / a.tolerance)),
	}
}

// lookup returns the node within tolerance of p, creating one if none exists
func (a *adjacency) lookup(p geometry.Vector3) int {
	c := a.quantize(p)
	best, bestDist := -1, math.MaxFloat64
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for dz := int64(-1); dz <= 1; dz++ {
				for _, idx := range a.cells[cell{c[0] + dx, c[1] + dy, c[2] + dz}] {
					d := a.nodes[idx].point.Distance(p)
					if d <= a.tolerance && d < bestDist {
						best, bestDist = idx, d
					}
				}
			}
		}
	}
	if best >= 0 {
		return best
	}

	a.nodes = append(a.nodes, node{point: p})
	idx := len(a.nodes) - 1
	a.cells[c] = append(a.cells[c], idx)
	return idx
}

func (a *adjacency) add(elem int, e *Element) {
	for end, p := range e.Endpoints() {
		n := a.lookup(p)
		a.nodes[n].ends = append(a.nodes[n].ends, [2]int{elem, end})
		a.elemNodes[elem][end] = n
	}
}

// components counts connected groups of elements
func (a *adjacency) components() int {
	seen := make([]bool, len(a.elemNodes))
	count := 0
	for start := range a.elemNodes {
		if seen[start] {
			continue
		}
		count++
		seen[start] = true
		queue := []int{start}
		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			for _, n := range a.elemNodes[u] {
				for _, end := range a.nodes[n].ends {
					if !seen[end[0]] {
						seen[end[0]] = true
						queue = append(queue, end[0])
					}
				}
			}
		}
	}
	return count
}

// Order reconstructs the single traversal through an unordered set of
// elements. Elements whose endpoints lie within tolerance are connected.
//
// A valid set has exactly two free ends, no endpoint shared by more than two
// elements and one connected component. The traversal starts from the free
// end with the smaller (X, Y, Z) coordinate, so the result does not depend on
// input order; use Normalize to choose the travel direction.
func Order(elements []*Element, tolerance float64) (OrderedPath, error) {
	if len(elements) == 0 {
		return OrderedPath{}, ErrEmptyPath
	}
	if tolerance <= 0 || math.IsNaN(tolerance) {
		return OrderedPath{}, ErrInvalidTolerance
	}

	seen := make(map[string]bool, len(elements))
	for _, e := range elements {
		if e == nil {
			return OrderedPath{}, ErrNilElement
		}
		if seen[e.ID] {
			return OrderedPath{}, fmt.Errorf("%w: %q", ErrDuplicateElement, e.ID)
		}
		seen[e.ID] = true
	}

	adj := newAdjacency(len(elements), tolerance)
	for i, e := range elements {
		adj.add(i, e)
	}

	var free []int
	for i, n := range adj.nodes {
		switch {
		case len(n.ends) > 2:
			ids := make([]string, len(n.ends))
			for j, end := range n.ends {
				ids[j] = elements[end[0]].ID
			}
			return OrderedPath{}, &BranchingError{Point: n.point, Elements: ids}
		case len(n.ends) == 1:
			free = append(free, i)
		}
	}

	if c := adj.components(); c > 1 {
		return OrderedPath{}, &DisconnectedError{Components: c, FreeEnds: len(free)}
	}
	if len(free) == 0 {
		return OrderedPath{}, &CycleError{Elements: len(elements)}
	}
	if len(free) != 2 {
		return OrderedPath{}, &DisconnectedError{Components: 1, FreeEnds: len(free)}
	}

	start := free[0]
	if less(adj.nodes[free[1]].point, adj.nodes[start].point) {
		start = free[1]
	}

	steps := make([]Step, 0, len(elements))
	visited := make([]bool, len(elements))
	current := start
	for len(steps) < len(elements) {
		next := -1
		for _, end := range adj.nodes[current].ends {
			if visited[end[0]] {
				continue
			}
			elem := end[0]
			visited[elem] = true
			reversed := end[1] == 1
			steps = append(steps, Step{Element: elements[elem], Reversed: reversed})
			next = adj.elemNodes[elem][1-end[1]]
			break
		}
		if next < 0 {
			break
		}
		current = next
	}

	if len(steps) != len(elements) {
		return OrderedPath{}, &DisconnectedError{Components: adj.components(), FreeEnds: len(free)}
	}

	return OrderedPath{steps: steps}, nil
}

func less(a, b geometry.Vector3) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}
