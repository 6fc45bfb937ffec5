package bend

import "github.com/philipparndt/gobend/pkg/path"

// Piece is one straight or bend placed along the centerline
type Piece struct {
	Kind    path.Kind
	Index   int // 1-based index into straights or bends
	Length  float64
	StartAt float64
	EndAt   float64
}

// Layout interleaves straights and bends in centerline order starting at
// offset. The first piece is a bend when startsWithArc is set.
func Layout(straights []StraightRecord, bends []BendRecord, startsWithArc bool, offset float64) []Piece {
	pieces := make([]Piece, 0, len(straights)+len(bends))
	pos := offset
	add := func(kind path.Kind, index int, length float64) {
		pieces = append(pieces, Piece{Kind: kind, Index: index, Length: length, StartAt: pos, EndAt: pos + length})
		pos += length
	}

	si, bi := 0, 0
	nextArc := startsWithArc
	for si < len(straights) || bi < len(bends) {
		if (nextArc && bi < len(bends)) || si >= len(straights) {
			add(path.Arc, bi+1, bends[bi].ArcLength)
			bi++
			nextArc = false
			continue
		}
		add(path.Line, si+1, straights[si].Length)
		si++
		nextArc = true
	}
	return pieces
}

// CenterlineLength returns the straight lengths plus the arc lengths
func CenterlineLength(straights []StraightRecord, bends []BendRecord) float64 {
	total := 0.0
	for _, s := range straights {
		total += s.Length
	}
	for _, b := range bends {
		total += b.ArcLength
	}
	return total
}
